// Package engine orchestrates a learning run: it owns the session, picks
// the next entry and exercise mode, and applies graded outcomes in
// mutate, persist-one, advance order. It is single-threaded; every method
// corresponds to one user action.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Gurkenlor3nz/vokaba/internal/config"
	"github.com/Gurkenlor3nz/vokaba/internal/exercise"
	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/modes"
	"github.com/Gurkenlor3nz/vokaba/internal/session"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

var (
	// ErrSessionActive is returned when Start is called while a session
	// already owns the pool.
	ErrSessionActive = errors.New("a session is already active")

	// ErrNoActiveSession is returned by calls that need a running session.
	ErrNoActiveSession = errors.New("no active session")
)

// EntryStore is the persistence surface the engine needs.
type EntryStore interface {
	LoadAll() ([]*vocab.Stack, error)
	SaveEntry(e *vocab.Entry) error
	SaveAll(entries []*vocab.Entry) error
}

// MetaStore tracks the daily goal and cumulative learned time.
type MetaStore interface {
	AddDailyGoal(n int, now time.Time) (int, error)
	AddLearnedSeconds(sec int64) error
}

// Card is one presented exercise: the chosen entry, the chosen mode, and
// the mode's round state. Round is one of the exercise types; the driver
// type-switches on it.
type Card struct {
	Entry *vocab.Entry
	Mode  modes.Mode
	Round any
}

// Outcome reports what applying an exercise result did.
type Outcome struct {
	Done       bool
	Correct    bool
	GoalCredit bool

	// Summary is non-nil when the session target was reached; counters
	// have been reset and the pool retained.
	Summary *session.Summary

	// PersistFailures counts effects whose in-memory mutation could not
	// be persisted. The mutations are kept either way.
	PersistFailures int
}

// Engine drives learning sessions.
type Engine struct {
	cfg    *config.Config
	store  EntryStore
	meta   MetaStore
	log    *zap.Logger
	rng    *rand.Rand
	pools  *session.Manager
	model  *knowledge.Model
	now    func() time.Time

	stacks  []*vocab.Stack
	sess    *session.Session
	enabled map[modes.Mode]bool
	card    *Card
}

// New creates an engine over the given persistence collaborators.
func New(cfg *config.Config, st EntryStore, meta MetaStore, log *zap.Logger, rng *rand.Rand) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:   cfg,
		store: st,
		meta:  meta,
		log:   log,
		rng:   rng,
		pools: session.NewManager(rng),
		model: knowledge.NewModel(st),
		now:   time.Now,
	}
}

// Active reports whether a session currently owns the pool.
func (e *Engine) Active() bool {
	return e.sess != nil
}

// Start loads the stacks and begins a session over the referenced stack,
// or over all stacks with session.AllStacks. The pool is exclusively
// owned: starting while a session is active is rejected.
func (e *Engine) Start(stackRef string) error {
	if e.sess != nil {
		return ErrSessionActive
	}

	stacks, err := e.store.LoadAll()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	e.stacks = stacks

	now := e.now()
	pool, err := e.pools.Build(stacks, stackRef, e.cfg.DailyTargetCards, now)
	if err != nil {
		return err
	}

	total := 0
	uniq := make(map[vocab.PairKey]bool)
	for _, ent := range pool.Entries {
		total++
		uniq[ent.Pair()] = true
	}
	e.enabled = modes.Enabled(e.cfg.EnabledModes, total, len(uniq))

	e.sess = session.New(pool, e.cfg.SessionSize, now)
	e.log.Info("session started",
		zap.String("stacks", stackRef),
		zap.Int("pool", len(pool.Entries)),
		zap.Int("target", e.cfg.SessionSize))
	return nil
}

// Session exposes the running session for drivers.
func (e *Engine) Session() *session.Session {
	return e.sess
}

// Next picks the next entry, chooses a mode from its knowledge band, and
// builds the round. The per-card perfect flag is reset here.
func (e *Engine) Next() (*Card, error) {
	if e.sess == nil {
		return nil, ErrNoActiveSession
	}
	pool := e.sess.Pool

	idx := session.PickNext(pool.Entries, pool.Current, true, e.now(), e.rng)
	if idx < 0 {
		return nil, session.ErrEmptyPool
	}
	pool.Current = idx
	entry := pool.Entries[idx]

	mode := modes.Pick(entry.KnowledgeLevel, e.enabled, e.rng)
	round, err := e.buildRound(mode, entry, pool.Entries)
	if err != nil {
		// Round construction can fail when the pool thins out below a
		// mode's minimum; fall back to a flashcard.
		mode = modes.FrontBack
		round = exercise.NewFlashcard(entry, false)
	}

	e.sess.Counters.StartCard()
	e.card = &Card{Entry: entry, Mode: mode, Round: round}
	return e.card, nil
}

// Card returns the card currently being shown, or nil between cards.
func (e *Engine) Card() *Card {
	return e.card
}

func (e *Engine) buildRound(m modes.Mode, entry *vocab.Entry, pool []*vocab.Entry) (any, error) {
	switch m {
	case modes.FrontBack:
		return exercise.NewFlashcard(entry, false), nil
	case modes.BackFront:
		return exercise.NewFlashcard(entry, true), nil
	case modes.MultipleChoice:
		return exercise.NewMultipleChoice(entry, pool, e.rng), nil
	case modes.ConnectPairs:
		return exercise.NewConnectPairs(pool, e.rng)
	case modes.LetterSalad:
		return exercise.NewLetterSalad(entry, e.rng), nil
	case modes.SyllableSalad:
		extras := exercise.SaladExtras(entry, pool, e.rng)
		return exercise.NewSyllableSalad(entry, extras, e.rng), nil
	case modes.Typing:
		return exercise.NewTyping(entry, e.cfg.Typing.RequireSelfRating), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", m)
	}
}

// Deltas returns the delta table rounds grade with.
func (e *Engine) Deltas() knowledge.Deltas {
	return e.model.Deltas
}

// Apply folds an exercise result into the session: every effect mutates
// the entry and is persisted immediately, a wrong sub-step clears the
// perfect flag, and a Done result registers the outcome and may trigger
// the summary. Persistence failures are logged and counted, never rolled
// back.
func (e *Engine) Apply(res exercise.Result) (*Outcome, error) {
	if e.sess == nil {
		return nil, ErrNoActiveSession
	}

	out := &Outcome{}
	for _, eff := range res.Effects {
		if eff.Delta != 0 {
			if err := e.model.AdjustLevel(eff.Entry, eff.Delta); err != nil {
				out.PersistFailures++
				e.log.Warn("level applied but not persisted",
					zap.String("entry", eff.Entry.ID), zap.Error(err))
			}
		}
		if eff.SRS != nil {
			if err := e.model.UpdateSRS(eff.Entry, eff.SRS.Correct, eff.SRS.Quality); err != nil {
				out.PersistFailures++
				e.log.Warn("srs applied but not persisted",
					zap.String("entry", eff.Entry.ID), zap.Error(err))
			}
		}
	}

	if res.WrongStep {
		e.sess.Counters.MarkWrongStep()
	}
	if !res.Done {
		return out, nil
	}

	steps := res.Steps
	if steps < 1 {
		steps = 1
	}
	goalCredit, summary := e.sess.Counters.RegisterOutcome(res.Correct, steps)
	out.Done = true
	out.Correct = res.Correct
	out.GoalCredit = goalCredit

	if goalCredit {
		if _, err := e.meta.AddDailyGoal(steps, e.now()); err != nil {
			e.log.Warn("daily goal not persisted", zap.Error(err))
		}
	}
	if summary {
		s := e.sess.Summary()
		out.Summary = &s
		e.sess.Counters.ResetRound()
	}
	return out, nil
}

// Exit ends the session: pending state is persisted, learned time is
// accumulated exactly once, and the pool cache is retained for same-day
// resume. Safe to call twice.
func (e *Engine) Exit() error {
	if e.sess == nil {
		return nil
	}

	elapsed, already := e.sess.Finish(e.now())
	if !already {
		if err := e.meta.AddLearnedSeconds(int64(elapsed.Seconds())); err != nil {
			e.log.Warn("learned time not persisted", zap.Error(err))
		}
	}

	var all []*vocab.Entry
	for _, st := range e.stacks {
		all = append(all, st.Entries...)
	}
	if err := e.store.SaveAll(all); err != nil {
		return fmt.Errorf("exit session: %w", err)
	}

	e.log.Info("session finished", zap.Duration("elapsed", elapsed))
	e.sess = nil
	e.card = nil
	return nil
}
