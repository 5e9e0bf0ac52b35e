// Package decay implements the periodic knowledge decay job. Decay is not
// part of the knowledge model itself: it is an external collaborator that
// lowers every entry's level by a small amount per elapsed day and runs at
// most once per invocation, tracked by a last-run timestamp.
package decay

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/Gurkenlor3nz/vokaba/internal/knowledge"
	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// DailyRate is the knowledge level lost per elapsed day.
const DailyRate = 0.005

// StackSource loads and persists the full entry set.
type StackSource interface {
	LoadAll() ([]*vocab.Stack, error)
	SaveAll(entries []*vocab.Entry) error
}

// MetaSource tracks the last decay run.
type MetaSource interface {
	LastDecay() (*time.Time, error)
	SetLastDecay(t time.Time) error
}

// Job lowers knowledge levels in proportion to days since the last run.
type Job struct {
	Stacks StackSource
	Meta   MetaSource
	Log    *zap.Logger
	Now    func() time.Time
}

// New creates a decay job.
func New(stacks StackSource, meta MetaSource, log *zap.Logger) *Job {
	if log == nil {
		log = zap.NewNop()
	}
	return &Job{Stacks: stacks, Meta: meta, Log: log, Now: time.Now}
}

// Run applies any pending decay and records the run. The first ever run
// only records the timestamp; decay starts counting from there. Returns
// the number of whole days that were applied.
func (j *Job) Run() (int, error) {
	now := j.Now()

	last, err := j.Meta.LastDecay()
	if err != nil {
		return 0, fmt.Errorf("decay: %w", err)
	}
	if last == nil {
		if err := j.Meta.SetLastDecay(now); err != nil {
			return 0, fmt.Errorf("decay: %w", err)
		}
		j.Log.Info("decay initialized, no prior run")
		return 0, nil
	}

	days := int(now.Sub(*last).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}

	stacks, err := j.Stacks.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("decay: %w", err)
	}

	// Adjust in memory through the knowledge model, persist in one
	// transaction afterwards.
	model := knowledge.NewModel(nil)
	delta := -DailyRate * float64(days)
	var entries []*vocab.Entry
	for _, st := range stacks {
		for _, e := range st.Entries {
			if err := model.AdjustLevel(e, delta); err != nil {
				return 0, fmt.Errorf("decay: %w", err)
			}
			entries = append(entries, e)
		}
	}

	if err := j.Stacks.SaveAll(entries); err != nil {
		return 0, fmt.Errorf("decay: %w", err)
	}
	if err := j.Meta.SetLastDecay(now); err != nil {
		return 0, fmt.Errorf("decay: %w", err)
	}

	j.Log.Info("decay applied",
		zap.Int("days", days),
		zap.Int("entries", len(entries)),
		zap.Float64("delta", delta))
	return days, nil
}

// Schedule runs the job daily at the given local time ("HH:MM") plus once
// immediately, returning the started scheduler. Stop it to shut down.
func (j *Job) Schedule(at string) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.Local)
	_, err := s.Every(1).Day().At(at).Do(func() {
		if _, err := j.Run(); err != nil {
			j.Log.Warn("scheduled decay failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule decay: %w", err)
	}
	if _, err := j.Run(); err != nil {
		j.Log.Warn("initial decay failed", zap.Error(err))
	}
	s.StartAsync()
	return s, nil
}
