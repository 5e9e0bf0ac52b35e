// Package session builds the working pool of entries for a learning run,
// selects the next card by due-date-constrained weighted random sampling,
// and tracks the run's counters.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

var (
	// ErrEmptyPool means a session was requested with zero eligible
	// entries. This is a terminal "no content" state; the selector never
	// substitutes a different stack's data.
	ErrEmptyPool = errors.New("session: no eligible entries")

	// ErrStackNotFound means the requested stack reference matched no
	// known stack.
	ErrStackNotFound = errors.New("session: stack not found")

	// ErrAmbiguousStack means the requested stack reference matched more
	// than one stack. The selector must not fall back to all stacks.
	ErrAmbiguousStack = errors.New("session: ambiguous stack reference")
)

// AllStacks selects the union of all stacks.
const AllStacks = "all"

// PoolMode distinguishes a size-capped daily pool from the full set.
type PoolMode string

const (
	PoolLimited PoolMode = "limited"
	PoolAll     PoolMode = "all"
)

// LimitedPoolThreshold is the daily-target value at or below which the
// pool is truncated to the target size.
const LimitedPoolThreshold = 100

// Key identifies the conditions a cached pool was built under. A fresh
// build request resumes the cached pool only when its key matches exactly;
// in particular a specific-stack request never resumes a pool built for
// "all" or for a different stack.
type Key struct {
	Date   string // calendar day, YYYY-MM-DD
	Stacks string // stack reference or AllStacks
	Mode   PoolMode
	Size   int
}

// Pool is the working set of entries for the current session, exclusively
// owned by the active session.
type Pool struct {
	Key     Key
	Entries []*vocab.Entry

	// Current is the index of the card being shown, -1 before the first
	// pick.
	Current int
}

// Manager builds pools and caches the last one for same-day resume.
type Manager struct {
	rng    *rand.Rand
	cached *Pool
}

// NewManager creates a pool manager using the given random source.
func NewManager(rng *rand.Rand) *Manager {
	return &Manager{rng: rng}
}

// ResolveStacks resolves a stack reference to the stacks it names: the
// AllStacks sentinel selects everything, otherwise the reference must match
// exactly one stack by ID or name.
func ResolveStacks(stacks []*vocab.Stack, ref string) ([]*vocab.Stack, error) {
	if ref == AllStacks {
		return stacks, nil
	}
	var matched []*vocab.Stack
	for _, s := range stacks {
		if s.ID == ref || s.Name == ref {
			matched = append(matched, s)
		}
	}
	switch len(matched) {
	case 0:
		return nil, ErrStackNotFound
	case 1:
		return matched, nil
	default:
		return nil, ErrAmbiguousStack
	}
}

// Build assembles the session pool: entries from the referenced stack (or
// all stacks), uniformly shuffled, truncated to the daily target when the
// target is at or below the limited threshold. When the cache key of the
// previously built pool matches — same day, same stack reference, same
// mode and size, cache non-empty — that pool is resumed instead; any
// mismatch forces a fresh shuffle.
func (m *Manager) Build(stacks []*vocab.Stack, ref string, dailyTarget int, now time.Time) (*Pool, error) {
	selected, err := ResolveStacks(stacks, ref)
	if err != nil {
		return nil, err
	}

	var all []*vocab.Entry
	for _, s := range selected {
		all = append(all, s.Entries...)
	}
	if len(all) == 0 {
		return nil, ErrEmptyPool
	}

	mode := PoolAll
	size := len(all)
	if dailyTarget <= LimitedPoolThreshold {
		mode = PoolLimited
		if dailyTarget < size {
			size = dailyTarget
		}
	}

	key := Key{Date: now.Format("2006-01-02"), Stacks: ref, Mode: mode, Size: size}
	if m.cached != nil && m.cached.Key == key && len(m.cached.Entries) == key.Size && key.Size > 0 {
		return m.cached, nil
	}

	shuffled := make([]*vocab.Entry, len(all))
	copy(shuffled, all)
	m.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pool := &Pool{Key: key, Entries: shuffled[:size], Current: -1}
	m.cached = pool
	return pool, nil
}

// Invalidate drops the cached pool, forcing the next Build to shuffle.
func (m *Manager) Invalidate() {
	m.cached = nil
}
