package session

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

func makeStack(id string, n int) *vocab.Stack {
	s := &vocab.Stack{ID: id, Name: id}
	for i := 0; i < n; i++ {
		s.Entries = append(s.Entries, &vocab.Entry{
			ID:          fmt.Sprintf("%s-%d", id, i),
			StackID:     id,
			OwnText:     fmt.Sprintf("own-%s-%d", id, i),
			ForeignText: fmt.Sprintf("foreign-%s-%d", id, i),
		})
	}
	return s
}

func TestResolveStacks(t *testing.T) {
	stacks := []*vocab.Stack{
		{ID: "a1", Name: "animals"},
		{ID: "b2", Name: "verbs"},
		{ID: "c3", Name: "animals"}, // name collision
	}

	all, err := ResolveStacks(stacks, AllStacks)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := ResolveStacks(stacks, "verbs")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "b2", one[0].ID)

	_, err = ResolveStacks(stacks, "nouns")
	assert.ErrorIs(t, err, ErrStackNotFound)

	// Ambiguity must fail, never fall back to all stacks.
	_, err = ResolveStacks(stacks, "animals")
	assert.ErrorIs(t, err, ErrAmbiguousStack)
}

func TestBuild_LimitedAndAllMode(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stacks := []*vocab.Stack{makeStack("a", 300), makeStack("b", 200)}

	// 500 entries, target 50: limited mode caps the pool.
	m := NewManager(rand.New(rand.NewSource(1)))
	pool, err := m.Build(stacks, AllStacks, 50, now)
	require.NoError(t, err)
	assert.Len(t, pool.Entries, 50)
	assert.Equal(t, PoolLimited, pool.Key.Mode)

	// Target 1000 exceeds the limited threshold: the whole set is used.
	m = NewManager(rand.New(rand.NewSource(1)))
	pool, err = m.Build(stacks, AllStacks, 1000, now)
	require.NoError(t, err)
	assert.Len(t, pool.Entries, 500)
	assert.Equal(t, PoolAll, pool.Key.Mode)
}

func TestBuild_EmptyPool(t *testing.T) {
	m := NewManager(rand.New(rand.NewSource(1)))
	_, err := m.Build([]*vocab.Stack{{ID: "x", Name: "x"}}, AllStacks, 20, time.Now())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestBuild_ResumesSameConditions(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stacks := []*vocab.Stack{makeStack("a", 40)}
	m := NewManager(rand.New(rand.NewSource(7)))

	first, err := m.Build(stacks, "a", 20, now)
	require.NoError(t, err)
	first.Current = 5

	// Same day, same reference, same target: resumed, position kept.
	again, err := m.Build(stacks, "a", 20, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 5, again.Current)
}

func TestBuild_FreshOnChangedConditions(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stacks := []*vocab.Stack{makeStack("a", 40), makeStack("b", 40)}
	m := NewManager(rand.New(rand.NewSource(7)))

	first, err := m.Build(stacks, AllStacks, 20, now)
	require.NoError(t, err)

	// Different calendar day forces a rebuild.
	next, err := m.Build(stacks, AllStacks, 20, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotSame(t, first, next)
	assert.Equal(t, -1, next.Current)

	// A specific-stack request never resumes an "all" pool.
	specific, err := m.Build(stacks, "a", 20, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotSame(t, next, specific)
	for _, e := range specific.Entries {
		assert.Equal(t, "a", e.StackID)
	}

	// Changed target size forces a rebuild too.
	resized, err := m.Build(stacks, "a", 30, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotSame(t, specific, resized)
	assert.Len(t, resized.Entries, 30)
}

func TestBuild_InvalidateForcesRebuild(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stacks := []*vocab.Stack{makeStack("a", 10)}
	m := NewManager(rand.New(rand.NewSource(3)))

	first, err := m.Build(stacks, "a", 20, now)
	require.NoError(t, err)
	m.Invalidate()

	second, err := m.Build(stacks, "a", 20, now)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
