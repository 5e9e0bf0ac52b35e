package store

import (
	"testing"
	"time"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStackRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stacks()

	st := &vocab.Stack{Name: "Spanish A1", OwnLanguage: "de", ForeignLanguage: "es"}
	if err := repo.CreateStack(st); err != nil {
		t.Fatalf("create stack: %v", err)
	}
	if st.ID == "" {
		t.Fatal("expected stack ID to be assigned")
	}

	due := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	e := &vocab.Entry{
		StackID:        st.ID,
		OwnText:        "dog",
		ForeignText:    "perro",
		KnowledgeLevel: 0.4,
		SRSStreak:      2,
		SRSDue:         &due,
	}
	if err := repo.AddEntry(e); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	stacks, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(stacks) != 1 {
		t.Fatalf("got %d stacks, want 1", len(stacks))
	}
	got := stacks[0]
	if got.Name != "Spanish A1" || len(got.Entries) != 1 {
		t.Fatalf("unexpected stack %+v", got)
	}
	ge := got.Entries[0]
	if ge.ID != e.ID || ge.OwnText != "dog" || ge.ForeignText != "perro" {
		t.Fatalf("unexpected entry %+v", ge)
	}
	if ge.KnowledgeLevel != 0.4 || ge.SRSStreak != 2 {
		t.Fatalf("learning state lost: %+v", ge)
	}
	if ge.SRSDue == nil || !ge.SRSDue.Equal(due) {
		t.Fatalf("due date lost: %v", ge.SRSDue)
	}
	if ge.SRSLastSeen != nil {
		t.Fatalf("expected nil last-seen, got %v", ge.SRSLastSeen)
	}
}

func TestSaveEntryAndSaveAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stacks()

	st := &vocab.Stack{Name: "words"}
	if err := repo.CreateStack(st); err != nil {
		t.Fatalf("create stack: %v", err)
	}
	a := &vocab.Entry{StackID: st.ID, OwnText: "a", ForeignText: "A"}
	b := &vocab.Entry{StackID: st.ID, OwnText: "b", ForeignText: "B"}
	for _, e := range []*vocab.Entry{a, b} {
		if err := repo.AddEntry(e); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	a.KnowledgeLevel = 0.7
	a.SRSStreak = 1
	if err := repo.SaveEntry(a); err != nil {
		t.Fatalf("save entry: %v", err)
	}

	b.KnowledgeLevel = 0.2
	if err := repo.SaveAll([]*vocab.Entry{a, b}); err != nil {
		t.Fatalf("save all: %v", err)
	}

	stacks, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	byOwn := map[string]*vocab.Entry{}
	for _, e := range stacks[0].Entries {
		byOwn[e.OwnText] = e
	}
	if byOwn["a"].KnowledgeLevel != 0.7 || byOwn["a"].SRSStreak != 1 {
		t.Fatalf("entry a not persisted: %+v", byOwn["a"])
	}
	if byOwn["b"].KnowledgeLevel != 0.2 {
		t.Fatalf("entry b not persisted: %+v", byOwn["b"])
	}
}

func TestDeleteStackCascades(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stacks()

	st := &vocab.Stack{Name: "gone"}
	if err := repo.CreateStack(st); err != nil {
		t.Fatalf("create stack: %v", err)
	}
	e := &vocab.Entry{StackID: st.ID, OwnText: "x", ForeignText: "y"}
	if err := repo.AddEntry(e); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if err := repo.DeleteStack(st.ID); err != nil {
		t.Fatalf("delete stack: %v", err)
	}
	var n int
	if err := s.DB().Get(&n, "SELECT COUNT(*) FROM entries"); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected cascade delete, %d entries remain", n)
	}

	if err := repo.DeleteStack(st.ID); err != ErrStackNotFound {
		t.Fatalf("expected ErrStackNotFound, got %v", err)
	}
}

func TestDailyGoalRollsOverOnNewDate(t *testing.T) {
	s := openTestStore(t)
	meta := s.Meta()

	day1 := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	n, err := meta.AddDailyGoal(3, day1)
	if err != nil || n != 3 {
		t.Fatalf("add goal: n=%d err=%v", n, err)
	}
	n, err = meta.AddDailyGoal(2, day1)
	if err != nil || n != 5 {
		t.Fatalf("add goal: n=%d err=%v", n, err)
	}

	got, err := meta.DailyGoal(day1)
	if err != nil || got != 5 {
		t.Fatalf("daily goal: got=%d err=%v", got, err)
	}

	// A new calendar date reads as zero and resets on the next write.
	got, err = meta.DailyGoal(day2)
	if err != nil || got != 0 {
		t.Fatalf("daily goal after rollover: got=%d err=%v", got, err)
	}
	n, err = meta.AddDailyGoal(1, day2)
	if err != nil || n != 1 {
		t.Fatalf("add goal after rollover: n=%d err=%v", n, err)
	}
}

func TestLearnedSecondsAccumulate(t *testing.T) {
	s := openTestStore(t)
	meta := s.Meta()

	if err := meta.AddLearnedSeconds(90); err != nil {
		t.Fatalf("add learned: %v", err)
	}
	if err := meta.AddLearnedSeconds(30); err != nil {
		t.Fatalf("add learned: %v", err)
	}
	if err := meta.AddLearnedSeconds(0); err != nil {
		t.Fatalf("add learned zero: %v", err)
	}

	sec, err := meta.LearnedSeconds()
	if err != nil || sec != 120 {
		t.Fatalf("learned seconds: got=%d err=%v", sec, err)
	}
}

func TestLastDecay(t *testing.T) {
	s := openTestStore(t)
	meta := s.Meta()

	got, err := meta.LastDecay()
	if err != nil {
		t.Fatalf("last decay: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil before first run, got %v", got)
	}

	when := time.Date(2026, 3, 11, 4, 0, 0, 0, time.UTC)
	if err := meta.SetLastDecay(when); err != nil {
		t.Fatalf("set last decay: %v", err)
	}
	got, err = meta.LastDecay()
	if err != nil || got == nil || !got.Equal(when) {
		t.Fatalf("last decay round trip: got=%v err=%v", got, err)
	}
}
