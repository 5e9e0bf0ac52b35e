package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	keyDailyGoalCount = "daily_goal_count"
	keyDailyGoalDate  = "daily_goal_date"
	keyLearnedSeconds = "learned_seconds"
	keyLastDecay      = "last_decay"
)

const dateLayout = "2006-01-02"

// MetaRepo stores small persistent counters in a key-value table.
type MetaRepo struct {
	db *sqlx.DB
}

func (r *MetaRepo) get(key string) (string, bool, error) {
	var v string
	err := r.db.Get(&v, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("meta get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *MetaRepo) set(key, value string) error {
	_, err := r.db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("meta set %s: %w", key, err)
	}
	return nil
}

func (r *MetaRepo) getInt(key string) (int64, error) {
	v, ok, err := r.get(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("meta %s: parse %q: %w", key, v, err)
	}
	return n, nil
}

// DailyGoal returns today's goal counter. A stored count from an earlier
// calendar date reads as zero.
func (r *MetaRepo) DailyGoal(now time.Time) (int, error) {
	date, ok, err := r.get(keyDailyGoalDate)
	if err != nil {
		return 0, err
	}
	if !ok || date != now.Format(dateLayout) {
		return 0, nil
	}
	n, err := r.getInt(keyDailyGoalCount)
	return int(n), err
}

// AddDailyGoal adds n cards of credit to today's goal counter, rolling it
// over first when the stored date is not today. Returns the new count.
func (r *MetaRepo) AddDailyGoal(n int, now time.Time) (int, error) {
	cur, err := r.DailyGoal(now)
	if err != nil {
		return 0, err
	}
	total := cur + n
	if err := r.set(keyDailyGoalCount, strconv.Itoa(total)); err != nil {
		return 0, err
	}
	if err := r.set(keyDailyGoalDate, now.Format(dateLayout)); err != nil {
		return 0, err
	}
	return total, nil
}

// LearnedSeconds returns the cumulative study time.
func (r *MetaRepo) LearnedSeconds() (int64, error) {
	return r.getInt(keyLearnedSeconds)
}

// AddLearnedSeconds accumulates elapsed study time.
func (r *MetaRepo) AddLearnedSeconds(sec int64) error {
	if sec <= 0 {
		return nil
	}
	cur, err := r.getInt(keyLearnedSeconds)
	if err != nil {
		return err
	}
	return r.set(keyLearnedSeconds, strconv.FormatInt(cur+sec, 10))
}

// LastDecay returns when the decay job last ran, or nil if it never has.
func (r *MetaRepo) LastDecay() (*time.Time, error) {
	v, ok, err := r.get(keyLastDecay)
	if err != nil || !ok {
		return nil, err
	}
	unix, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("meta %s: parse %q: %w", keyLastDecay, v, err)
	}
	t := time.Unix(unix, 0)
	return &t, nil
}

// SetLastDecay records a decay run.
func (r *MetaRepo) SetLastDecay(t time.Time) error {
	return r.set(keyLastDecay, strconv.FormatInt(t.Unix(), 10))
}
