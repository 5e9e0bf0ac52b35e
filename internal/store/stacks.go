package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Gurkenlor3nz/vokaba/internal/vocab"
)

// ErrStackNotFound is returned when a stack ID has no row.
var ErrStackNotFound = errors.New("stack not found")

// StackRepo handles database operations for stacks and their entries.
type StackRepo struct {
	db *sqlx.DB
}

type stackRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	OwnLanguage     string `db:"own_language"`
	ForeignLanguage string `db:"foreign_language"`
	ThirdLanguage   string `db:"third_language"`
	ThirdActive     bool   `db:"third_active"`
}

type entryRow struct {
	ID             string  `db:"id"`
	StackID        string  `db:"stack_id"`
	OwnText        string  `db:"own_text"`
	ForeignText    string  `db:"foreign_text"`
	ThirdText      string  `db:"third_text"`
	Info           string  `db:"info"`
	KnowledgeLevel float64 `db:"knowledge_level"`
	SRSStreak      int     `db:"srs_streak"`
	SRSLastSeen    *int64  `db:"srs_last_seen"`
	SRSDue         *int64  `db:"srs_due"`
}

func (r entryRow) toEntry() *vocab.Entry {
	e := &vocab.Entry{
		ID:             r.ID,
		StackID:        r.StackID,
		OwnText:        r.OwnText,
		ForeignText:    r.ForeignText,
		ThirdText:      r.ThirdText,
		Info:           r.Info,
		KnowledgeLevel: r.KnowledgeLevel,
		SRSStreak:      r.SRSStreak,
	}
	e.SRSLastSeen = unixPtrToTime(r.SRSLastSeen)
	e.SRSDue = unixPtrToTime(r.SRSDue)
	e.Normalize()
	return e
}

func entryToRow(e *vocab.Entry) entryRow {
	return entryRow{
		ID:             e.ID,
		StackID:        e.StackID,
		OwnText:        e.OwnText,
		ForeignText:    e.ForeignText,
		ThirdText:      e.ThirdText,
		Info:           e.Info,
		KnowledgeLevel: e.KnowledgeLevel,
		SRSStreak:      e.SRSStreak,
		SRSLastSeen:    timeToUnixPtr(e.SRSLastSeen),
		SRSDue:         timeToUnixPtr(e.SRSDue),
	}
}

func unixPtrToTime(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := time.Unix(*v, 0)
	return &t
}

func timeToUnixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

// LoadAll returns every stack with its entries.
func (r *StackRepo) LoadAll() ([]*vocab.Stack, error) {
	var srows []stackRow
	if err := r.db.Select(&srows, "SELECT * FROM stacks ORDER BY name"); err != nil {
		return nil, fmt.Errorf("load stacks: %w", err)
	}

	stacks := make([]*vocab.Stack, 0, len(srows))
	for _, sr := range srows {
		var erows []entryRow
		err := r.db.Select(&erows,
			"SELECT * FROM entries WHERE stack_id = ? ORDER BY rowid", sr.ID)
		if err != nil {
			return nil, fmt.Errorf("load entries for stack %s: %w", sr.ID, err)
		}

		st := &vocab.Stack{
			ID:              sr.ID,
			Name:            sr.Name,
			OwnLanguage:     sr.OwnLanguage,
			ForeignLanguage: sr.ForeignLanguage,
			ThirdLanguage:   sr.ThirdLanguage,
			ThirdActive:     sr.ThirdActive,
			Entries:         make([]*vocab.Entry, 0, len(erows)),
		}
		for _, er := range erows {
			st.Entries = append(st.Entries, er.toEntry())
		}
		stacks = append(stacks, st)
	}
	return stacks, nil
}

// CreateStack inserts a new empty stack and returns it with its ID assigned.
func (r *StackRepo) CreateStack(st *vocab.Stack) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`INSERT INTO stacks
		(id, name, own_language, foreign_language, third_language, third_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.OwnLanguage, st.ForeignLanguage, st.ThirdLanguage, st.ThirdActive)
	if err != nil {
		return fmt.Errorf("create stack: %w", err)
	}
	return nil
}

// DeleteStack removes a stack and, via the cascade, its entries.
func (r *StackRepo) DeleteStack(id string) error {
	res, err := r.db.Exec("DELETE FROM stacks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete stack: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete stack: %w", err)
	}
	if n == 0 {
		return ErrStackNotFound
	}
	return nil
}

// AddEntry inserts a new entry, assigning an ID when it has none.
func (r *StackRepo) AddEntry(e *vocab.Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Normalize()
	row := entryToRow(e)
	_, err := r.db.NamedExec(`INSERT INTO entries
		(id, stack_id, own_text, foreign_text, third_text, info,
		 knowledge_level, srs_streak, srs_last_seen, srs_due)
		VALUES (:id, :stack_id, :own_text, :foreign_text, :third_text, :info,
		 :knowledge_level, :srs_streak, :srs_last_seen, :srs_due)`, row)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	return nil
}

// SaveEntry persists the learning state of a single existing entry.
func (r *StackRepo) SaveEntry(e *vocab.Entry) error {
	row := entryToRow(e)
	res, err := r.db.NamedExec(`UPDATE entries SET
		own_text = :own_text, foreign_text = :foreign_text,
		third_text = :third_text, info = :info,
		knowledge_level = :knowledge_level, srs_streak = :srs_streak,
		srs_last_seen = :srs_last_seen, srs_due = :srs_due
		WHERE id = :id`, row)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SaveAll persists many entries in one transaction.
func (r *StackRepo) SaveAll(entries []*vocab.Entry) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("save all: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		row := entryToRow(e)
		_, err := tx.NamedExec(`UPDATE entries SET
			own_text = :own_text, foreign_text = :foreign_text,
			third_text = :third_text, info = :info,
			knowledge_level = :knowledge_level, srs_streak = :srs_streak,
			srs_last_seen = :srs_last_seen, srs_due = :srs_due
			WHERE id = :id`, row)
		if err != nil {
			return fmt.Errorf("save all: entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save all: %w", err)
	}
	return nil
}

// DeleteEntry removes a single entry.
func (r *StackRepo) DeleteEntry(id string) error {
	_, err := r.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
