// Package store persists the bank's durable state in SQLite: the cycle
// anchor, the daily balance ledger, meal entries, and archived cycles.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"calbank/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the SQLite database holding all calbank state.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location under the user data directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "calbank", "bank.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "calbank", "bank.db")
}

// Open opens or creates the bank database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening bank db: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return err
	}

	want := strconv.Itoa(schemaVersion)
	var stored string
	err := db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO meta (key, value) VALUES ('schema_version', ?)", want)
		return err
	case err != nil:
		return err
	case stored == want:
		return nil
	}

	// Version mismatch: rebuild from scratch.
	if _, err := db.Exec(dropSQL); err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO meta (key, value) VALUES ('schema_version', ?)", want)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCycleState reads the cycle anchor; returns a zero state when no cycle
// has ever been started.
func (s *Store) LoadCycleState() (model.CycleState, error) {
	var cs model.CycleState
	var start sql.NullString
	var confirmed int

	err := s.db.QueryRow("SELECT start_date, confirmed FROM cycle_state WHERE id = 1").Scan(&start, &confirmed)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CycleState{}, nil
	}
	if err != nil {
		return model.CycleState{}, err
	}

	if start.Valid {
		cs.StartDate = start.String
	}
	cs.Confirmed = confirmed != 0
	return cs, nil
}

// SaveCycleState writes the cycle anchor, replacing any previous value.
func (s *Store) SaveCycleState(cs model.CycleState) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO cycle_state (id, start_date, confirmed) VALUES (1, ?, ?)",
		nullableDate(cs.StartDate), boolToInt(cs.Confirmed))
	return err
}

// LoadBalances reads the full ledger for the active cycle. Order is not
// significant; aggregation reads reduce over the whole set.
func (s *Store) LoadBalances() ([]model.DailyBalance, error) {
	rows, err := s.db.Query("SELECT date, consumed, target, balance FROM daily_balances")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.DailyBalance
	for rows.Next() {
		var b model.DailyBalance
		if err := rows.Scan(&b.Date, &b.Consumed, &b.Target, &b.Balance); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpsertBalance stores one day's record, replacing any prior row for the
// same date. All three values change together.
func (s *Store) UpsertBalance(b model.DailyBalance) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO daily_balances (date, consumed, target, balance)
		VALUES (?, ?, ?, ?)`, b.Date, b.Consumed, b.Target, b.Balance)
	return err
}

// DayCount returns the number of ledger records in the active cycle.
func (s *Store) DayCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM daily_balances").Scan(&count)
	return count, err
}

// ResetCycle atomically archives the closing cycle (when archive is non-nil),
// clears the ledger, and writes the new cycle anchor.
func (s *Store) ResetCycle(archive *model.CycleArchive, cs model.CycleState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if archive != nil {
		_, err = tx.Exec(`INSERT INTO cycle_archive
			(start_date, end_date, days_logged, total_balance, capped_balance, days_over_limit, archived_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			archive.StartDate, archive.EndDate, archive.DaysLogged,
			archive.TotalBalance, archive.CappedBalance, archive.DaysOverLimit,
			time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM daily_balances"); err != nil {
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO cycle_state (id, start_date, confirmed) VALUES (1, ?, ?)",
		nullableDate(cs.StartDate), boolToInt(cs.Confirmed))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListArchives returns archived cycles, newest first.
func (s *Store) ListArchives() ([]model.CycleArchive, error) {
	rows, err := s.db.Query(`SELECT id, start_date, end_date, days_logged,
		total_balance, capped_balance, days_over_limit, archived_at
		FROM cycle_archive ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.CycleArchive
	for rows.Next() {
		var a model.CycleArchive
		if err := rows.Scan(&a.ID, &a.StartDate, &a.EndDate, &a.DaysLogged,
			&a.TotalBalance, &a.CappedBalance, &a.DaysOverLimit, &a.ArchivedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// InsertMeal appends a meal entry and returns its row ID.
func (s *Store) InsertMeal(m model.MealEntry) (int64, error) {
	res, err := s.db.Exec("INSERT INTO meals (date, slot, name, kcal, logged_at) VALUES (?, ?, ?, ?, ?)",
		m.Date, m.Slot, m.Name, m.Kcal, m.LoggedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteMeal removes one meal entry.
func (s *Store) DeleteMeal(id int64) error {
	_, err := s.db.Exec("DELETE FROM meals WHERE id = ?", id)
	return err
}

// MealByID returns a single meal entry.
func (s *Store) MealByID(id int64) (model.MealEntry, error) {
	var m model.MealEntry
	var loggedAt string
	err := s.db.QueryRow(`SELECT id, date, slot, name, kcal, logged_at
		FROM meals WHERE id = ?`, id).Scan(&m.ID, &m.Date, &m.Slot, &m.Name, &m.Kcal, &loggedAt)
	if err != nil {
		return model.MealEntry{}, err
	}
	m.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
	return m, nil
}

// MealsForDate returns a date's entries in logging order.
func (s *Store) MealsForDate(date string) ([]model.MealEntry, error) {
	rows, err := s.db.Query(`SELECT id, date, slot, name, kcal, logged_at
		FROM meals WHERE date = ? ORDER BY logged_at, id`, date)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.MealEntry
	for rows.Next() {
		var m model.MealEntry
		var loggedAt string
		if err := rows.Scan(&m.ID, &m.Date, &m.Slot, &m.Name, &m.Kcal, &loggedAt); err != nil {
			return nil, err
		}
		m.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

// MealKcalForDate sums a date's logged calories.
func (s *Store) MealKcalForDate(date string) (float64, error) {
	var total float64
	err := s.db.QueryRow("SELECT COALESCE(SUM(kcal), 0) FROM meals WHERE date = ?", date).Scan(&total)
	return total, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableDate(date string) any {
	if date == "" {
		return nil
	}
	return date
}
