package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusfit/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// ErrStaleStreakState is returned when a streak write carries a version that
// no longer matches the stored row. The caller's decision is discarded; the
// next trigger re-derives it from fresh state.
var ErrStaleStreakState = errors.New("streak state was modified concurrently")

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create data directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'focusfit init' first")
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ---------- users ----------

func (s *SQLiteStore) AddUser(name string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (name, created_at) VALUES (?, ?)",
		name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add user: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) ListUserIDs() ([]int64, error) {
	rows, err := s.db.Query("SELECT id FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ---------- routines ----------

func (s *SQLiteStore) AddRoutine(r models.Routine) error {
	weekdaysJSON, err := json.Marshal(r.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to marshal weekdays: %w", err)
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		"INSERT INTO routines (id, user_id, name, weekdays, created_at) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.UserID, r.Name, string(weekdaysJSON), createdAt.Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, name, weekdays, created_at FROM routines WHERE id = ?", id)
	return scanRoutine(row)
}

func (s *SQLiteStore) GetRoutinesForUser(userID int64) ([]models.Routine, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, name, weekdays, created_at FROM routines WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoutine(row rowScanner) (models.Routine, error) {
	var r models.Routine
	var weekdaysJSON, createdAt string

	if err := row.Scan(&r.ID, &r.UserID, &r.Name, &weekdaysJSON, &createdAt); err != nil {
		return models.Routine{}, err
	}

	if weekdaysJSON != "" {
		var weekdays []int
		if err := json.Unmarshal([]byte(weekdaysJSON), &weekdays); err == nil {
			for _, w := range weekdays {
				r.Weekdays = append(r.Weekdays, time.Weekday(w))
			}
		}
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}

	return r, nil
}

func (s *SQLiteStore) UpdateRoutine(r models.Routine) error {
	weekdaysJSON, err := json.Marshal(r.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to marshal weekdays: %w", err)
	}

	res, err := s.db.Exec(
		"UPDATE routines SET name = ?, weekdays = ? WHERE id = ?",
		r.Name, string(weekdaysJSON), r.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("routine with id %s not found", r.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteRoutine(id string) error {
	res, err := s.db.Exec("DELETE FROM routines WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("routine with id %s not found", id)
	}
	return nil
}

// ---------- routine items ----------

func (s *SQLiteStore) AddItem(item models.RoutineItem) error {
	_, err := s.db.Exec(
		"INSERT INTO routine_items (id, routine_id, name, position) VALUES (?, ?, ?, ?)",
		item.ID, item.RoutineID, item.Name, item.Position,
	)
	return err
}

func (s *SQLiteStore) GetItemsForRoutine(routineID string) ([]models.RoutineItem, error) {
	rows, err := s.db.Query(
		"SELECT id, routine_id, name, position FROM routine_items WHERE routine_id = ? ORDER BY position, id", routineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RoutineItem
	for rows.Next() {
		var item models.RoutineItem
		if err := rows.Scan(&item.ID, &item.RoutineID, &item.Name, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) DeleteItem(id string) error {
	res, err := s.db.Exec("DELETE FROM routine_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("item with id %s not found", id)
	}
	return nil
}

// ---------- completion ledger ----------

func (s *SQLiteStore) UpsertCompletion(rec models.CompletionRecord) error {
	var completedAt sql.NullString
	if rec.CompletedAt != nil {
		completedAt = sql.NullString{String: rec.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (user_id, item_id, day, completed, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(item_id, day) DO UPDATE SET
			completed = excluded.completed,
			completed_at = excluded.completed_at`,
		rec.UserID, rec.ItemID, rec.Day, rec.Completed, completedAt,
	)
	return err
}

func (s *SQLiteStore) GetCompletions(userID int64, day string) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`
		SELECT user_id, item_id, day, completed, completed_at
		FROM completions WHERE user_id = ? AND day = ?`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.CompletionRecord
	for rows.Next() {
		var rec models.CompletionRecord
		var completedAt sql.NullString
		if err := rows.Scan(&rec.UserID, &rec.ItemID, &rec.Day, &rec.Completed, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339, completedAt.String); err == nil {
				rec.CompletedAt = &t
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// ---------- streak state ----------

// GetStreakState returns the stored streak row for the user, or a zero-valued
// state (Version 0) when the user has never been evaluated.
func (s *SQLiteStore) GetStreakState(userID int64) (models.StreakState, error) {
	st := models.StreakState{UserID: userID}

	var lastEvaluated sql.NullString
	err := s.db.QueryRow(`
		SELECT current, longest, last_evaluated, baseline, version
		FROM streaks WHERE user_id = ?`, userID,
	).Scan(&st.Current, &st.Longest, &lastEvaluated, &st.Baseline, &st.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return models.StreakState{UserID: userID}, err
	}

	if lastEvaluated.Valid {
		st.LastDate = lastEvaluated.String
	}
	return st, nil
}

// SaveStreakState persists all streak fields atomically. The write succeeds
// only if st.Version still matches the stored row; otherwise
// ErrStaleStreakState is returned and nothing changes.
func (s *SQLiteStore) SaveStreakState(st models.StreakState) error {
	var lastEvaluated sql.NullString
	if st.LastDate != "" {
		lastEvaluated = sql.NullString{String: st.LastDate, Valid: true}
	}

	if st.Version == 0 {
		// First write for this user. A concurrent first write loses via the
		// primary key, which is reported as a stale state.
		res, err := s.db.Exec(`
			INSERT INTO streaks (user_id, current, longest, last_evaluated, baseline, version)
			VALUES (?, ?, ?, ?, ?, 1)
			ON CONFLICT(user_id) DO NOTHING`,
			st.UserID, st.Current, st.Longest, lastEvaluated, st.Baseline,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStaleStreakState
		}
		return nil
	}

	res, err := s.db.Exec(`
		UPDATE streaks
		SET current = ?, longest = ?, last_evaluated = ?, baseline = ?, version = version + 1
		WHERE user_id = ? AND version = ?`,
		st.Current, st.Longest, lastEvaluated, st.Baseline, st.UserID, st.Version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStreakState
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
