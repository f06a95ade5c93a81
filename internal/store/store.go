// Package store handles SQLite persistence of user-defined study methods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/mindely/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrMethodNotFound is returned when no custom method has the requested id.
var ErrMethodNotFound = errors.New("custom method not found")

// Store wraps SQLite access for custom methods.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS custom_methods (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			full_description TEXT NOT NULL,
			how_it_works TEXT NOT NULL,
			best_for TEXT NOT NULL,
			icon TEXT NOT NULL,
			has_timer INTEGER NOT NULL,
			focus_minutes INTEGER NOT NULL,
			break_minutes INTEGER NOT NULL,
			mode_toggle INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_custom_methods_created_at ON custom_methods(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveMethod inserts a custom method or replaces the one with the same id.
// The original creation time is kept on replace.
func (s *Store) SaveMethod(ctx context.Context, m model.CustomMethod) error {
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_methods (id, title, description, full_description, how_it_works, best_for, icon, has_timer, focus_minutes, break_minutes, mode_toggle, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			full_description = excluded.full_description,
			how_it_works = excluded.how_it_works,
			best_for = excluded.best_for,
			icon = excluded.icon,
			has_timer = excluded.has_timer,
			focus_minutes = excluded.focus_minutes,
			break_minutes = excluded.break_minutes,
			mode_toggle = excluded.mode_toggle`,
		m.ID,
		m.Title,
		m.Description,
		m.FullDescription,
		joinLines(m.HowItWorks),
		joinLines(m.BestFor),
		m.Icon,
		boolInt(m.HasTimer),
		m.FocusMinutes,
		m.BreakMinutes,
		boolInt(m.ModeToggle),
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save method %q: %w", m.ID, err)
	}
	return nil
}

// GetMethod returns the custom method with the given id.
func (s *Store) GetMethod(ctx context.Context, id string) (model.CustomMethod, error) {
	row := s.db.QueryRowContext(ctx, selectMethods+` WHERE id = ?`, id)
	m, err := scanMethod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CustomMethod{}, fmt.Errorf("%w: %q", ErrMethodNotFound, id)
	}
	return m, err
}

// ListMethods returns all custom methods ordered by creation time.
func (s *Store) ListMethods(ctx context.Context) ([]model.CustomMethod, error) {
	rows, err := s.db.QueryContext(ctx, selectMethods+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CustomMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteMethod removes a custom method.
func (s *Store) DeleteMethod(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_methods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete method %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrMethodNotFound, id)
	}
	return nil
}

const selectMethods = `SELECT id, title, description, full_description, how_it_works, best_for, icon,
	has_timer, focus_minutes, break_minutes, mode_toggle, created_at
	FROM custom_methods`

type scanner interface {
	Scan(dest ...any) error
}

func scanMethod(row scanner) (model.CustomMethod, error) {
	var m model.CustomMethod
	var howItWorks, bestFor, createdAt string
	var hasTimer, modeToggle int
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.FullDescription, &howItWorks, &bestFor, &m.Icon,
		&hasTimer, &m.FocusMinutes, &m.BreakMinutes, &modeToggle, &createdAt); err != nil {
		return model.CustomMethod{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.CustomMethod{}, err
	}
	m.CreatedAt = parsed
	m.HowItWorks = splitLines(howItWorks)
	m.BestFor = splitLines(bestFor)
	m.HasTimer = hasTimer != 0
	m.ModeToggle = modeToggle != 0
	m.Custom = true
	return m, nil
}

func joinLines(values []string) string {
	return strings.Join(values, "\n")
}

func splitLines(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, "\n")
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
