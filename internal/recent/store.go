// Package recent keeps the list of items opened through the launcher in a
// small SQLite database, most recent first.
package recent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// ErrOutOfRange is returned by Item for positions past the end of the list.
var ErrOutOfRange = errors.New("recent item out of range")

// Retain bounds how many rows the table keeps.
const Retain = 200

const pruneWorkers = 8

// Store is a recent-items list backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create recent dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS recent (
			path TEXT PRIMARY KEY,
			opened_at INTEGER NOT NULL,
			open_count INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE INDEX IF NOT EXISTS recent_opened_at ON recent (opened_at DESC);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("recent store migration failed: %w", err)
		}
	}
	return nil
}

// Path is the database file.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add moves path to the top of the list.
func (s *Store) Add(path string) error {
	if s == nil || s.db == nil {
		return nil
	}
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = filepath.Clean(clean)
	_, err := s.db.Exec(`INSERT INTO recent (path, opened_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at, open_count = open_count + 1`,
		clean, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("add recent: %w", err)
	}
	_, err = s.db.Exec(`DELETE FROM recent WHERE path NOT IN (
		SELECT path FROM recent ORDER BY opened_at DESC, path ASC LIMIT ?)`, Retain)
	return err
}

// TopItems returns up to max paths, most recently opened first.
func (s *Store) TopItems(max int) ([]string, error) {
	if s == nil || s.db == nil || max <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT path FROM recent ORDER BY opened_at DESC, path ASC LIMIT ?`, max)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// Item returns the path at index within the first max items.
func (s *Store) Item(index, max int) (string, error) {
	items, err := s.TopItems(max)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return items[index], nil
}

// Clear removes every item.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM recent`)
	return err
}

// Prune drops items whose path no longer exists and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	items, err := s.TopItems(Retain)
	if err != nil {
		return 0, err
	}

	var (
		mu   sync.Mutex
		gone []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pruneWorkers)
	for _, path := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
				mu.Lock()
				gone = append(gone, path)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if len(gone) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `DELETE FROM recent WHERE path = ?`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()
	for _, path := range gone {
		if _, err := stmt.ExecContext(ctx, path); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(gone), nil
}
