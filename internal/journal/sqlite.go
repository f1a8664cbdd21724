package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// timestamps are stored as fixed-width UTC text so they sort lexically
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if needed) the journal database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{conn: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("Journal database connected", "driver", "sqlite", "path", path)
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS readings (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		card_name TEXT NOT NULL,
		display_name TEXT NOT NULL,
		context TEXT NOT NULL,
		meaning TEXT NOT NULL,
		cards_remaining INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);`)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS readings_created_at ON readings (created_at);`)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, r Reading) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO readings (id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, r.CardName, r.DisplayName, r.Context, r.Meaning, r.Remaining,
		r.CreatedAt.UTC().Format(sqliteTimeLayout))
	return err
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Reading, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at
		  FROM readings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Reading{}
	for rows.Next() {
		r, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Reading, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at
		  FROM readings WHERE id = ?`, id)
	r, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Reading{}, ErrNotFound
	}
	return r, err
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(sc scanner) (Reading, error) {
	var (
		r       Reading
		created string
	)
	if err := sc.Scan(&r.ID, &r.SessionID, &r.CardName, &r.DisplayName, &r.Context, &r.Meaning, &r.Remaining, &created); err != nil {
		return Reading{}, err
	}
	t, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Reading{}, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	return r, nil
}
