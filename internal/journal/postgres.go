package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS readings (
    id              TEXT PRIMARY KEY,
    session_id      TEXT NOT NULL,
    card_name       TEXT NOT NULL,
    display_name    TEXT NOT NULL,
    context         TEXT NOT NULL,
    meaning         TEXT NOT NULL,
    cards_remaining INTEGER NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS readings_created_at ON readings (created_at DESC);
`

type PostgresStore struct{ *pgxpool.Pool }

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := p.Exec(ctx, postgresSchema); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("Journal database connected", "driver", "postgres")
	return &PostgresStore{p}, nil
}

func (db *PostgresStore) Record(ctx context.Context, r Reading) error {
	_, err := db.Exec(ctx, `
		INSERT INTO readings (id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, r.ID, r.SessionID, r.CardName, r.DisplayName, r.Context, r.Meaning, r.Remaining, r.CreatedAt)
	return err
}

func (db *PostgresStore) Recent(ctx context.Context, limit int) ([]Reading, error) {
	rows, err := db.Query(ctx, `
		SELECT id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at
		  FROM readings
		 ORDER BY created_at DESC
		 LIMIT $1
	`, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Reading{}
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.ID, &r.SessionID, &r.CardName, &r.DisplayName, &r.Context, &r.Meaning, &r.Remaining, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *PostgresStore) Get(ctx context.Context, id string) (Reading, error) {
	var r Reading
	err := db.QueryRow(ctx, `
		SELECT id, session_id, card_name, display_name, context, meaning, cards_remaining, created_at
		  FROM readings WHERE id = $1
	`, id).Scan(&r.ID, &r.SessionID, &r.CardName, &r.DisplayName, &r.Context, &r.Meaning, &r.Remaining, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reading{}, ErrNotFound
	}
	return r, err
}

func (db *PostgresStore) Close() error {
	db.Pool.Close()
	return nil
}
