// Package journal records every card drawn so readings can be listed and
// shared after the fact.
package journal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("reading not found")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Reading struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	CardName    string    `json:"card_name"`
	DisplayName string    `json:"display_name"`
	Context     string    `json:"context"`
	Meaning     string    `json:"meaning"`
	Remaining   int       `json:"cards_remaining"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store interface {
	Record(ctx context.Context, r Reading) error
	Recent(ctx context.Context, limit int) ([]Reading, error)
	Get(ctx context.Context, id string) (Reading, error)
	Close() error
}

// NewReading fills in the id and timestamp of a reading.
func NewReading(sessionID, cardName, displayName, context, meaning string, remaining int) Reading {
	return Reading{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		CardName:    cardName,
		DisplayName: displayName,
		Context:     context,
		Meaning:     meaning,
		Remaining:   remaining,
		CreatedAt:   time.Now().UTC(),
	}
}

// ClampLimit maps a requested page size onto [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Open picks the backend from the DSN: postgres:// and postgresql:// URLs go
// to Postgres, anything else is a SQLite file path. An empty DSN means
// readings.db inside dataDir.
func Open(ctx context.Context, dsn, dataDir string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		pg, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	if dsn == "" {
		dsn = filepath.Join(dataDir, "readings.db")
	}
	lite, err := OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}
