package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}

func TestNewReading(t *testing.T) {
	r := NewReading("default", "FOOL", "Fool", "Love", "leap", 77)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "FOOL", r.CardName)
	assert.Equal(t, 77, r.Remaining)
	assert.WithinDuration(t, time.Now(), r.CreatedAt, time.Minute)
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		r := NewReading("s1", fmt.Sprintf("CARD_%d", i), "Card", "Love", "meaning", 77-i)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Record(ctx, r))
		ids = append(ids, r.ID)
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
	assert.Equal(t, 75, recent[0].Remaining)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	got, err := s.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "CARD_0", got.CardName)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "Love", got.Context)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore(t *testing.T) {
	s, err := Open(context.Background(), "", t.TempDir())
	require.NoError(t, err)
	defer s.Close()
	require.IsType(t, &SQLiteStore{}, s)

	exerciseStore(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "j.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	r := NewReading("s", "SUN", "Sun", "General", "joy", 10)
	require.NoError(t, s.Record(ctx, r))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "joy", got.Meaning)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TAROT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TAROT_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, "")
	require.NoError(t, err)
	defer s.Close()
	pg := s.(*PostgresStore)
	_, err = pg.Exec(ctx, `TRUNCATE readings`)
	require.NoError(t, err)

	exerciseStore(t, s)
}
