package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	order   []string
	expires time.Time
}

// MemoryStore keeps session decks in process memory. Entries idle for longer
// than the TTL are dropped; a TTL of zero keeps them forever.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	decks     map[string]memoryEntry
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		decks: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return s.ttl > 0 && !now.Before(e.expires)
}

func (s *MemoryStore) Load(_ context.Context, id string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.decks[id]
	if !ok {
		return nil, false, nil
	}
	if s.expired(e, s.now()) {
		delete(s.decks, id)
		return nil, false, nil
	}
	return append([]string(nil), e.order...), true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.decks[id] = memoryEntry{
		order:   append([]string{}, order...),
		expires: now.Add(s.ttl),
	}
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	return nil
}

// sweep drops every expired entry. Callers hold s.mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.decks {
		if s.expired(e, now) {
			delete(s.decks, id)
		}
	}
	s.lastSweep = now
}

// Len returns the number of stored sessions, expired ones included until
// they are swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decks)
}
