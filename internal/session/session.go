package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/youruser/tarotapp/internal/deck"
)

// DefaultID is the session used when a caller does not name one. It behaves
// like the single shared deck of a one-table reading room.
const DefaultID = "default"

var ErrInvalidID = errors.New("invalid session id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id may be used as a session key.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

func NewID() string {
	return uuid.NewString()
}

// Store persists the remaining card order of each session, bottom first.
type Store interface {
	Load(ctx context.Context, id string) (order []string, ok bool, err error)
	Save(ctx context.Context, id string, order []string) error
}

// Manager serialises access to each session's deck and keeps it in a Store.
type Manager struct {
	store   Store
	newDeck func() *deck.Deck

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the map once no caller holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, newDeck func() *deck.Deck) *Manager {
	if newDeck == nil {
		newDeck = func() *deck.Deck { return deck.New() }
	}
	return &Manager{
		store:   store,
		newDeck: newDeck,
		locks:   make(map[string]*sessionLock),
	}
}

func (m *Manager) acquire(id string) *sessionLock {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return l
}

func (m *Manager) release(id string, l *sessionLock) {
	l.mu.Unlock()

	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, id)
	}
	m.mu.Unlock()
}

// load returns the stored deck for id, or a fresh one with found false.
func (m *Manager) load(ctx context.Context, id string) (*deck.Deck, bool, error) {
	d := m.newDeck()
	order, ok, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("loading session %s: %w", id, err)
	}
	if ok {
		if err := d.Restore(order); err != nil {
			return nil, false, fmt.Errorf("restoring session %s: %w", id, err)
		}
	}
	return d, ok, nil
}

// With loads the session deck (a fresh, unshuffled one if the session is
// new), runs fn on it and saves the result. fn's error is returned as is and
// nothing is saved in that case.
func (m *Manager) With(ctx context.Context, id string, fn func(*deck.Deck) error) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	l := m.acquire(id)
	defer m.release(id, l)

	d, _, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	if err := m.store.Save(ctx, id, d.Order()); err != nil {
		return fmt.Errorf("saving session %s: %w", id, err)
	}
	return nil
}

// View runs fn on the session deck without saving it. An unknown session
// is shown as a fresh deck and is not created.
func (m *Manager) View(ctx context.Context, id string, fn func(*deck.Deck) error) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	l := m.acquire(id)
	defer m.release(id, l)

	d, _, err := m.load(ctx, id)
	if err != nil {
		return err
	}
	return fn(d)
}

// activeLocks reports how many session locks are currently held or awaited.
func (m *Manager) activeLocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
