package deck

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"github.com/youruser/tarotapp/internal/cards"
)

// Deck is the state of one reader's deck: the full catalogue plus the cards
// still available, where the last element is the top of the deck.
type Deck struct {
	mu      sync.Mutex
	full    []cards.Card
	current []cards.Card
	rng     *rand.Rand
}

type Option func(*Deck)

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(d *Deck) { d.rng = r }
}

// New returns a full deck in canonical order.
func New(opts ...Option) *Deck {
	full := cards.Catalog()
	d := &Deck{full: full}
	for _, o := range opts {
		o(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(seed()))
	}
	d.current = append([]cards.Card(nil), full...)
	return d
}

func seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("deck: reading random seed: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Shuffle puts every card back and permutes the deck with Fisher-Yates.
func (d *Deck) Shuffle() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = append(d.current[:0], d.full...)
	for i := len(d.current) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.current[i], d.current[j] = d.current[j], d.current[i]
	}
	return len(d.current)
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (c cards.Card, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.current)
	if n == 0 {
		return cards.Card{}, false
	}
	c = d.current[n-1]
	d.current = d.current[:n-1]
	return c, true
}

// Reset restores the full deck in canonical, unshuffled order.
func (d *Deck) Reset() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = append(d.current[:0], d.full...)
	return len(d.current)
}

func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.current)
}

func (d *Deck) Total() int {
	return len(d.full)
}

// Order returns the names of the remaining cards, bottom first.
func (d *Deck) Order() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.current))
	for i, c := range d.current {
		names[i] = c.Name
	}
	return names
}

// Restore replaces the remaining cards with the named ones, bottom first.
func (d *Deck) Restore(names []string) error {
	restored := make([]cards.Card, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		c, ok := cards.Lookup(n)
		if !ok {
			return fmt.Errorf("unknown card %q", n)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate card %q", n)
		}
		seen[c.Name] = true
		restored = append(restored, c)
	}
	d.mu.Lock()
	d.current = restored
	d.mu.Unlock()
	return nil
}
