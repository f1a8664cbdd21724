// Package meaning reads card interpretations from Word documents. Each card
// has a .docx whose first table maps a reading context ("Love", "Career",
// ...) or an attribute ("Yes/No", "+/-") to its text.
package meaning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/youruser/tarotapp/internal/cards"
)

type cached struct {
	modTime time.Time
	rows    []Row
}

type Reader struct {
	assetsDir string
	meta      cards.Metadata

	mu    sync.RWMutex
	cache map[string]cached
}

// NewReader reads meaning files below assetsDir. meta supplies attributes for
// cards whose document lacks them; it may be nil.
func NewReader(assetsDir string, meta cards.Metadata) *Reader {
	return &Reader{
		assetsDir: assetsDir,
		meta:      meta,
		cache:     make(map[string]cached),
	}
}

// Path resolves the card's meaning document on disk.
func (r *Reader) Path(c cards.Card) string {
	return filepath.Join(r.assetsDir, filepath.FromSlash(strings.TrimPrefix(c.MeaningPath, "assets/")))
}

// Table returns the first-table rows of the card's meaning document.
// Results are cached until the file changes.
func (r *Reader) Table(c cards.Card) ([]Row, error) {
	path := r.Path(c)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	hit, ok := r.cache[path]
	r.mu.RUnlock()
	if ok && hit.modTime.Equal(info.ModTime()) {
		return hit.rows, nil
	}

	rows, err := readFirstTable(path)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[path] = cached{modTime: info.ModTime(), rows: rows}
	r.mu.Unlock()
	return rows, nil
}

// Meaning returns the interpretation of c for the reading context. Problems
// are reported in the returned text rather than as errors so a draw always
// has something to show.
func (r *Reader) Meaning(c cards.Card, context string) string {
	rows, err := r.Table(c)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("⚠️ Meaning file not found: %s. Please add the Word document.", c.DisplayName)
	}
	if err != nil {
		return fmt.Sprintf("Error reading meaning: %v", err)
	}
	for _, row := range rows {
		if strings.EqualFold(row[0], strings.TrimSpace(context)) {
			return row[1]
		}
	}
	return fmt.Sprintf("Context '%s' not found in meaning file.", context)
}

// Metadata returns every labelled row known for c. Document rows take
// precedence over the CSV attributes.
func (r *Reader) Metadata(c cards.Card) map[string]string {
	out := map[string]string{}
	for k, v := range r.meta.For(c.Name) {
		out[k] = v
	}
	rows, err := r.Table(c)
	if err != nil {
		return out
	}
	for _, row := range rows {
		if row[0] == "" || row[1] == "" {
			continue
		}
		out[row[0]] = row[1]
	}
	return out
}
