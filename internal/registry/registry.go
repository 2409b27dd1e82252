// Package registry holds the pattern table used to classify the intent of a
// message. Entries are append-only: there is no removal and no deduplication.
package registry

import (
	"regexp"
	"sync"

	"fjacquet/subscan/internal/models"
)

// Source is a read-only view of pattern entries in registration order.
type Source interface {
	Entries() []models.PatternEntry
}

// Registry is the mutable, concurrency-safe pattern table.
type Registry struct {
	mu      sync.RWMutex
	entries []models.PatternEntry
}

// New creates a registry, seeded with the built-in entries when withBuiltins is true.
func New(withBuiltins bool) *Registry {
	r := &Registry{}
	if withBuiltins {
		for _, e := range Builtins() {
			r.RegisterEntry(e)
		}
	}
	return r
}

// Register appends a runtime entry. No validation is performed: callers
// passing a nil pattern get an entry that never matches.
func (r *Registry) Register(re *regexp.Regexp, patternType models.PatternType, score int, hints models.ExtractorHints) {
	r.RegisterEntry(models.PatternEntry{
		Pattern: re,
		Type:    patternType,
		Score:   score,
		Hints:   hints,
		Source:  models.SourceRuntime,
	})
}

// RegisterEntry appends entry as is.
func (r *Registry) RegisterEntry(entry models.PatternEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Entries returns the current entries. The slice is capacity-clipped so that
// later registrations never write into memory the caller can see.
func (r *Registry) Entries() []models.PatternEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.entries)
	return r.entries[:n:n]
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a frozen copy of the registry.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]models.PatternEntry, len(r.entries))
	copy(entries, r.entries)
	return Snapshot{entries: entries}
}

// Snapshot is an immutable set of entries, safe to share between goroutines
// without locking.
type Snapshot struct {
	entries []models.PatternEntry
}

// Entries returns the frozen entries.
func (s Snapshot) Entries() []models.PatternEntry {
	return s.entries
}

// Len returns the number of frozen entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}
