// Package catalog provides the curated knowledge base the analyzers consult:
// per-category mappings from mod/plugin identifiers to warning and
// recommendation text.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/match"
)

// Well-known category names. Stores may carry additional categories; these
// are the ones the built-in analyzer suite consults.
const (
	CategorySuspects    = "suspects"
	CategoryProblematic = "problematic"
	CategoryConflicts   = "conflicts"
	CategoryImportant   = "important"
	CategoryGPU         = "gpu"
)

// ErrBadCatalog marks corrupt catalog data. It is a hard configuration
// error: a catalogued entry missing its warning text means the knowledge
// base itself is broken, and that must surface immediately rather than be
// silently skipped during a scan.
var ErrBadCatalog = errors.New("catalog: invalid entry")

// Entry is one catalogued identifier with its advice text.
type Entry struct {
	// ID is the catalogued identifier token. Conflict entries carry a pair
	// separated by " | ".
	ID string
	// DisplayName is the human-readable name; defaults to ID.
	DisplayName string
	// Warning is the warning/recommendation text shown when the entry
	// matches. Never empty in a valid catalog.
	Warning string
	// Severity is the verdict level a match implies. Categories have their
	// own defaults when the catalog does not set one.
	Severity domain.Severity
}

// Candidate converts the entry into the matcher's candidate shape.
func (e Entry) Candidate() match.Candidate {
	name := e.DisplayName
	if name == "" {
		name = e.ID
	}
	return match.Candidate{ID: e.ID, DisplayName: name, Warning: e.Warning}
}

// Store is the knowledge-base contract the analyzers consume.
type Store interface {
	// Category returns the entries catalogued under name. Unknown categories
	// yield an empty slice, not an error.
	Category(name string) ([]Entry, error)
	// Categories lists the populated category names in sorted order.
	Categories() []string
}

// Validate checks one entry against the catalog contract.
func Validate(category string, e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: category %q has an entry with an empty identifier", ErrBadCatalog, category)
	}
	if e.Warning == "" {
		return fmt.Errorf("%w: category %q entry %q has no warning text", ErrBadCatalog, category, e.ID)
	}
	return nil
}

// MemStore is an in-memory Store. Hosts and tests build one directly; the
// JSON loader produces one from a knowledge-base file.
type MemStore struct {
	entries map[string][]Entry
}

// NewMemStore validates and indexes the given entries.
func NewMemStore(entries map[string][]Entry) (*MemStore, error) {
	indexed := make(map[string][]Entry, len(entries))
	for category, list := range entries {
		for _, e := range list {
			if err := Validate(category, e); err != nil {
				return nil, err
			}
		}
		indexed[category] = append([]Entry(nil), list...)
	}
	return &MemStore{entries: indexed}, nil
}

// Category implements Store.
func (s *MemStore) Category(name string) ([]Entry, error) {
	return s.entries[name], nil
}

// Categories implements Store.
func (s *MemStore) Categories() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidates loads a category and converts it for the matcher.
func Candidates(s Store, category string) ([]match.Candidate, error) {
	entries, err := s.Category(category)
	if err != nil {
		return nil, err
	}
	candidates := make([]match.Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, e.Candidate())
	}
	return candidates, nil
}
