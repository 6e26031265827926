package catalog

import (
	"errors"
	"sync"
)

// ErrNotFound indicates the requested record is absent from the catalog.
var ErrNotFound = errors.New("record not found")

// Store holds the in-memory catalog. All reads return copies so callers can
// never observe a partially applied replacement. The catalog may be replaced
// wholesale at runtime by the inventory editor without a restart.
type Store struct {
	mu                sync.RWMutex
	parts             []Part
	partCategories    []string
	symptoms          []Symptom
	symptomCategories []string
	mechanics         []Mechanic
}

// NewStore creates a catalog store seeded from the given dataset.
func NewStore(ds *Dataset) *Store {
	s := &Store{}
	if ds != nil {
		s.parts = ds.Parts
		s.partCategories = ds.PartCategories
		s.symptoms = ds.Symptoms
		s.symptomCategories = ds.SymptomCategories
		s.mechanics = ds.Mechanics
	}
	return s
}

// Parts returns a snapshot of the catalog parts in catalog order.
func (s *Store) Parts() []Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// PartByID looks up a part by id.
func (s *Store) PartByID(id string) (Part, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parts {
		if p.ID == id {
			return p, true
		}
	}
	return Part{}, false
}

// ReplaceParts swaps the entire parts catalog.
func (s *Store) ReplaceParts(parts []Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = make([]Part, len(parts))
	copy(s.parts, parts)
}

// PartCategories returns the known part categories.
func (s *Store) PartCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.partCategories))
	copy(out, s.partCategories)
	return out
}

// Symptoms returns a snapshot of the symptom list.
func (s *Store) Symptoms() []Symptom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Symptom, len(s.symptoms))
	copy(out, s.symptoms)
	return out
}

// SymptomByID looks up a symptom by id.
func (s *Store) SymptomByID(id string) (Symptom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sym := range s.symptoms {
		if sym.ID == id {
			return sym, true
		}
	}
	return Symptom{}, false
}

// SymptomCategories returns the known symptom categories.
func (s *Store) SymptomCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.symptomCategories))
	copy(out, s.symptomCategories)
	return out
}

// Mechanics returns the partner workshop directory.
func (s *Store) Mechanics() []Mechanic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mechanic, len(s.mechanics))
	copy(out, s.mechanics)
	return out
}

// ResolveParts maps part ids to catalog parts, silently dropping ids that no
// longer exist in the current catalog.
func (s *Store) ResolveParts(ids []string) []Part {
	out := make([]Part, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.PartByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}
