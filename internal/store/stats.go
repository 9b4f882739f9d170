package store

import (
	"sort"

	"github.com/MeliodasZHAO/claude-memory/internal/docfile"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// KindStats holds per-kind record counts.
type KindStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Stats summarizes the store contents.
type Stats struct {
	Kinds          map[model.Kind]KindStats `json:"kinds"`
	FactCategories int                      `json:"fact_categories"`
	LastUpdated    string                   `json:"last_updated,omitempty"`
}

// Stats counts records per kind and distinct fact categories.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{Kinds: make(map[model.Kind]KindStats, len(model.Kinds))}

	factCategories := make(map[string]bool)
	for _, k := range model.Kinds {
		mu := s.locks[k]
		mu.Lock()
		col, err := s.loadKind(k)
		mu.Unlock()
		if err != nil {
			return nil, err
		}

		var ks KindStats
		for _, r := range col.records {
			ks.Total++
			if r.Status == model.StatusActive {
				ks.Active++
			}
			if k == model.KindFact {
				factCategories[r.Category] = true
			}
		}
		st.Kinds[k] = ks
	}
	st.FactCategories = len(factCategories)

	var meta Metadata
	if corrupt, err := docfile.Load(s.cfg.MetadataPath(), &meta); err == nil && !corrupt && !meta.LastUpdated.IsZero() {
		st.LastUpdated = meta.LastUpdated.Format("2006-01-02 15:04:05")
	}
	return st, nil
}

// Categories returns the distinct categories of a kind, sorted.
func (s *Store) Categories(kind model.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	col, err := s.loadKind(kind)
	mu.Unlock()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, r := range col.records {
		seen[r.Category] = true
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// ListByImportance returns active records of every kind at one tier,
// newest first.
func (s *Store) ListByImportance(level model.Importance) ([]model.Record, error) {
	if !level.Valid() {
		return nil, &model.ValidationError{Field: "importance", Reason: "unknown importance " + string(level)}
	}

	var out []model.Record
	for _, k := range model.Kinds {
		mu := s.locks[k]
		mu.Lock()
		col, err := s.loadKind(k)
		mu.Unlock()
		if err != nil {
			return nil, err
		}
		for _, r := range col.records {
			if r.Status == model.StatusActive && r.Importance == level {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CoreMemories returns the identity-level records loaded at session start.
func (s *Store) CoreMemories() ([]model.Record, error) {
	return s.ListByImportance(model.ImportanceCore)
}
