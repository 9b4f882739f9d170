package store

import (
	"sort"
	"strings"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Search returns active records whose content or any tag contains the query,
// case-insensitive, across one kind or all of them.
func (s *Store) Search(query string, kind model.Kind) ([]model.Record, error) {
	kinds := model.Kinds
	if kind != "" {
		if !kind.Valid() {
			return nil, &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
		}
		kinds = []model.Kind{kind}
	}

	q := strings.ToLower(query)
	var out []model.Record

	for _, k := range kinds {
		mu := s.locks[k]
		mu.Lock()
		col, err := s.loadKind(k)
		mu.Unlock()
		if err != nil {
			return nil, err
		}

		for _, r := range col.records {
			if r.Status != model.StatusActive {
				continue
			}
			if matchesQuery(r, q) {
				out = append(out, r)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchesQuery(r model.Record, q string) bool {
	if strings.Contains(strings.ToLower(r.Content), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// QueryByContext returns active records of any kind whose context_tags
// intersect the given set, most-accessed first, truncated to limit.
func (s *Store) QueryByContext(contextTags []string, limit int) ([]model.Record, error) {
	if limit <= 0 {
		limit = 5
	}

	want := make(map[string]bool, len(contextTags))
	for _, t := range contextTags {
		want[t] = true
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
			if r.Status != model.StatusActive {
				continue
			}
			for _, t := range r.ContextTags {
				if want[t] {
					out = append(out, r)
					break
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AccessCount != out[j].AccessCount {
			return out[i].AccessCount > out[j].AccessCount
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
