package store

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// SweepParams configures the lifecycle sweep thresholds.
type SweepParams struct {
	DaysActive     int // default 7
	DaysContextual int // default 30
}

// SweepResult summarizes one lifecycle sweep. Per-kind persistence failures
// are collected rather than aborting the sweep.
type SweepResult struct {
	Scanned      int      `json:"scanned"`
	Promoted     int      `json:"promoted"`
	ToContextual int      `json:"demoted_contextual"`
	ToArchived   int      `json:"demoted_archived"`
	Errors       []string `json:"errors,omitempty"`
}

// RunLifecycleSweep recomputes the importance tier of every active record
// from its access statistics. Each record is evaluated independently against
// reference = last_accessed (or created_at when never accessed):
//
//  1. core records are never touched
//  2. reference within DaysActive and access_count >= 3: promote to active,
//     from any tier — recency plus frequency always wins
//  3. reference older than DaysActive while active: demote to contextual
//  4. reference older than DaysContextual while contextual: demote to archived
//
// The sweep is idempotent and order-independent.
func (s *Store) RunLifecycleSweep(p SweepParams) (*SweepResult, error) {
	if p.DaysActive <= 0 {
		p.DaysActive = 7
	}
	if p.DaysContextual <= 0 {
		p.DaysContextual = 30
	}

	now := time.Now().UTC()
	activeCutoff := now.AddDate(0, 0, -p.DaysActive)
	contextualCutoff := now.AddDate(0, 0, -p.DaysContextual)

	res := &SweepResult{}

	for _, k := range model.Kinds {
		mu := s.locks[k]
		mu.Lock()

		col, err := s.loadKind(k)
		if err != nil {
			mu.Unlock()
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", k, err))
			continue
		}

		changed := false
		for id, r := range col.records {
			if r.Status != model.StatusActive {
				continue
			}
			res.Scanned++
			if r.Importance == model.ImportanceCore {
				continue
			}

			ref := r.Reference()
			switch {
			case !ref.Before(activeCutoff) && r.AccessCount >= 3:
				if r.Importance != model.ImportanceActive {
					r.Importance = model.ImportanceActive
					r.UpdatedAt = now
					col.records[id] = r
					res.Promoted++
					changed = true
				}
			case ref.Before(activeCutoff) && r.Importance == model.ImportanceActive:
				r.Importance = model.ImportanceContextual
				r.UpdatedAt = now
				col.records[id] = r
				res.ToContextual++
				changed = true
			case ref.Before(contextualCutoff) && r.Importance == model.ImportanceContextual:
				r.Importance = model.ImportanceArchived
				r.UpdatedAt = now
				col.records[id] = r
				res.ToArchived++
				changed = true
			}
		}

		if changed {
			if err := s.saveKind(k, col); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", k, err))
			}
		}
		mu.Unlock()
	}

	log.Info("lifecycle sweep finished",
		"scanned", res.Scanned,
		"promoted", res.Promoted,
		"contextual", res.ToContextual,
		"archived", res.ToArchived,
		"errors", len(res.Errors))
	return res, nil
}
