package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// singleValueCategories are fact categories a user can hold only one active
// value for at a time.
var singleValueCategories = []string{
	"location",
	"occupation",
	"current_city",
	"current_company",
}

// DetectConflicts scans active facts for contradictions: more than one active
// fact in a single-valued category yields one report naming all members.
// The scan never mutates records; resolution is the caller's job.
func (s *Store) DetectConflicts() ([]model.ConflictReport, error) {
	facts, err := s.ListActive(model.KindFact, "")
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]model.Record)
	for _, f := range facts {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	var reports []model.ConflictReport
	for _, category := range singleValueCategories {
		members := byCategory[category]
		if len(members) < 2 {
			continue
		}
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		reports = append(reports, model.ConflictReport{
			ConflictID:          "conflict_" + uuid.NewString(),
			MemoryIDs:           ids,
			ConflictType:        "contradiction",
			Description:         fmt.Sprintf("Multiple active facts in %q category", category),
			SuggestedResolution: "Keep the most recent or highest confidence entry",
			Confidence:          0.9,
		})
	}
	return reports, nil
}
