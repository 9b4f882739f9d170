package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MeliodasZHAO/claude-memory/internal/docfile"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Export is the shape of a full-store dump: every kind collection plus the
// metadata document.
type Export struct {
	Facts       map[string]model.Record `json:"facts"`
	Preferences map[string]model.Record `json:"preferences"`
	Experiences map[string]model.Record `json:"experiences"`
	Metadata    Metadata                `json:"metadata"`
}

// ExportAll writes every record of every kind, including deprecated ones,
// as a single JSON document.
func (s *Store) ExportAll(w io.Writer) error {
	out := Export{
		Facts:       make(map[string]model.Record),
		Preferences: make(map[string]model.Record),
		Experiences: make(map[string]model.Record),
	}

	for _, k := range model.Kinds {
		mu := s.locks[k]
		mu.Lock()
		col, err := s.loadKind(k)
		mu.Unlock()
		if err != nil {
			return err
		}
		switch k {
		case model.KindFact:
			out.Facts = col.records
		case model.KindPreference:
			out.Preferences = col.records
		case model.KindExperience:
			out.Experiences = col.records
		}
	}

	docfile.Load(s.cfg.MetadataPath(), &out.Metadata)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Import re-adds records from an export through Add, so the usual dedup and
// validation apply. Deprecated records are skipped. Returns the number of
// records added or matched.
func (s *Store) Import(r io.Reader) (int, error) {
	var in Export
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("parse export: %w", err)
	}

	imported := 0
	for _, coll := range []map[string]model.Record{in.Facts, in.Preferences, in.Experiences} {
		for _, rec := range coll {
			if rec.Status != model.StatusActive {
				continue
			}
			_, err := s.Add(AddParams{
				Kind:        rec.Kind,
				Content:     rec.Content,
				Category:    rec.Category,
				Source:      rec.Source,
				Confidence:  rec.Confidence,
				Tags:        rec.Tags,
				Importance:  rec.Importance,
				ContextTags: rec.ContextTags,
				Strength:    rec.Strength,
				Date:        rec.Date,
				Outcome:     rec.Outcome,
			})
			if err != nil {
				return imported, err
			}
			imported++
		}
	}
	return imported, nil
}
