package store

import (
	"errors"
	"testing"
	"time"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func TestAddIdempotent(t *testing.T) {
	s := newTestStore(t)

	first := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})
	second := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "  lives in beijing ", Category: "Location", Source: "other"})
	if first != second {
		t.Errorf("expected duplicate add to return existing id %s, got %s", first, second)
	}

	rec, err := s.Get(model.KindFact, first)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Source != "conversation" {
		t.Errorf("duplicate add must not mutate the existing record, source = %q", rec.Source)
	}

	facts, err := s.ListActive(model.KindFact, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(facts) != 1 {
		t.Errorf("expected 1 fact, got %d", len(facts))
	}
}

func TestAddDefaults(t *testing.T) {
	s := newTestStore(t)

	id := mustAdd(t, s, AddParams{Kind: model.KindPreference, Content: "Prefers tabs", Category: "coding", Source: "conversation"})
	rec, err := s.Get(model.KindPreference, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Confidence != 1.0 {
		t.Errorf("confidence default = %v, want 1.0", rec.Confidence)
	}
	if rec.Importance != model.ImportanceActive {
		t.Errorf("importance default = %s, want active", rec.Importance)
	}
	if rec.Strength != model.StrengthModerate {
		t.Errorf("strength default = %s, want moderate", rec.Strength)
	}
	if rec.Status != model.StatusActive {
		t.Errorf("status = %s, want active", rec.Status)
	}
}

func TestAddSupersedes(t *testing.T) {
	s := newTestStore(t)

	oldID := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})
	newID := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Shanghai", Category: "location", Source: "conversation", Supersedes: oldID})

	old, err := s.Get(model.KindFact, oldID)
	if err != nil {
		t.Fatalf("get old: %v", err)
	}
	if old.Status != model.StatusDeprecated {
		t.Errorf("superseded fact status = %s, want deprecated", old.Status)
	}

	cur, err := s.Get(model.KindFact, newID)
	if err != nil {
		t.Fatalf("get new: %v", err)
	}
	if cur.Supersedes != oldID {
		t.Errorf("supersedes = %q, want %q", cur.Supersedes, oldID)
	}
	if cur.Status != model.StatusActive {
		t.Errorf("new fact status = %s, want active", cur.Status)
	}
}

func TestAddSupersedesDangling(t *testing.T) {
	s := newTestStore(t)

	// A nonexistent target is tolerated: the insert succeeds, the edge dangles.
	id := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Shanghai", Category: "location", Source: "conversation", Supersedes: "no-such-id"})
	rec, err := s.Get(model.KindFact, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Supersedes != "no-such-id" {
		t.Errorf("dangling supersedes edge must be kept, got %q", rec.Supersedes)
	}
}

func TestDeleteLeavesSupersedesDangling(t *testing.T) {
	s := newTestStore(t)

	oldID := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})
	newID := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Shanghai", Category: "location", Source: "conversation", Supersedes: oldID})

	if err := s.Delete(model.KindFact, oldID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rec, err := s.Get(model.KindFact, newID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Supersedes != oldID {
		t.Errorf("delete must not rewrite referencing records, supersedes = %q", rec.Supersedes)
	}
}

func TestUpdateFields(t *testing.T) {
	s := newTestStore(t)

	id := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})

	content := "Lives in Beijing, Chaoyang district"
	conf := 0.8
	imp := model.ImportanceCore
	if err := s.Update(model.KindFact, id, UpdateParams{Content: &content, Confidence: &conf, Importance: &imp}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rec, err := s.Get(model.KindFact, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Content != content || rec.Confidence != conf || rec.Importance != imp {
		t.Errorf("update not applied: %+v", rec)
	}
	if rec.ID != id || rec.Kind != model.KindFact {
		t.Error("id and kind must be immutable")
	}
}

func TestUpdateNoResurrection(t *testing.T) {
	s := newTestStore(t)

	id := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})
	if err := s.Deprecate(model.KindFact, id); err != nil {
		t.Fatalf("deprecate: %v", err)
	}

	active := model.StatusActive
	err := s.Update(model.KindFact, id, UpdateParams{Status: &active})
	if !model.IsValidation(err) {
		t.Fatalf("expected validation error reviving a deprecated record, got %v", err)
	}

	rec, _ := s.Get(model.KindFact, id)
	if rec.Status != model.StatusDeprecated {
		t.Errorf("status changed despite rejection: %s", rec.Status)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	content := "x"
	err := s.Update(model.KindFact, "missing", UpdateParams{Content: &content})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAbsenceIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Get(model.KindFact, "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for unknown id, got %+v", rec)
	}
}

func TestListActiveFilters(t *testing.T) {
	s := newTestStore(t)

	a := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})
	mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Works at Acme", Category: "occupation", Source: "conversation"})
	dep := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Old fact", Category: "location", Source: "conversation"})
	if err := s.Deprecate(model.KindFact, dep); err != nil {
		t.Fatalf("deprecate: %v", err)
	}

	loc, err := s.ListActive(model.KindFact, "location")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(loc) != 1 || loc[0].ID != a {
		t.Errorf("category filter returned %+v", loc)
	}

	all, err := s.ListActive(model.KindFact, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 active facts, got %d", len(all))
	}
}

func TestListActiveNewestFirst(t *testing.T) {
	s := newTestStore(t)

	older := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "First", Category: "general", Source: "conversation"})
	newer := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Second", Category: "general", Source: "conversation"})
	backdate(t, s, model.KindFact, older, func(r *model.Record) {
		r.CreatedAt = time.Now().UTC().Add(-time.Hour)
	})

	facts, err := s.ListActive(model.KindFact, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(facts) != 2 || facts[0].ID != newer || facts[1].ID != older {
		t.Errorf("wrong ordering: %v then %v", facts[0].ID, facts[1].ID)
	}
}

func TestMarkAccessed(t *testing.T) {
	s := newTestStore(t)

	id := mustAdd(t, s, AddParams{Kind: model.KindExperience, Content: "Shipped v1", Category: "activity", Source: "conversation"})

	for i := 0; i < 3; i++ {
		if err := s.MarkAccessed(model.KindExperience, id); err != nil {
			t.Fatalf("mark accessed: %v", err)
		}
	}

	rec, err := s.Get(model.KindExperience, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.AccessCount != 3 {
		t.Errorf("access_count = %d, want 3", rec.AccessCount)
	}
	if rec.LastAccessed == nil {
		t.Error("last_accessed not set")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	id := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Temporary", Category: "general", Source: "conversation"})
	if err := s.Delete(model.KindFact, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rec, err := s.Get(model.KindFact, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec != nil {
		t.Errorf("record still present after delete")
	}
	if err := s.Delete(model.KindFact, id); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestRecordFromStagedItem(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Record(model.StagedItem{Kind: model.StagedExperience, Content: "Debugged the importer"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	rec, err := s.Get(model.KindExperience, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Category != "activity" {
		t.Errorf("experience default category = %q, want activity", rec.Category)
	}
	if rec.Source != "conversation" {
		t.Errorf("default source = %q", rec.Source)
	}

	if _, err := s.Record(model.StagedItem{Kind: model.StagedTask, Content: "x", Project: "p"}); err == nil {
		t.Error("project kinds must be rejected by the record store")
	}
}
