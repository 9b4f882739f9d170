package store

import (
	"os"
	"testing"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DefaultConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, p AddParams) string {
	t.Helper()
	id, err := s.Add(p)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return id
}

// backdate rewrites stored fields tests cannot set through the public API.
func backdate(t *testing.T, s *Store, kind model.Kind, id string, mutate func(*model.Record)) {
	t.Helper()
	col, err := s.loadKind(kind)
	if err != nil {
		t.Fatalf("load %s: %v", kind, err)
	}
	r, ok := col.records[id]
	if !ok {
		t.Fatalf("record %s not found", id)
	}
	mutate(&r)
	col.records[id] = r
	if err := s.saveKind(kind, col); err != nil {
		t.Fatalf("save %s: %v", kind, err)
	}
}

func TestOpenCreatesMetadata(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(DefaultConfig(dir))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := os.Stat(s.Config().MetadataPath()); err != nil {
		t.Errorf("metadata file missing: %v", err)
	}
}

func TestCorruptDocumentLoadsEmpty(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Lives in Beijing", Category: "location", Source: "conversation"})

	if err := os.WriteFile(s.Config().KindPath(model.KindFact), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	facts, err := s.ListActive(model.KindFact, "")
	if err != nil {
		t.Fatalf("list after corruption: %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("expected empty collection after corruption, got %d", len(facts))
	}

	// The store keeps working: a fresh add lands in a new, valid document.
	id := mustAdd(t, s, AddParams{Kind: model.KindFact, Content: "Works at Acme", Category: "occupation", Source: "conversation"})
	got, err := s.Get(model.KindFact, id)
	if err != nil || got == nil {
		t.Fatalf("get after re-add: %v, %v", got, err)
	}
}
