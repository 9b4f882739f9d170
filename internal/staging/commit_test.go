package staging

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

type fakeRecorder struct {
	items  []model.StagedItem
	failOn string // content that triggers an error
	onCall func() // runs after each successful call
}

func (f *fakeRecorder) Record(item model.StagedItem) (string, error) {
	if item.Content == f.failOn {
		return "", errors.New("store rejected item")
	}
	f.items = append(f.items, item)
	if f.onCall != nil {
		f.onCall()
	}
	return "id-" + item.Content, nil
}

type fakeProjectLog struct {
	items []model.StagedItem
}

func (f *fakeProjectLog) Append(item model.StagedItem) (string, error) {
	f.items = append(f.items, item)
	return "entry-" + item.Content, nil
}

func TestCommitRoutesByKind(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	stage := func(p AddParams) {
		t.Helper()
		if _, err := b.Add(p); err != nil {
			t.Fatalf("stage: %v", err)
		}
	}
	stage(AddParams{Kind: model.StagedFact, Content: "Lives in Beijing"})
	stage(AddParams{Kind: model.StagedPreference, Content: "Prefers tabs"})
	stage(AddParams{Kind: model.StagedTask, Content: "Write the parser", Project: "demo", Priority: "high"})

	records := &fakeRecorder{}
	projects := &fakeProjectLog{}
	res, err := b.Commit(context.Background(), records, projects)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if res.Committed != 3 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v", res)
	}
	if res.ByKind[model.StagedFact] != 1 || res.ByKind[model.StagedPreference] != 1 || res.ByKind[model.StagedTask] != 1 {
		t.Errorf("by_kind = %+v", res.ByKind)
	}
	if len(records.items) != 2 {
		t.Errorf("record store got %d items, want 2", len(records.items))
	}
	if len(projects.items) != 1 || projects.items[0].Project != "demo" {
		t.Errorf("project log got %+v", projects.items)
	}

	n, _ := b.Count()
	if n != 0 {
		t.Errorf("buffer not drained, count = %d", n)
	}
}

func TestCommitBestEffort(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	for _, c := range []string{"good one", "bad one", "good two"} {
		if _, err := b.Add(AddParams{Kind: model.StagedFact, Content: c}); err != nil {
			t.Fatalf("stage: %v", err)
		}
	}

	records := &fakeRecorder{failOn: "bad one"}
	res, err := b.Commit(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if res.Committed != 2 {
		t.Errorf("committed = %d, want 2", res.Committed)
	}
	if len(res.Errors) != 1 || res.Errors[0].Content != "bad one" {
		t.Errorf("errors = %+v", res.Errors)
	}
	if len(records.items) != 2 {
		t.Errorf("items after failing middle = %d, batch must continue", len(records.items))
	}

	// Failed items are dropped with the rest: the buffer is cleared
	// unconditionally once every item has been attempted.
	n, _ := b.Count()
	if n != 0 {
		t.Errorf("buffer count after commit = %d, want 0", n)
	}
}

func TestCommitProjectItemWithoutProject(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	// Bypass Add so a malformed item reaches the coordinator, as it can when
	// the staging document was written by an older build.
	if err := b.save([]model.StagedItem{{Kind: model.StagedTask, Content: "orphan task"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := b.Commit(context.Background(), &fakeRecorder{}, &fakeProjectLog{})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.Committed != 0 || len(res.Errors) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestCommitNilProjectLog(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	if _, err := b.Add(AddParams{Kind: model.StagedDecision, Content: "Use sqlite", Project: "demo"}); err != nil {
		t.Fatalf("stage: %v", err)
	}

	res, err := b.Commit(context.Background(), &fakeRecorder{}, nil)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.Committed != 0 || len(res.Errors) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestCommitCancellationKeepsTail(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	for _, c := range []string{"first", "second", "third"} {
		if _, err := b.Add(AddParams{Kind: model.StagedFact, Content: c}); err != nil {
			t.Fatalf("stage: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	records := &fakeRecorder{onCall: cancel} // cancel right after the first item lands

	res, err := b.Commit(ctx, records, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Committed != 1 {
		t.Errorf("committed = %d, want 1", res.Committed)
	}
	if len(records.items) != 1 || records.items[0].Content != "first" {
		t.Errorf("store got %+v", records.items)
	}

	// The uncommitted tail survives for a later commit.
	items, listErr := b.List()
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(items) != 2 || items[0].Content != "second" || items[1].Content != "third" {
		t.Errorf("remaining items = %+v", items)
	}
}

func TestCommitEmptyBuffer(t *testing.T) {
	b := NewBuffer(filepath.Join(t.TempDir(), ".staging.json"))

	res, err := b.Commit(context.Background(), &fakeRecorder{}, nil)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if res.Committed != 0 || len(res.Errors) != 0 {
		t.Errorf("result = %+v", res)
	}
}
