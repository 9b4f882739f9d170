package staging

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Recorder persists a staged global item (fact/preference/experience) as a
// durable record and returns its id.
type Recorder interface {
	Record(item model.StagedItem) (string, error)
}

// ProjectLog persists a staged project item (task/completed/decision/pitfall)
// into its project document and returns the entry id.
type ProjectLog interface {
	Append(item model.StagedItem) (string, error)
}

// ItemError reports one staged item that failed to commit, keyed by content.
type ItemError struct {
	Kind    model.StagedKind `json:"kind"`
	Content string           `json:"content"`
	Reason  string           `json:"reason"`
}

// Result aggregates one commit batch.
type Result struct {
	Committed int                      `json:"committed"`
	ByKind    map[model.StagedKind]int `json:"by_kind"`
	Errors    []ItemError              `json:"errors,omitempty"`
}

// Commit drains the buffer in insertion order. Each item is its own atomic
// unit: a failure is recorded and the batch continues — best-effort across
// items, never all-or-nothing. After every item has been attempted the
// buffer is cleared unconditionally, so failed items are not retried; they
// must be captured again.
//
// Cancellation between items stops the batch: items already committed stay
// committed, and the remaining items are kept in the buffer.
func (b *Buffer) Commit(ctx context.Context, records Recorder, projects ProjectLog) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return nil, err
	}

	res := &Result{ByKind: make(map[model.StagedKind]int)}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			if saveErr := b.save(items[i:]); saveErr != nil {
				return res, fmt.Errorf("persist remaining staged items: %w", saveErr)
			}
			return res, err
		}

		if _, err := b.commitOne(item, records, projects); err != nil {
			res.Errors = append(res.Errors, ItemError{
				Kind:    item.Kind,
				Content: item.Content,
				Reason:  err.Error(),
			})
			continue
		}
		res.Committed++
		res.ByKind[item.Kind]++
	}

	if err := b.save(nil); err != nil {
		return res, fmt.Errorf("clear staging buffer: %w", err)
	}

	log.Info("staging commit finished", "committed", res.Committed, "errors", len(res.Errors))
	return res, nil
}

func (b *Buffer) commitOne(item model.StagedItem, records Recorder, projects ProjectLog) (string, error) {
	if item.Kind.IsProject() {
		if item.Project == "" {
			return "", fmt.Errorf("project item missing project")
		}
		if projects == nil {
			return "", fmt.Errorf("no project store configured")
		}
		return projects.Append(item)
	}
	return records.Record(item)
}
