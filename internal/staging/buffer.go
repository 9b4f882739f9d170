// Package staging implements the session capture buffer and the commit
// coordinator that drains it into the durable stores.
package staging

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MeliodasZHAO/claude-memory/internal/docfile"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Buffer is the ephemeral, deduplicated queue of records captured during a
// session. It persists to a single document so a commit can happen in a
// later process.
type Buffer struct {
	mu   sync.Mutex
	path string
}

// NewBuffer returns a buffer backed by the document at path.
func NewBuffer(path string) *Buffer {
	return &Buffer{path: path}
}

// AddParams holds parameters for staging an item.
type AddParams struct {
	Kind     model.StagedKind
	Content  string
	Category string
	Tags     []string
	Project  string
	Priority string
	Source   string // default: conversation
}

func normKey(kind model.StagedKind, content, project string) string {
	return string(kind) + "\x00" + strings.ToLower(strings.TrimSpace(content)) + "\x00" + project
}

// Add appends an item, unless an item with the same normalized
// (kind, content, project) is already staged — then the existing item is
// returned unchanged.
func (b *Buffer) Add(p AddParams) (model.StagedItem, error) {
	if !p.Kind.Valid() {
		return model.StagedItem{}, &model.ValidationError{Field: "kind", Reason: "unknown staged kind " + string(p.Kind)}
	}
	if strings.TrimSpace(p.Content) == "" {
		return model.StagedItem{}, &model.ValidationError{Field: "content", Reason: "missing"}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.load()
	if err != nil {
		return model.StagedItem{}, err
	}

	key := normKey(p.Kind, p.Content, p.Project)
	for _, item := range items {
		if normKey(item.Kind, item.Content, item.Project) == key {
			return item, nil
		}
	}

	source := p.Source
	if source == "" {
		source = "conversation"
	}
	item := model.StagedItem{
		Kind:     p.Kind,
		Content:  p.Content,
		Category: p.Category,
		Tags:     p.Tags,
		AddedAt:  time.Now().UTC(),
		Source:   source,
		Project:  p.Project,
		Priority: p.Priority,
	}
	items = append(items, item)
	if err := b.save(items); err != nil {
		return model.StagedItem{}, err
	}
	return item, nil
}

// List returns the staged items in insertion order.
func (b *Buffer) List() ([]model.StagedItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load()
}

// Count returns the number of staged items.
func (b *Buffer) Count() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items, err := b.load()
	return len(items), err
}

// Clear empties the buffer without committing.
func (b *Buffer) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(nil)
}

func (b *Buffer) load() ([]model.StagedItem, error) {
	var items []model.StagedItem
	corrupt, err := docfile.Load(b.path, &items)
	if err != nil {
		return nil, err
	}
	if corrupt {
		log.Warn("staging document failed to parse, treating as empty", "path", b.path)
		return nil, nil
	}
	return items, nil
}

func (b *Buffer) save(items []model.StagedItem) error {
	if items == nil {
		items = []model.StagedItem{}
	}
	return docfile.Save(b.path, items)
}
