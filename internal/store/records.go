package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// AddParams holds parameters for adding a record.
type AddParams struct {
	Kind     model.Kind
	Content  string
	Category string
	Source   string

	// Confidence in [0,1]. The zero value means unset and defaults to 1.0.
	Confidence float64
	Tags       []string
	Importance model.Importance // default: active
	ContextTags []string

	// Fact only. The target is deprecated as a side effect of a new insert;
	// a nonexistent target is tolerated and left dangling.
	Supersedes string
	// Preference only. Default: moderate.
	Strength model.Strength
	// Experience only.
	Date    string
	Outcome string
}

// UpdateParams selects fields to change. Nil pointers leave fields alone.
// id, kind and created_at are immutable.
type UpdateParams struct {
	Content     *string
	Category    *string
	Source      *string
	Confidence  *float64
	Status      *model.Status
	Tags        *[]string
	Importance  *model.Importance
	ContextTags *[]string
	Strength    *model.Strength
	Date        *string
	Outcome     *string
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add inserts a new record, or returns the id of an existing active record
// of the same kind whose trimmed, case-folded (content, category) matches —
// idempotent capture, no mutation on the duplicate path.
func (s *Store) Add(p AddParams) (string, error) {
	if !p.Kind.Valid() {
		return "", &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(p.Kind)}
	}

	mu := s.locks[p.Kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(p.Kind)
	if err != nil {
		return "", err
	}

	for id, r := range col.records {
		if r.Status == model.StatusActive &&
			norm(r.Content) == norm(p.Content) &&
			norm(r.Category) == norm(p.Category) {
			return id, nil
		}
	}

	now := time.Now().UTC()
	rec := model.Record{
		ID:          s.newID(),
		Kind:        p.Kind,
		Content:     p.Content,
		Category:    p.Category,
		Source:      p.Source,
		CreatedAt:   now,
		UpdatedAt:   now,
		Confidence:  p.Confidence,
		Status:      model.StatusActive,
		Tags:        p.Tags,
		Importance:  p.Importance,
		ContextTags: p.ContextTags,
	}
	if rec.Confidence == 0 {
		rec.Confidence = 1.0
	}
	if rec.Importance == "" {
		rec.Importance = model.ImportanceActive
	}
	switch p.Kind {
	case model.KindFact:
		rec.Supersedes = p.Supersedes
	case model.KindPreference:
		rec.Strength = p.Strength
		if rec.Strength == "" {
			rec.Strength = model.StrengthModerate
		}
	case model.KindExperience:
		rec.Date = p.Date
		rec.Outcome = p.Outcome
	}

	if err := rec.Validate(); err != nil {
		return "", err
	}

	col.records[rec.ID] = rec

	// Deprecate the superseded fact in the same write. A missing target is
	// left as a dangling reference.
	if rec.Supersedes != "" {
		if old, ok := col.records[rec.Supersedes]; ok {
			old.Status = model.StatusDeprecated
			old.UpdatedAt = now
			col.records[rec.Supersedes] = old
		}
	}

	if err := s.saveKind(p.Kind, col); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Get returns the record, or nil when the id is unknown. Lookups do not
// fail on absence.
func (s *Store) Get(kind model.Kind, id string) (*model.Record, error) {
	if !kind.Valid() {
		return nil, nil
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return nil, err
	}
	if r, ok := col.records[id]; ok {
		return &r, nil
	}
	return nil, nil
}

// ListActive returns active records of a kind, optionally filtered by
// category, newest first.
func (s *Store) ListActive(kind model.Kind, category string) ([]model.Record, error) {
	if !kind.Valid() {
		return nil, &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return nil, err
	}

	var out []model.Record
	for _, r := range col.records {
		if r.Status != model.StatusActive {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies the selected fields and refreshes updated_at.
// Status changes must follow the monotonic transition rules.
func (s *Store) Update(kind model.Kind, id string, p UpdateParams) error {
	if !kind.Valid() {
		return &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return err
	}
	r, ok := col.records[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}

	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Source != nil {
		r.Source = *p.Source
	}
	if p.Confidence != nil {
		r.Confidence = *p.Confidence
	}
	if p.Status != nil {
		if r.Status != model.StatusActive && *p.Status == model.StatusActive {
			return &model.ValidationError{Field: "status", Reason: "no resurrection from " + string(r.Status)}
		}
		r.Status = *p.Status
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Importance != nil {
		r.Importance = *p.Importance
	}
	if p.ContextTags != nil {
		r.ContextTags = *p.ContextTags
	}
	if p.Strength != nil {
		r.Strength = *p.Strength
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Outcome != nil {
		r.Outcome = *p.Outcome
	}
	r.UpdatedAt = time.Now().UTC()

	if err := r.Validate(); err != nil {
		return err
	}
	col.records[id] = r
	return s.saveKind(kind, col)
}

// Deprecate marks a record deprecated and refreshes updated_at.
func (s *Store) Deprecate(kind model.Kind, id string) error {
	if !kind.Valid() {
		return &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return err
	}
	r, ok := col.records[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	r.Status = model.StatusDeprecated
	r.UpdatedAt = time.Now().UTC()
	col.records[id] = r
	return s.saveKind(kind, col)
}

// Delete removes a record permanently. Irreversible. Records referencing the
// deleted id via supersedes are not touched; the dangling edge stays.
func (s *Store) Delete(kind model.Kind, id string) error {
	if !kind.Valid() {
		return &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return err
	}
	if _, ok := col.records[id]; !ok {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	delete(col.records, id)
	return s.saveKind(kind, col)
}

// MarkAccessed increments access_count and sets last_accessed. Callers must
// invoke it whenever a record is actually surfaced; it is the only feedback
// signal the lifecycle sweep consumes.
func (s *Store) MarkAccessed(kind model.Kind, id string) error {
	if !kind.Valid() {
		return &model.ValidationError{Field: "kind", Reason: "unknown kind " + string(kind)}
	}

	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	col, err := s.loadKind(kind)
	if err != nil {
		return err
	}
	r, ok := col.records[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	now := time.Now().UTC()
	r.AccessCount++
	r.LastAccessed = &now
	col.records[id] = r
	return s.saveKind(kind, col)
}

// Record persists a staged global item through Add, applying the staged
// defaults for category and source. Used by the commit coordinator.
func (s *Store) Record(item model.StagedItem) (string, error) {
	kind, ok := item.Kind.RecordKind()
	if !ok {
		return "", &model.ValidationError{Field: "kind", Reason: string(item.Kind) + " is not a global kind"}
	}
	category := item.Category
	if category == "" {
		category = item.Kind.DefaultCategory()
	}
	source := item.Source
	if source == "" {
		source = "conversation"
	}
	return s.Add(AddParams{
		Kind:     kind,
		Content:  item.Content,
		Category: category,
		Source:   source,
		Tags:     item.Tags,
	})
}
