package model

import "time"

// StagedKind is what a staged item becomes on commit: one of the three
// global record kinds, or one of the project-scoped entry kinds.
type StagedKind string

const (
	StagedFact       StagedKind = "fact"
	StagedPreference StagedKind = "preference"
	StagedExperience StagedKind = "experience"
	StagedTask       StagedKind = "task"
	StagedCompleted  StagedKind = "completed"
	StagedDecision   StagedKind = "decision"
	StagedPitfall    StagedKind = "pitfall"
)

// Valid reports whether k is a known staged kind.
func (k StagedKind) Valid() bool {
	switch k {
	case StagedFact, StagedPreference, StagedExperience,
		StagedTask, StagedCompleted, StagedDecision, StagedPitfall:
		return true
	}
	return false
}

// IsProject reports whether k routes to a project-scoped document.
func (k StagedKind) IsProject() bool {
	switch k {
	case StagedTask, StagedCompleted, StagedDecision, StagedPitfall:
		return true
	}
	return false
}

// RecordKind maps a global staged kind to its record kind.
// ok is false for project-scoped kinds.
func (k StagedKind) RecordKind() (Kind, bool) {
	switch k {
	case StagedFact:
		return KindFact, true
	case StagedPreference:
		return KindPreference, true
	case StagedExperience:
		return KindExperience, true
	}
	return "", false
}

// StagedItem is a pending record captured during a session. It exists only
// until the staging buffer is committed or cleared.
type StagedItem struct {
	Kind     StagedKind `json:"kind"`
	Content  string     `json:"content"`
	Category string     `json:"category,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	AddedAt  time.Time  `json:"added_at"`
	Source   string     `json:"source"`
	Project  string     `json:"project,omitempty"`
	Priority string     `json:"priority,omitempty"`
}

// DefaultCategory returns the category used when a staged item carries none.
func (k StagedKind) DefaultCategory() string {
	if k == StagedExperience {
		return "activity"
	}
	return "general"
}
