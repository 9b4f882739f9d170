// Package model defines the core memory record types.
package model

import "time"

// Kind classifies a memory record.
type Kind string

const (
	KindFact       Kind = "fact"
	KindPreference Kind = "preference"
	KindExperience Kind = "experience"
)

// Kinds lists all record kinds in canonical order.
var Kinds = []Kind{KindFact, KindPreference, KindExperience}

// Valid reports whether k is a known record kind.
func (k Kind) Valid() bool {
	switch k {
	case KindFact, KindPreference, KindExperience:
		return true
	}
	return false
}

// Status is the lifecycle state of a record. Transitions are monotonic:
// an active record may become deprecated or conflicted, never the reverse.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
	StatusConflicted Status = "conflicted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeprecated, StatusConflicted:
		return true
	}
	return false
}

// Importance is the retention/priority tier maintained by the lifecycle sweep.
type Importance string

const (
	ImportanceCore       Importance = "core"
	ImportanceActive     Importance = "active"
	ImportanceContextual Importance = "contextual"
	ImportanceArchived   Importance = "archived"
)

// Valid reports whether i is a known importance tier.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceCore, ImportanceActive, ImportanceContextual, ImportanceArchived:
		return true
	}
	return false
}

// Strength grades how firmly a preference is held.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// Valid reports whether s is a known strength.
func (s Strength) Valid() bool {
	switch s {
	case StrengthStrong, StrengthModerate, StrengthWeak:
		return true
	}
	return false
}

// Record is one persisted memory entry. The Kind field selects which of the
// kind-specific fields are meaningful: Supersedes for facts, Strength for
// preferences, Date and Outcome for experiences.
type Record struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Source   string `json:"source"`

	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Confidence float64   `json:"confidence"`
	Status     Status    `json:"status"`
	Tags       []string  `json:"tags,omitempty"`

	Importance   Importance `json:"importance"`
	ContextTags  []string   `json:"context_tags,omitempty"`
	AccessCount  int        `json:"access_count"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`

	// Fact only: id of an older fact this one replaces.
	Supersedes string `json:"supersedes,omitempty"`
	// Preference only.
	Strength Strength `json:"strength,omitempty"`
	// Experience only.
	Date    string `json:"date,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

// Reference is the timestamp the lifecycle sweep evaluates a record by:
// the last access if there was one, otherwise creation time.
func (r *Record) Reference() time.Time {
	if r.LastAccessed != nil {
		return *r.LastAccessed
	}
	return r.CreatedAt
}

// Validate checks the shared invariants plus the kind-gated fields.
func (r *Record) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "missing"}
	}
	if !r.Kind.Valid() {
		return &ValidationError{Field: "kind", Reason: "unknown kind " + string(r.Kind)}
	}
	if r.Content == "" {
		return &ValidationError{Field: "content", Reason: "missing"}
	}
	if r.Category == "" {
		return &ValidationError{Field: "category", Reason: "missing"}
	}
	if r.Source == "" {
		return &ValidationError{Field: "source", Reason: "missing"}
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return &ValidationError{Field: "confidence", Reason: "must be in [0,1]"}
	}
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown status " + string(r.Status)}
	}
	if !r.Importance.Valid() {
		return &ValidationError{Field: "importance", Reason: "unknown importance " + string(r.Importance)}
	}
	if r.AccessCount < 0 {
		return &ValidationError{Field: "access_count", Reason: "negative"}
	}
	switch r.Kind {
	case KindFact:
		if r.Strength != "" {
			return &ValidationError{Field: "strength", Reason: "not valid for facts"}
		}
	case KindPreference:
		if r.Supersedes != "" {
			return &ValidationError{Field: "supersedes", Reason: "only facts supersede"}
		}
		if r.Strength != "" && !r.Strength.Valid() {
			return &ValidationError{Field: "strength", Reason: "unknown strength " + string(r.Strength)}
		}
	case KindExperience:
		if r.Supersedes != "" {
			return &ValidationError{Field: "supersedes", Reason: "only facts supersede"}
		}
		if r.Strength != "" {
			return &ValidationError{Field: "strength", Reason: "not valid for experiences"}
		}
	}
	return nil
}
