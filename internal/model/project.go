package model

import "time"

// ProjectEntry is one item appended to a project-scoped collection.
// Priority is set for tasks only.
type ProjectEntry struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	AddedAt  time.Time `json:"added_at"`
	Priority string    `json:"priority,omitempty"`
}

// ProjectDoc is the persisted per-project document: a small profile plus
// four append-only collections.
type ProjectDoc struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	TechStack    []string       `json:"tech_stack,omitempty"`
	CurrentFocus string         `json:"current_focus,omitempty"`
	LastActive   time.Time      `json:"last_active"`
	Tasks        []ProjectEntry `json:"tasks"`
	Completed    []ProjectEntry `json:"completed"`
	Decisions    []ProjectEntry `json:"decisions"`
	Pitfalls     []ProjectEntry `json:"pitfalls"`
}
