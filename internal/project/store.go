// Package project persists project-scoped memory documents and detects
// which project the current working directory belongs to.
package project

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/MeliodasZHAO/claude-memory/internal/docfile"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Store keeps one document per project under a directory. Mutations are
// whole-document read-modify-writes serialized by a per-project lock.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	idMu    sync.Mutex
	entropy *rand.Rand
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{
		dir:     dir,
		locks:   make(map[string]*sync.Mutex),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Store) lockFor(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[projectID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[projectID] = mu
	}
	return mu
}

func (s *Store) newID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// safeName turns a project id like "owner/repo" into a file name.
func safeName(projectID string) string {
	return strings.ReplaceAll(projectID, "/", "__") + ".json"
}

func (s *Store) path(projectID string) string {
	return filepath.Join(s.dir, safeName(projectID))
}

// Append adds a staged project item to its collection, allocating a fresh
// project-local id. Requires item.Project to be set.
func (s *Store) Append(item model.StagedItem) (string, error) {
	if item.Project == "" {
		return "", &model.ValidationError{Field: "project", Reason: "missing"}
	}
	if !item.Kind.IsProject() {
		return "", &model.ValidationError{Field: "kind", Reason: string(item.Kind) + " is not a project kind"}
	}

	mu := s.lockFor(item.Project)
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.load(item.Project)
	if err != nil {
		return "", err
	}

	entry := model.ProjectEntry{
		ID:      s.newID(),
		Content: item.Content,
		AddedAt: time.Now().UTC(),
	}
	if item.Kind == model.StagedTask {
		entry.Priority = item.Priority
	}

	switch item.Kind {
	case model.StagedTask:
		doc.Tasks = append(doc.Tasks, entry)
	case model.StagedCompleted:
		doc.Completed = append(doc.Completed, entry)
	case model.StagedDecision:
		doc.Decisions = append(doc.Decisions, entry)
	case model.StagedPitfall:
		doc.Pitfalls = append(doc.Pitfalls, entry)
	}
	doc.LastActive = time.Now().UTC()

	if err := docfile.Save(s.path(item.Project), doc); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// Get returns the project document, or an empty one when no document exists.
func (s *Store) Get(projectID string) (*model.ProjectDoc, error) {
	if projectID == "" {
		return nil, &model.ValidationError{Field: "project", Reason: "missing"}
	}

	mu := s.lockFor(projectID)
	mu.Lock()
	defer mu.Unlock()
	return s.load(projectID)
}

// ProfileParams selects project profile fields to change.
type ProfileParams struct {
	Description  *string
	TechStack    *[]string
	CurrentFocus *string
}

// UpdateProfile changes the project's profile fields.
func (s *Store) UpdateProfile(projectID string, p ProfileParams) error {
	if projectID == "" {
		return &model.ValidationError{Field: "project", Reason: "missing"}
	}

	mu := s.lockFor(projectID)
	mu.Lock()
	defer mu.Unlock()

	doc, err := s.load(projectID)
	if err != nil {
		return err
	}
	if p.Description != nil {
		doc.Description = *p.Description
	}
	if p.TechStack != nil {
		doc.TechStack = *p.TechStack
	}
	if p.CurrentFocus != nil {
		doc.CurrentFocus = *p.CurrentFocus
	}
	doc.LastActive = time.Now().UTC()
	return docfile.Save(s.path(projectID), doc)
}

// List returns the ids of all projects with a document on disk.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		ids = append(ids, strings.ReplaceAll(id, "__", "/"))
	}
	return ids, nil
}

func (s *Store) load(projectID string) (*model.ProjectDoc, error) {
	doc := &model.ProjectDoc{Name: projectID}
	corrupt, err := docfile.Load(s.path(projectID), doc)
	if err != nil {
		return nil, err
	}
	if corrupt {
		log.Warn("project document failed to parse, treating as empty", "project", projectID)
		doc = &model.ProjectDoc{Name: projectID}
	}
	if doc.Name == "" {
		doc.Name = projectID
	}
	return doc, nil
}
