// Package store implements the durable record store: one JSON document per
// record kind, plus conflict detection, the lifecycle sweep, and the
// query/access layer over them.
package store

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/MeliodasZHAO/claude-memory/internal/docfile"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Store is the durable collection of typed records. Every mutating call is
// a whole-document read-modify-write serialized by a per-kind lock.
type Store struct {
	cfg Config

	locks map[model.Kind]*sync.Mutex
	metaMu sync.Mutex

	idMu    sync.Mutex
	entropy *rand.Rand
}

// Metadata is the store-level metadata document, refreshed on every save.
type Metadata struct {
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"last_updated"`
	Version     string    `json:"version"`
}

// Open creates the memory directory if needed and returns a ready store.
func Open(cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}

	s := &Store{
		cfg:     cfg,
		locks:   make(map[model.Kind]*sync.Mutex, len(model.Kinds)),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, k := range model.Kinds {
		s.locks[k] = &sync.Mutex{}
	}

	if err := s.ensureMetadata(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the injected configuration.
func (s *Store) Config() Config {
	return s.cfg
}

func (s *Store) newID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) ensureMetadata() error {
	path := s.cfg.MetadataPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	now := time.Now().UTC()
	return docfile.Save(path, Metadata{Created: now, LastUpdated: now, Version: "1.0"})
}

// touchMetadata refreshes last_updated. Called inside every mutating
// operation, after the collection document has been persisted.
func (s *Store) touchMetadata() {
	s.metaMu.Lock()
	defer s.metaMu.Unlock()

	var meta Metadata
	corrupt, err := docfile.Load(s.cfg.MetadataPath(), &meta)
	if err != nil || corrupt || meta.Created.IsZero() {
		meta = Metadata{Created: time.Now().UTC(), Version: "1.0"}
	}
	meta.LastUpdated = time.Now().UTC()
	if err := docfile.Save(s.cfg.MetadataPath(), &meta); err != nil {
		log.Warn("metadata update failed", "err", err)
	}
}

// collection is one loaded kind document.
type collection struct {
	records map[string]model.Record
	corrupt bool
}

// loadKind reads the document for a kind. Parse failures fall back to an
// empty collection with the corrupt flag set (lenient load).
func (s *Store) loadKind(k model.Kind) (collection, error) {
	records := make(map[string]model.Record)
	corrupt, err := docfile.Load(s.cfg.KindPath(k), &records)
	if err != nil {
		return collection{}, err
	}
	if corrupt {
		log.Warn("document failed to parse, treating as empty", "kind", k, "path", s.cfg.KindPath(k))
		records = make(map[string]model.Record)
	}
	return collection{records: records, corrupt: corrupt}, nil
}

func (s *Store) saveKind(k model.Kind, c collection) error {
	if err := docfile.Save(s.cfg.KindPath(k), c.records); err != nil {
		return err
	}
	s.touchMetadata()
	return nil
}
