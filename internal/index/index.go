// Package index maintains a derived full-text search index over committed
// records and markdown notes. The index is SQLite FTS5 and can be rebuilt
// from scratch at any time; the JSON documents stay the source of truth.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Index is the FTS database handle.
type Index struct {
	db *sql.DB
}

// Hit is one search match.
type Hit struct {
	Ref     string `json:"ref"`  // record id, or note path with chunk ordinal
	Kind    string `json:"kind"` // record kind, or "note"
	Snippet string `json:"snippet"`
}

// Open opens or creates the index database at path.
func Open(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	ix := &Index{db: db}
	if err := ix.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate index: %w", err)
	}
	return ix, nil
}

func (ix *Index) migrate() error {
	_, err := ix.db.Exec(`
	CREATE VIRTUAL TABLE IF NOT EXISTS entries USING fts5(
		ref UNINDEXED,
		kind UNINDEXED,
		origin UNINDEXED,
		text
	);`)
	return err
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// RebuildRecords replaces all record rows with the given records. Content
// and tags are indexed together.
func (ix *Index) RebuildRecords(ctx context.Context, records []model.Record) (int, error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE origin = 'record'`); err != nil {
		return 0, err
	}

	n := 0
	for _, r := range records {
		text := r.Content
		for _, t := range r.Tags {
			text += " " + t
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entries (ref, kind, origin, text) VALUES (?, ?, 'record', ?)`,
			r.ID, string(r.Kind), text)
		if err != nil {
			return 0, fmt.Errorf("index record %s: %w", r.ID, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// RebuildNotes replaces all note rows by walking dir for markdown files and
// indexing them paragraph by paragraph.
func (ix *Index) RebuildNotes(ctx context.Context, dir string) (int, error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE origin = 'note'`); err != nil {
		return 0, err
	}

	n := 0
	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		for i, chunk := range splitParagraphs(string(raw)) {
			ref := fmt.Sprintf("%s#%d", rel, i)
			_, err := tx.ExecContext(ctx,
				`INSERT INTO entries (ref, kind, origin, text) VALUES (?, 'note', 'note', ?)`,
				ref, chunk)
			if err != nil {
				return fmt.Errorf("index note %s: %w", ref, err)
			}
			n++
		}
		return nil
	})
	if walkErr != nil {
		return 0, walkErr
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Query runs a full-text match and returns snippets, best match first.
func (ix *Index) Query(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := ix.db.QueryContext(ctx, `
		SELECT ref, kind, snippet(entries, 3, '[', ']', '…', 12)
		FROM entries WHERE entries MATCH ?
		ORDER BY rank LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Ref, &h.Kind, &h.Snippet); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
