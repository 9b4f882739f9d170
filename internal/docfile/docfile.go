// Package docfile reads and writes the JSON documents every collection
// persists to. Documents are human-diffable and fully rewritten on save:
// marshal to a temp file in the same directory, then rename over the target.
package docfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load parses the document at path into v.
//
// A missing file leaves v untouched and is not an error: an absent document
// is an empty collection. A parse failure is reported through the corrupt
// flag while v stays untouched — the lenient-load policy — so callers can
// tell "empty store" from "corrupt store masked as empty". Any other I/O
// failure is returned as an error and aborts the calling operation.
func Load(path string, v any) (corrupt bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, nil
	}
	return false, nil
}

// Save rewrites the document at path atomically.
func Save(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
