// Package backup writes zip snapshots of the memory directory. Backups only
// read the persisted documents; they never touch store internals.
package backup

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const metadataName = "backup_metadata.json"

// Info describes one backup archive on disk.
type Info struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	Description string    `json:"description,omitempty"`
}

type metadata struct {
	CreatedAt   time.Time `json:"created_at"`
	Description string    `json:"description,omitempty"`
}

// Create zips every regular file under srcDir (except the backup directory
// itself and temp files) into a timestamped archive in dstDir.
func Create(srcDir, dstDir, description string) (string, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup_full_%s.zip", time.Now().Format("20060102_150405"))
	dst := filepath.Join(dstDir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	meta, _ := json.MarshalIndent(metadata{CreatedAt: time.Now().UTC(), Description: description}, "", "  ")
	mw, err := zw.Create(metadataName)
	if err != nil {
		return "", err
	}
	if _, err := mw.Write(meta); err != nil {
		return "", err
	}

	absBackups, _ := filepath.Abs(dstDir)
	walkErr := filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == absBackups {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && strings.Contains(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if walkErr != nil {
		zw.Close()
		os.Remove(dst)
		return "", fmt.Errorf("archive %s: %w", srcDir, walkErr)
	}

	if err := zw.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// List returns the backups in dstDir, newest first.
func List(dstDir string) ([]Info, error) {
	matches, err := filepath.Glob(filepath.Join(dstDir, "backup_*.zip"))
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, path := range matches {
		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		info := Info{
			Name:      filepath.Base(path),
			Path:      path,
			SizeBytes: stat.Size(),
			CreatedAt: stat.ModTime().UTC(),
		}
		if meta, err := readMetadata(path); err == nil {
			info.CreatedAt = meta.CreatedAt
			info.Description = meta.Description
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Prune removes all but the newest keep backups. Returns how many were
// deleted.
func Prune(dstDir string, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	infos, err := List(dstDir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		if err := os.Remove(info.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func readMetadata(path string) (metadata, error) {
	var meta metadata
	zr, err := zip.OpenReader(path)
	if err != nil {
		return meta, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != metadataName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return meta, err
		}
		defer rc.Close()
		err = json.NewDecoder(rc).Decode(&meta)
		return meta, err
	}
	return meta, fmt.Errorf("no metadata in %s", path)
}
