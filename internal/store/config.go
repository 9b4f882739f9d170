package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

// Config locates every document the store reads and writes. It is injected
// at construction; nothing in the store reads ambient globals.
type Config struct {
	// BaseDir is the memory directory holding all documents.
	BaseDir string `yaml:"base_dir"`

	// KindFiles maps a record kind to its document file name within BaseDir.
	KindFiles map[model.Kind]string `yaml:"kind_files,omitempty"`

	// MetadataFile is the store metadata document name.
	MetadataFile string `yaml:"metadata_file,omitempty"`

	// StagingFile is the staging buffer document name.
	StagingFile string `yaml:"staging_file,omitempty"`

	// ProjectsDir is the subdirectory for per-project documents.
	ProjectsDir string `yaml:"projects_dir,omitempty"`

	// IndexFile is the derived full-text index database name.
	IndexFile string `yaml:"index_file,omitempty"`

	// BackupDir is where zip backups are written.
	BackupDir string `yaml:"backup_dir,omitempty"`

	// NotesDir holds free-form markdown notes picked up by the index.
	NotesDir string `yaml:"notes_dir,omitempty"`
}

// DefaultConfig returns the standard layout under baseDir.
func DefaultConfig(baseDir string) Config {
	return Config{
		BaseDir: baseDir,
		KindFiles: map[model.Kind]string{
			model.KindFact:       "facts.json",
			model.KindPreference: "preferences.json",
			model.KindExperience: "experiences.json",
		},
		MetadataFile: "metadata.json",
		StagingFile:  ".staging.json",
		ProjectsDir:  "projects",
		IndexFile:    "index.db",
		BackupDir:    "backups",
		NotesDir:     "notes",
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		return Config{}, fmt.Errorf("config: %s: base_dir is required", path)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig(c.BaseDir)
	if c.KindFiles == nil {
		c.KindFiles = def.KindFiles
	}
	if c.MetadataFile == "" {
		c.MetadataFile = def.MetadataFile
	}
	if c.StagingFile == "" {
		c.StagingFile = def.StagingFile
	}
	if c.ProjectsDir == "" {
		c.ProjectsDir = def.ProjectsDir
	}
	if c.IndexFile == "" {
		c.IndexFile = def.IndexFile
	}
	if c.BackupDir == "" {
		c.BackupDir = def.BackupDir
	}
	if c.NotesDir == "" {
		c.NotesDir = def.NotesDir
	}
	return c
}

// KindPath returns the absolute path of the document for a record kind.
func (c Config) KindPath(k model.Kind) string {
	name, ok := c.KindFiles[k]
	if !ok {
		name = string(k) + "s.json"
	}
	return filepath.Join(c.BaseDir, name)
}

// MetadataPath returns the absolute path of the metadata document.
func (c Config) MetadataPath() string {
	return filepath.Join(c.BaseDir, c.MetadataFile)
}

// StagingPath returns the absolute path of the staging document.
func (c Config) StagingPath() string {
	return filepath.Join(c.BaseDir, c.StagingFile)
}

// ProjectsPath returns the absolute path of the projects directory.
func (c Config) ProjectsPath() string {
	return filepath.Join(c.BaseDir, c.ProjectsDir)
}

// IndexPath returns the absolute path of the search index database.
func (c Config) IndexPath() string {
	return filepath.Join(c.BaseDir, c.IndexFile)
}

// BackupPath returns the absolute path of the backup directory.
func (c Config) BackupPath() string {
	return filepath.Join(c.BaseDir, c.BackupDir)
}

// NotesPath returns the absolute path of the notes directory.
func (c Config) NotesPath() string {
	return filepath.Join(c.BaseDir, c.NotesDir)
}
