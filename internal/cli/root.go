// Package cli implements the claude-memory CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/project"
	"github.com/MeliodasZHAO/claude-memory/internal/staging"
	"github.com/MeliodasZHAO/claude-memory/internal/store"
)

var (
	dirFlag    string
	configFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "claude-memory",
	Short: "Structured long-term memory for a conversational agent",
	Long:  "Typed memory records (facts, preferences, experiences) with dedup, versioning, conflict detection and an importance lifecycle. JSON-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Memory directory (default: $CLAUDE_MEMORY_DIR or ~/.claude-memory/memory)")
	RootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "YAML config file (overrides --dir)")
}

func resolveConfig() (store.Config, error) {
	if configFlag != "" {
		return store.LoadConfig(configFlag)
	}
	dir := dirFlag
	if dir == "" {
		dir = os.Getenv("CLAUDE_MEMORY_DIR")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return store.Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".claude-memory", "memory")
	}
	return store.DefaultConfig(dir), nil
}

func openStore() (*store.Store, store.Config) {
	cfg, err := resolveConfig()
	if err != nil {
		exitErr("config", err)
	}
	s, err := store.Open(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	return s, cfg
}

func openBuffer(cfg store.Config) *staging.Buffer {
	return staging.NewBuffer(cfg.StagingPath())
}

func openProjects(cfg store.Config) *project.Store {
	return project.NewStore(cfg.ProjectsPath())
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
