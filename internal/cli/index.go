package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/index"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the derived full-text search index",
	}

	rebuildCmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the index from records and notes",
		Long:  "Reindex every active record and every markdown note. The index is derived data; the JSON documents stay the source of truth.",
		Run:   runIndexRebuild,
	}

	indexCmd.AddCommand(rebuildCmd)
	RootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, args []string) {
	s, cfg := openStore()

	ix, err := index.Open(cfg.IndexPath())
	if err != nil {
		exitErr("open index", err)
	}
	defer ix.Close()

	var records []model.Record
	for _, k := range model.Kinds {
		active, err := s.ListActive(k, "")
		if err != nil {
			exitErr("index rebuild", err)
		}
		records = append(records, active...)
	}

	nRecords, err := ix.RebuildRecords(cmd.Context(), records)
	if err != nil {
		exitErr("index rebuild", err)
	}
	nNotes, err := ix.RebuildNotes(cmd.Context(), cfg.NotesPath())
	if err != nil {
		exitErr("index rebuild", err)
	}

	fmt.Printf("{\"records\": %d, \"note_chunks\": %d}\n", nRecords, nNotes)
}
