package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/index"
	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search active records by content or tag",
		Args:  cobra.ExactArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("kind", "k", "", "Restrict to one kind")
	cmd.Flags().Bool("deep", false, "Use the full-text index (records and notes)")
	cmd.Flags().IntP("limit", "l", 10, "Max results (--deep only)")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	deep, _ := cmd.Flags().GetBool("deep")
	limit, _ := cmd.Flags().GetInt("limit")

	if deep {
		_, cfg := openStore()
		ix, err := index.Open(cfg.IndexPath())
		if err != nil {
			exitErr("open index", err)
		}
		defer ix.Close()

		hits, err := ix.Query(cmd.Context(), args[0], limit)
		if err != nil {
			exitErr("search", err)
		}
		b, _ := json.MarshalIndent(hits, "", "  ")
		fmt.Println(string(b))
		return
	}

	s, _ := openStore()
	records, err := s.Search(args[0], model.Kind(kind))
	if err != nil {
		exitErr("search", err)
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
