package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context <tag> [tag...]",
		Short: "Recall records triggered by context tags",
		Long:  "Return active records whose context_tags intersect the given tags, most-accessed first.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().IntP("limit", "l", 5, "Max results")
	cmd.Flags().Bool("touch", false, "Record the access on every returned record")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	touch, _ := cmd.Flags().GetBool("touch")

	s, _ := openStore()
	records, err := s.QueryByContext(args, limit)
	if err != nil {
		exitErr("context", err)
	}

	if touch {
		for _, r := range records {
			if err := s.MarkAccessed(r.Kind, r.ID); err != nil {
				exitErr("touch", err)
			}
		}
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
