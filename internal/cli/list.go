package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active records",
		Run:   runList,
	}

	cmd.Flags().StringP("kind", "k", "fact", "Kind: fact, preference, experience")
	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().String("importance", "", "List by importance tier across all kinds instead")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	category, _ := cmd.Flags().GetString("category")
	importance, _ := cmd.Flags().GetString("importance")

	s, _ := openStore()

	var (
		records []model.Record
		err     error
	)
	if importance != "" {
		records, err = s.ListByImportance(model.Importance(importance))
	} else {
		records, err = s.ListActive(model.Kind(kind), category)
	}
	if err != nil {
		exitErr("list", err)
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
