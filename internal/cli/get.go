package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Get a record by kind and id",
		Args:  cobra.ExactArgs(2),
		Run:   runGet,
	}

	cmd.Flags().Bool("touch", false, "Record the access (increments access_count)")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	kind := model.Kind(args[0])
	id := args[1]
	touch, _ := cmd.Flags().GetBool("touch")

	s, _ := openStore()
	rec, err := s.Get(kind, id)
	if err != nil {
		exitErr("get", err)
	}
	if rec == nil {
		exitErr("get", fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound))
	}

	if touch {
		if err := s.MarkAccessed(kind, id); err != nil {
			exitErr("touch", err)
		}
		rec, err = s.Get(kind, id)
		if err != nil {
			exitErr("get", err)
		}
	}

	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(b))
}
