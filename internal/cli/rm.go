package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <kind> <id>",
		Short: "Permanently delete a record",
		Long:  "Delete a record. Irreversible; supersedes references pointing at the deleted id are left dangling.",
		Args:  cobra.ExactArgs(2),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.Delete(model.Kind(args[0]), args[1]); err != nil {
		exitErr("rm", err)
	}
	fmt.Println(`{"deleted": true}`)
}
