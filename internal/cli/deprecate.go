package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "deprecate <kind> <id>",
		Short: "Mark a record deprecated",
		Args:  cobra.ExactArgs(2),
		Run:   runDeprecate,
	}

	RootCmd.AddCommand(cmd)
}

func runDeprecate(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.Deprecate(model.Kind(args[0]), args[1]); err != nil {
		exitErr("deprecate", err)
	}
	fmt.Println(`{"deprecated": true}`)
}
