package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "touch <kind> <id>",
		Short: "Record that a memory was surfaced",
		Long:  "Increment a record's access_count and set last_accessed. Call this every time a record is actually shown to the user; it is the signal the lifecycle sweep works from.",
		Args:  cobra.ExactArgs(2),
		Run:   runTouch,
	}

	RootCmd.AddCommand(cmd)
}

func runTouch(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	if err := s.MarkAccessed(model.Kind(args[0]), args[1]); err != nil {
		exitErr("touch", err)
	}
	fmt.Println(`{"touched": true}`)
}
