package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Detect contradictory active facts",
		Long:  "Scan active facts for contradictions in single-valued categories. Read-only; resolve by deprecating all but one member.",
		Run:   runConflicts,
	}

	RootCmd.AddCommand(cmd)
}

func runConflicts(cmd *cobra.Command, args []string) {
	s, _ := openStore()
	reports, err := s.DetectConflicts()
	if err != nil {
		exitErr("conflicts", err)
	}

	b, _ := json.MarshalIndent(reports, "", "  ")
	fmt.Println(string(b))
}
