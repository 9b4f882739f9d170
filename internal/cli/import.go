package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from an export file",
		Long:  "Re-add records from an export through the normal add path, so dedup and validation apply.",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		exitErr("import", err)
	}
	defer f.Close()

	s, _ := openStore()
	n, err := s.Import(f)
	if err != nil {
		exitErr("import", err)
	}
	fmt.Printf("{\"imported\": %d}\n", n)
}
