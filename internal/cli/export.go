package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export all records as a single JSON document",
		Long:  "Export every record of every kind, including deprecated ones, plus store metadata. Writes to stdout unless a file is given.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, _ := openStore()

	out := os.Stdout
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			exitErr("export", err)
		}
		defer f.Close()
		out = f
	}

	if err := s.ExportAll(out); err != nil {
		exitErr("export", err)
	}
}
