package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/store"
	"github.com/MeliodasZHAO/claude-memory/internal/sweeper"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Recompute importance tiers from access stats",
		Long:  "Run the lifecycle sweep once, or keep running it on a cron schedule with --schedule.",
		Run:   runSweep,
	}

	cmd.Flags().Int("days-active", 7, "Days a record stays active without access")
	cmd.Flags().Int("days-contextual", 30, "Days a record stays contextual without access")
	cmd.Flags().String("schedule", "", "Cron expression to run continuously (e.g. \"0 3 * * *\")")

	RootCmd.AddCommand(cmd)
}

func runSweep(cmd *cobra.Command, args []string) {
	daysActive, _ := cmd.Flags().GetInt("days-active")
	daysContextual, _ := cmd.Flags().GetInt("days-contextual")
	schedule, _ := cmd.Flags().GetString("schedule")

	s, _ := openStore()
	params := store.SweepParams{DaysActive: daysActive, DaysContextual: daysContextual}

	if schedule != "" {
		sw := sweeper.New(s, schedule, params)
		if err := sw.Start(); err != nil {
			exitErr("sweep", err)
		}
		defer sw.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return
	}

	res, err := s.RunLifecycleSweep(params)
	if err != nil {
		exitErr("sweep", err)
	}
	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
