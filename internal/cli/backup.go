package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/backup"
)

func init() {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage zip backups of the memory directory",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a backup archive",
		Run:   runBackupCreate,
	}
	createCmd.Flags().String("desc", "", "Backup description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List backup archives",
		Run:   runBackupList,
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest backups",
		Run:   runBackupPrune,
	}
	pruneCmd.Flags().Int("keep", 5, "Backups to keep")

	backupCmd.AddCommand(createCmd, listCmd, pruneCmd)
	RootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) {
	desc, _ := cmd.Flags().GetString("desc")

	_, cfg := openStore()
	path, err := backup.Create(cfg.BaseDir, cfg.BackupPath(), desc)
	if err != nil {
		exitErr("backup create", err)
	}
	b, _ := json.Marshal(map[string]string{"backup": path})
	fmt.Println(string(b))
}

func runBackupList(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	infos, err := backup.List(cfg.BackupPath())
	if err != nil {
		exitErr("backup list", err)
	}
	b, _ := json.MarshalIndent(infos, "", "  ")
	fmt.Println(string(b))
}

func runBackupPrune(cmd *cobra.Command, args []string) {
	keep, _ := cmd.Flags().GetInt("keep")

	_, cfg := openStore()
	removed, err := backup.Prune(cfg.BackupPath(), keep)
	if err != nil {
		exitErr("backup prune", err)
	}
	fmt.Printf("{\"removed\": %d}\n", removed)
}
