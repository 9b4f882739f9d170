package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
	"github.com/MeliodasZHAO/claude-memory/internal/staging"
)

func init() {
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the session staging buffer",
	}

	addCmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Stage an item for the next commit",
		Run:   runStageAdd,
	}
	addCmd.Flags().StringP("kind", "k", "fact", "Kind: fact, preference, experience, task, completed, decision, pitfall")
	addCmd.Flags().String("category", "", "Category (defaults by kind)")
	addCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	addCmd.Flags().StringP("project", "p", "", "Project id (required for project kinds)")
	addCmd.Flags().String("priority", "", "Priority (tasks only)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List staged items",
		Run:   runStageList,
	}

	commitCmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit all staged items",
		Long:  "Drain the buffer into the record store and project documents. Best-effort: per-item failures are reported and the batch continues; the buffer empties either way.",
		Run:   runStageCommit,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the buffer without committing",
		Run:   runStageClear,
	}

	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count staged items",
		Run:   runStageCount,
	}

	stageCmd.AddCommand(addCmd, listCmd, commitCmd, clearCmd, countCmd)
	RootCmd.AddCommand(stageCmd)
}

func runStageAdd(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	category, _ := cmd.Flags().GetString("category")
	tagsStr, _ := cmd.Flags().GetString("tags")
	projectID, _ := cmd.Flags().GetString("project")
	priority, _ := cmd.Flags().GetString("priority")

	content := readContent(args)
	if strings.TrimSpace(content) == "" {
		exitErr("stage add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	_, cfg := openStore()
	b := openBuffer(cfg)

	item, err := b.Add(staging.AddParams{
		Kind:     model.StagedKind(kind),
		Content:  strings.TrimSpace(content),
		Category: category,
		Tags:     splitCSV(tagsStr),
		Project:  projectID,
		Priority: priority,
	})
	if err != nil {
		exitErr("stage add", err)
	}

	out, _ := json.Marshal(item)
	fmt.Println(string(out))
}

func runStageList(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	items, err := openBuffer(cfg).List()
	if err != nil {
		exitErr("stage list", err)
	}
	b, _ := json.MarshalIndent(items, "", "  ")
	fmt.Println(string(b))
}

func runStageCommit(cmd *cobra.Command, args []string) {
	s, cfg := openStore()
	res, err := openBuffer(cfg).Commit(cmd.Context(), s, openProjects(cfg))
	if err != nil {
		exitErr("stage commit", err)
	}
	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}

func runStageClear(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	if err := openBuffer(cfg).Clear(); err != nil {
		exitErr("stage clear", err)
	}
	fmt.Println(`{"cleared": true}`)
}

func runStageCount(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	n, err := openBuffer(cfg).Count()
	if err != nil {
		exitErr("stage count", err)
	}
	fmt.Printf("{\"count\": %d}\n", n)
}
