package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
	"github.com/MeliodasZHAO/claude-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Update fields of a record",
		Long:  "Update a record. Only flags you set are applied; id, kind and created_at never change.",
		Args:  cobra.ExactArgs(2),
		Run:   runUpdate,
	}

	cmd.Flags().String("content", "", "New content")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("source", "", "New source")
	cmd.Flags().Float64("confidence", 0, "New confidence in [0,1]")
	cmd.Flags().String("status", "", "New status: deprecated, conflicted")
	cmd.Flags().StringP("tags", "t", "", "Replacement tags, comma-separated")
	cmd.Flags().String("context-tags", "", "Replacement context tags, comma-separated")
	cmd.Flags().String("importance", "", "New importance tier")
	cmd.Flags().String("strength", "", "New strength (preferences only)")
	cmd.Flags().String("date", "", "New date (experiences only)")
	cmd.Flags().String("outcome", "", "New outcome (experiences only)")

	RootCmd.AddCommand(cmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	kind := model.Kind(args[0])
	id := args[1]

	var p store.UpdateParams
	if cmd.Flags().Changed("content") {
		v, _ := cmd.Flags().GetString("content")
		p.Content = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		p.Category = &v
	}
	if cmd.Flags().Changed("source") {
		v, _ := cmd.Flags().GetString("source")
		p.Source = &v
	}
	if cmd.Flags().Changed("confidence") {
		v, _ := cmd.Flags().GetFloat64("confidence")
		p.Confidence = &v
	}
	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		status := model.Status(v)
		p.Status = &status
	}
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetString("tags")
		tags := splitCSV(v)
		p.Tags = &tags
	}
	if cmd.Flags().Changed("context-tags") {
		v, _ := cmd.Flags().GetString("context-tags")
		tags := splitCSV(v)
		p.ContextTags = &tags
	}
	if cmd.Flags().Changed("importance") {
		v, _ := cmd.Flags().GetString("importance")
		imp := model.Importance(v)
		p.Importance = &imp
	}
	if cmd.Flags().Changed("strength") {
		v, _ := cmd.Flags().GetString("strength")
		st := model.Strength(v)
		p.Strength = &st
	}
	if cmd.Flags().Changed("date") {
		v, _ := cmd.Flags().GetString("date")
		p.Date = &v
	}
	if cmd.Flags().Changed("outcome") {
		v, _ := cmd.Flags().GetString("outcome")
		p.Outcome = &v
	}

	s, _ := openStore()
	if err := s.Update(kind, id, p); err != nil {
		exitErr("update", err)
	}

	rec, err := s.Get(kind, id)
	if err != nil || rec == nil {
		fmt.Println(`{"updated": true}`)
		return
	}
	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(b))
}
