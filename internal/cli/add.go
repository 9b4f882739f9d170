package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/model"
	"github.com/MeliodasZHAO/claude-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add a record directly to the store",
		Long:  "Add a record. Content can be a positional arg or piped via stdin. A matching active record of the same kind and category returns the existing id.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("kind", "k", "fact", "Kind: fact, preference, experience")
	cmd.Flags().String("category", "general", "Category (e.g. location, occupation)")
	cmd.Flags().String("source", "conversation", "Provenance of the record")
	cmd.Flags().Float64("confidence", 1.0, "Confidence in [0,1]")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().String("context-tags", "", "Comma-separated context trigger tags")
	cmd.Flags().String("importance", "active", "Importance: core, active, contextual, archived")
	cmd.Flags().String("supersedes", "", "Id of the fact this one replaces (facts only)")
	cmd.Flags().String("strength", "", "Strength: strong, moderate, weak (preferences only)")
	cmd.Flags().String("date", "", "When it happened (experiences only)")
	cmd.Flags().String("outcome", "", "Result or lesson learned (experiences only)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	category, _ := cmd.Flags().GetString("category")
	source, _ := cmd.Flags().GetString("source")
	confidence, _ := cmd.Flags().GetFloat64("confidence")
	tagsStr, _ := cmd.Flags().GetString("tags")
	ctxTagsStr, _ := cmd.Flags().GetString("context-tags")
	importance, _ := cmd.Flags().GetString("importance")
	supersedes, _ := cmd.Flags().GetString("supersedes")
	strength, _ := cmd.Flags().GetString("strength")
	date, _ := cmd.Flags().GetString("date")
	outcome, _ := cmd.Flags().GetString("outcome")

	content := readContent(args)
	if strings.TrimSpace(content) == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	s, _ := openStore()
	id, err := s.Add(store.AddParams{
		Kind:        model.Kind(kind),
		Content:     strings.TrimSpace(content),
		Category:    category,
		Source:      source,
		Confidence:  confidence,
		Tags:        splitCSV(tagsStr),
		ContextTags: splitCSV(ctxTagsStr),
		Importance:  model.Importance(importance),
		Supersedes:  supersedes,
		Strength:    model.Strength(strength),
		Date:        date,
		Outcome:     outcome,
	})
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(map[string]string{"id": id})
	fmt.Println(string(b))
}

// readContent takes the positional args, falling back to piped stdin.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}
