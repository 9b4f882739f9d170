package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MeliodasZHAO/claude-memory/internal/project"
)

func init() {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect project-scoped memory",
	}

	detectCmd := &cobra.Command{
		Use:   "detect",
		Short: "Identify the project for the current directory",
		Run:   runProjectDetect,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a project document (defaults to the detected project)",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProjectShow,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List known projects",
		Run:   runProjectList,
	}

	setCmd := &cobra.Command{
		Use:   "set [id]",
		Short: "Update a project's profile",
		Args:  cobra.MaximumNArgs(1),
		Run:   runProjectSet,
	}
	setCmd.Flags().String("description", "", "Project description")
	setCmd.Flags().String("focus", "", "Current focus")
	setCmd.Flags().String("tech", "", "Comma-separated tech stack")

	projectCmd.AddCommand(detectCmd, showCmd, listCmd, setCmd)
	RootCmd.AddCommand(projectCmd)
}

func detectedProjectID(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	cwd, err := os.Getwd()
	if err != nil {
		exitErr("detect project", err)
	}
	return project.Detect(cwd).ProjectID
}

func runProjectDetect(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitErr("detect project", err)
	}
	b, _ := json.MarshalIndent(project.Detect(cwd), "", "  ")
	fmt.Println(string(b))
}

func runProjectShow(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	doc, err := openProjects(cfg).Get(detectedProjectID(args))
	if err != nil {
		exitErr("project show", err)
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Println(string(b))
}

func runProjectList(cmd *cobra.Command, args []string) {
	_, cfg := openStore()
	ids, err := openProjects(cfg).List()
	if err != nil {
		exitErr("project list", err)
	}
	b, _ := json.MarshalIndent(ids, "", "  ")
	fmt.Println(string(b))
}

func runProjectSet(cmd *cobra.Command, args []string) {
	var p project.ProfileParams
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		p.Description = &v
	}
	if cmd.Flags().Changed("focus") {
		v, _ := cmd.Flags().GetString("focus")
		p.CurrentFocus = &v
	}
	if cmd.Flags().Changed("tech") {
		v, _ := cmd.Flags().GetString("tech")
		tech := splitCSV(v)
		p.TechStack = &tech
	}

	_, cfg := openStore()
	projects := openProjects(cfg)
	id := detectedProjectID(args)
	if err := projects.UpdateProfile(id, p); err != nil {
		exitErr("project set", err)
	}

	doc, err := projects.Get(id)
	if err != nil {
		exitErr("project show", err)
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Println(string(b))
}
