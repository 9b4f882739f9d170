package project

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Detection names the project the working directory belongs to and how it
// was identified.
type Detection struct {
	ProjectID string `json:"project_id"`
	Source    string `json:"source"` // claude_md | git_remote | directory
	Dir       string `json:"dir"`
}

var (
	projectIDPattern = regexp.MustCompile(`(?i)project_id:\s*["']?([^"'\n]+)["']?`)
	httpsRemote      = regexp.MustCompile(`https?://[^/]+/(.+?)(?:\.git)?$`)
	sshRemote        = regexp.MustCompile(`git@[^:]+:(.+?)(?:\.git)?$`)
)

// Detect identifies the project for dir, trying in order: a project_id
// field in CLAUDE.md (or .claude/CLAUDE.md), the origin git remote, and
// finally the directory name.
func Detect(dir string) Detection {
	if id := detectFromClaudeMD(dir); id != "" {
		return Detection{ProjectID: id, Source: "claude_md", Dir: dir}
	}
	if id := detectFromGitRemote(dir); id != "" {
		return Detection{ProjectID: id, Source: "git_remote", Dir: dir}
	}
	return Detection{ProjectID: filepath.Base(dir), Source: "directory", Dir: dir}
}

func detectFromClaudeMD(dir string) string {
	for _, candidate := range []string{
		filepath.Join(dir, ".claude", "CLAUDE.md"),
		filepath.Join(dir, "CLAUDE.md"),
	} {
		raw, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if m := projectIDPattern.FindSubmatch(raw); m != nil {
			return strings.TrimSpace(string(m[1]))
		}
	}
	return ""
}

func detectFromGitRemote(dir string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	url := strings.TrimSpace(string(out))

	if m := httpsRemote.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := sshRemote.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
