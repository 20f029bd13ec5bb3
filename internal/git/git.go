package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Status is the git exposure of a vault directory's secret artifacts
type Status struct {
	IsRepo    bool
	Tracked   []string // committed or staged (bad)
	Unignored []string // not matched by .gitignore (warning)
	Ignored   []string // matched by .gitignore (good)
}

// Exposed reports whether any secret is tracked or unignored
func (s *Status) Exposed() bool {
	return len(s.Tracked) > 0 || len(s.Unignored) > 0
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.Output()
}

// IsRepo checks if dir is inside a git work tree
func IsRepo(ctx context.Context, dir string) bool {
	_, err := run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// IsTracked checks if name is in the git index
func IsTracked(ctx context.Context, dir, name string) bool {
	output, err := run(ctx, dir, "ls-files", "--", name)
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if name is ignored by any .gitignore in effect
func IsIgnored(ctx context.Context, dir, name string) bool {
	// exit code 0 means ignored
	_, err := run(ctx, dir, "check-ignore", "-q", "--", name)
	return err == nil
}

// Check inspects secrets, file names relative to dir. Outside a
// repository the returned status has IsRepo false and nothing else set.
func Check(ctx context.Context, dir string, secrets []string) *Status {
	status := &Status{}
	if !IsRepo(ctx, dir) {
		return status
	}
	status.IsRepo = true

	for _, name := range secrets {
		if IsTracked(ctx, dir, name) {
			status.Tracked = append(status.Tracked, name)
		}
		if IsIgnored(ctx, dir, name) {
			status.Ignored = append(status.Ignored, name)
		} else {
			status.Unignored = append(status.Unignored, name)
		}
	}
	return status
}

// Format renders status for display. It is empty outside a repository.
func Format(status *Status) string {
	if !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit:\n")

	tracked := make(map[string]bool, len(status.Tracked))
	for _, name := range status.Tracked {
		tracked[name] = true
		result.WriteString(fmt.Sprintf("  error: %s is tracked by git (run: git rm --cached %s)\n", name, name))
	}
	for _, name := range status.Unignored {
		if !tracked[name] {
			result.WriteString(fmt.Sprintf("  warning: %s not in .gitignore\n", name))
		}
	}
	if !status.Exposed() {
		result.WriteString(fmt.Sprintf("  ok: %d secret file(s) in .gitignore\n", len(status.Ignored)))
	}

	return result.String()
}
