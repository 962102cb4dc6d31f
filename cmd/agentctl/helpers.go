package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/git"
)

// gateCommandName returns the permission-gate name for a command: the
// command path below the root, joined with dashes ("pr comments" becomes
// "pr-comments"). The root command itself maps to "".
func gateCommandName(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], "-")
}

// repoRoot resolves the repository root for the directory agentctl was
// invoked from. Every repo-scoped command starts here.
func repoRoot(ctx context.Context) (string, error) {
	return git.RepoRoot(ctx, workDir)
}

// fetchOrigin updates remote tracking refs when the repository has an
// origin remote. Local-only repositories are fine without one; the base
// ref chain falls back to the local default branch.
func fetchOrigin(ctx context.Context, dir string) error {
	if !git.HasRemote(ctx, dir, "origin") {
		return nil
	}
	return git.Fetch(ctx, dir)
}
