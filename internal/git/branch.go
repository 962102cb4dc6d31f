package git

import (
	"context"
	"fmt"
	"strings"
)

// BranchExists checks if a local branch exists
func BranchExists(ctx context.Context, dir, branch string) bool {
	err := runGit(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// ListBranches returns local branches matching a git branch --list pattern
// (e.g. "agent/task-*").
func ListBranches(ctx context.Context, dir, pattern string) ([]string, error) {
	output, err := outputGit(ctx, dir, "branch", "--list", "--format=%(refname:short)", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %v", err)
	}

	var branches []string
	for _, line := range strings.Split(string(output), "\n") {
		if b := strings.TrimSpace(line); b != "" {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// DeleteLocalBranch deletes a local branch
func DeleteLocalBranch(ctx context.Context, dir, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if err := runGit(ctx, dir, "branch", flag, branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %v", branch, err)
	}
	return nil
}

// DeleteRemoteBranch deletes a branch on the given remote.
func DeleteRemoteBranch(ctx context.Context, dir, remote, branch string) error {
	if err := runGit(ctx, dir, "push", remote, "--delete", branch); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %v", remote, branch, err)
	}
	return nil
}

// Fetch updates remote-tracking refs from origin and prunes deleted ones.
func Fetch(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "fetch", "origin", "--prune"); err != nil {
		return fmt.Errorf("failed to fetch origin: %v", err)
	}
	return nil
}

// HasRemote returns true if the repository has the given remote configured.
func HasRemote(ctx context.Context, dir, remote string) bool {
	_, err := outputGit(ctx, dir, "remote", "get-url", remote)
	return err == nil
}
