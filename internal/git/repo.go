package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotARepository indicates the working directory is not inside a git repository.
var ErrNotARepository = errors.New("not inside a git repository")

// ErrDetachedHead indicates HEAD does not point at a named branch.
var ErrDetachedHead = errors.New("detached HEAD: check out a branch first")

// RepoRoot returns the absolute path of the repository root enclosing dir.
// Works from any subdirectory, including inside a linked worktree.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotARepository, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the current branch name.
// Returns ErrDetachedHead when HEAD is not on a named branch.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", ErrDetachedHead
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// HeadCommit returns the full commit hash of HEAD in dir.
func HeadCommit(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// IsDirty returns true if the worktree has uncommitted changes or untracked files
func IsDirty(ctx context.Context, path string) bool {
	output, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return false // Treat error as clean (safe default)
	}
	return strings.TrimSpace(string(output)) != ""
}
