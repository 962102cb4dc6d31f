package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Worktree is a single entry from git worktree list --porcelain.
// Name is the last path segment, which is how task worktrees are addressed.
type Worktree struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head_commit,omitempty"`
	Bare     bool   `json:"bare,omitempty"`
	Detached bool   `json:"detached,omitempty"`
}

// ListWorktrees returns all worktrees linked to the repository at dir.
// The listing is always re-derived from git; nothing is cached.
func ListWorktrees(ctx context.Context, dir string) ([]Worktree, error) {
	output, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return ParseWorktrees(string(output)), nil
}

// ParseWorktrees parses git worktree list --porcelain output.
// Entries are separated by blank lines; each starts with a "worktree <path>"
// line followed by HEAD/branch/bare/detached attribute lines.
func ParseWorktrees(porcelain string) []Worktree {
	var worktrees []Worktree
	var current Worktree

	flush := func() {
		if current.Path != "" {
			current.Name = filepath.Base(current.Path)
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
	}

	for _, line := range strings.Split(porcelain, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		}
	}
	flush()

	return worktrees
}

// AddWorktree creates a worktree at path on a new branch created from base.
func AddWorktree(ctx context.Context, dir, path, branch, base string) error {
	if err := runGit(ctx, dir, "worktree", "add", "-b", branch, path, base); err != nil {
		return fmt.Errorf("failed to add worktree %s: %v", path, err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path.
// Without force, git refuses to remove a worktree with uncommitted changes.
func RemoveWorktree(ctx context.Context, dir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if err := runGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("failed to remove worktree %s: %v", path, err)
	}
	return nil
}

// PruneWorktrees discards stale worktree administrative metadata.
// Safe to run at any time; a clean state is a no-op.
func PruneWorktrees(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "worktree", "prune"); err != nil {
		return fmt.Errorf("failed to prune worktrees: %v", err)
	}
	return nil
}
