package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/log"
)

// Defaults for the init/reset command surface.
const (
	DefaultCount   = 2
	DefaultPrefix  = "agent"
	DefaultWorkdir = "worktrees"
)

// Manager drives the worktree lifecycle for one repository.
// All state lives in git itself; the manager holds only the naming scheme.
type Manager struct {
	Root    string // absolute repository root
	Workdir string // worktree directory, relative to Root
	Prefix  string // branch prefix

	Registry *Registry
}

// NewManager creates a Manager rooted at the given repository.
func NewManager(root, workdir, prefix string) *Manager {
	return &Manager{
		Root:     root,
		Workdir:  workdir,
		Prefix:   prefix,
		Registry: &Registry{Root: root, Workdir: workdir},
	}
}

// TaskName returns the canonical name for a task index, e.g. "task-2".
func (m *Manager) TaskName(i int) string {
	return fmt.Sprintf("task-%d", i)
}

// TaskBranch returns the branch for a task index, e.g. "agent/task-2".
func (m *Manager) TaskBranch(i int) string {
	return m.Prefix + "/" + m.TaskName(i)
}

// TaskPath returns the absolute worktree path for a task index.
func (m *Manager) TaskPath(i int) string {
	return filepath.Join(m.Root, m.Workdir, m.TaskName(i))
}

// InitStatus classifies the outcome of one init index.
type InitStatus string

const (
	StatusCreated InitStatus = "created"
	StatusSkipped InitStatus = "skipped"
	StatusFailed  InitStatus = "failed"
)

// InitResult is the per-index outcome of an init run.
type InitResult struct {
	Index  int
	Name   string
	Path   string
	Branch string
	Status InitStatus
	Err    error
}

// Init creates worktrees task-1..task-count branched from base.
//
// Re-invocation is idempotent: indices whose worktree path already exists are
// skipped. An index whose branch exists without a worktree fails with
// BranchExistsError, and processing continues with the remaining indices.
func (m *Manager) Init(ctx context.Context, count int, base string) ([]InitResult, error) {
	l := log.FromContext(ctx)

	if err := os.MkdirAll(m.Registry.WorkdirPath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create worktree dir: %w", err)
	}
	if err := git.PruneWorktrees(ctx, m.Root); err != nil {
		return nil, err
	}

	results := make([]InitResult, 0, count)
	for i := 1; i <= count; i++ {
		res := InitResult{
			Index:  i,
			Name:   m.TaskName(i),
			Path:   m.TaskPath(i),
			Branch: m.TaskBranch(i),
		}

		if _, err := os.Stat(res.Path); err == nil {
			res.Status = StatusSkipped
			results = append(results, res)
			continue
		}

		if git.BranchExists(ctx, m.Root, res.Branch) {
			res.Status = StatusFailed
			res.Err = &BranchExistsError{Branch: res.Branch}
			results = append(results, res)
			continue
		}

		l.Debug("creating worktree", "path", res.Path, "branch", res.Branch, "base", base)
		if err := git.AddWorktree(ctx, m.Root, res.Path, res.Branch, base); err != nil {
			res.Status = StatusFailed
			res.Err = err
		} else {
			res.Status = StatusCreated
		}
		results = append(results, res)
	}

	return results, nil
}

// Remove resolves an identifier and removes that worktree, then prunes.
// Dirty worktrees are refused unless force is set.
func (m *Manager) Remove(ctx context.Context, identifier string, force bool) (git.Worktree, error) {
	rec, err := m.Registry.Find(ctx, identifier)
	if err != nil {
		return git.Worktree{}, err
	}

	if !force && git.IsDirty(ctx, rec.Path) {
		return rec, &DirtyError{Path: rec.Path}
	}

	if err := git.RemoveWorktree(ctx, m.Root, rec.Path, force); err != nil {
		return rec, err
	}
	return rec, git.PruneWorktrees(ctx, m.Root)
}

// Clean prunes stale worktree administrative references.
// It never removes working directories and never fails on a clean state.
func (m *Manager) Clean(ctx context.Context) error {
	return git.PruneWorktrees(ctx, m.Root)
}

// ItemResult is a per-item outcome of a batch phase.
type ItemResult struct {
	Target string
	Err    error
}

// ResetSummary collects the per-item outcomes of a reset run.
type ResetSummary struct {
	Removed       []ItemResult
	LocalDeleted  []ItemResult
	RemoteDeleted []ItemResult
}

// Failed reports whether any item in any phase failed.
func (s *ResetSummary) Failed() bool {
	for _, phase := range [][]ItemResult{s.Removed, s.LocalDeleted, s.RemoteDeleted} {
		for _, item := range phase {
			if item.Err != nil {
				return true
			}
		}
	}
	return false
}

// Reset removes every worktree under the workdir, prunes, and deletes all
// local branches matching "{prefix}/task-*". With deleteRemote it deletes the
// same branches on origin.
//
// Each phase isolates per-item failures: a worktree that cannot be removed
// (for example, with uncommitted changes) is recorded and the remaining items
// are still processed.
func (m *Manager) Reset(ctx context.Context, deleteRemote bool) (*ResetSummary, error) {
	l := log.FromContext(ctx)
	summary := &ResetSummary{}

	records, err := m.Registry.List(ctx)
	if err != nil {
		return nil, err
	}

	wtDir := m.Registry.WorkdirPath() + string(filepath.Separator)
	for _, rec := range records {
		if !strings.HasPrefix(rec.Path, wtDir) {
			continue
		}
		l.Printf("  - %s\n", rec.Path)
		err := git.RemoveWorktree(ctx, m.Root, rec.Path, false)
		summary.Removed = append(summary.Removed, ItemResult{Target: rec.Path, Err: err})
	}

	if err := git.PruneWorktrees(ctx, m.Root); err != nil {
		return summary, err
	}

	pattern := m.Prefix + "/task-*"
	branches, err := git.ListBranches(ctx, m.Root, pattern)
	if err != nil {
		return summary, err
	}
	for _, branch := range branches {
		l.Printf("  - %s\n", branch)
		err := git.DeleteLocalBranch(ctx, m.Root, branch, true)
		summary.LocalDeleted = append(summary.LocalDeleted, ItemResult{Target: branch, Err: err})
	}

	if deleteRemote {
		for _, branch := range branches {
			l.Printf("  - origin/%s\n", branch)
			err := git.DeleteRemoteBranch(ctx, m.Root, "origin", branch)
			summary.RemoteDeleted = append(summary.RemoteDeleted, ItemResult{Target: branch, Err: err})
		}
	}

	return summary, nil
}
