package worktree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/agentctl/internal/cmd"
	"github.com/raphi011/agentctl/internal/git"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := cmd.RunContext(context.Background(), dir, "git", args...); err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
}

// setupTestRepo creates a git repo with a main branch and an initial commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}
	repoPath := filepath.Join(resolved, "test-repo")

	runGit(t, "", "init", "-b", "main", repoPath)
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(setupTestRepo(t), DefaultWorkdir, DefaultPrefix)
}

func taskWorktrees(t *testing.T, m *Manager) []git.Worktree {
	t.Helper()
	records, err := m.Registry.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var tasks []git.Worktree
	prefix := m.Registry.WorkdirPath() + string(filepath.Separator)
	for _, rec := range records {
		if len(rec.Path) > len(prefix) && rec.Path[:len(prefix)] == prefix {
			tasks = append(tasks, rec)
		}
	}
	return tasks
}

func TestInit_CreatesCountWorktrees(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	results, err := m.Init(ctx, 3, "main")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Init returned %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Status != StatusCreated {
			t.Errorf("index %d status = %q (%v), want created", res.Index, res.Status, res.Err)
		}
		wantName := m.TaskName(i + 1)
		if res.Name != wantName {
			t.Errorf("index %d name = %q, want %q", res.Index, res.Name, wantName)
		}
	}

	tasks := taskWorktrees(t, m)
	if len(tasks) != 3 {
		t.Fatalf("found %d task worktrees, want 3", len(tasks))
	}
	for i, wt := range tasks {
		wantBranch := m.TaskBranch(i + 1)
		if wt.Branch != wantBranch {
			t.Errorf("worktree %s branch = %q, want %q", wt.Name, wt.Branch, wantBranch)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}

	results, err := m.Init(ctx, 2, "main")
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	for _, res := range results {
		if res.Status != StatusSkipped {
			t.Errorf("index %d status = %q, want skipped", res.Index, res.Status)
		}
	}

	if tasks := taskWorktrees(t, m); len(tasks) != 2 {
		t.Errorf("found %d task worktrees after re-init, want 2", len(tasks))
	}
}

func TestInit_BranchExistsFailsIndexAndContinues(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	// A leftover branch without a worktree blocks index 1 only.
	runGit(t, m.Root, "branch", "agent/task-1")

	results, err := m.Init(ctx, 2, "main")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if results[0].Status != StatusFailed {
		t.Errorf("index 1 status = %q, want failed", results[0].Status)
	}
	var bee *BranchExistsError
	if !errors.As(results[0].Err, &bee) {
		t.Errorf("index 1 error = %v, want BranchExistsError", results[0].Err)
	}

	if results[1].Status != StatusCreated {
		t.Errorf("index 2 status = %q (%v), want created", results[1].Status, results[1].Err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	rec, err := m.Remove(ctx, "task-2", false)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if rec.Name != "task-2" {
		t.Errorf("removed %q, want task-2", rec.Name)
	}

	if tasks := taskWorktrees(t, m); len(tasks) != 1 {
		t.Errorf("found %d task worktrees after remove, want 1", len(tasks))
	}
}

func TestRemove_NotFoundLeavesSetUnchanged(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	_, err := m.Remove(ctx, "task-9", false)
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Remove(task-9) = %v, want NotFoundError", err)
	}

	if tasks := taskWorktrees(t, m); len(tasks) != 2 {
		t.Errorf("found %d task worktrees, want 2 (set must be unchanged)", len(tasks))
	}
}

func TestRemove_DirtyRefusedWithoutForce(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 1, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	scratch := filepath.Join(m.TaskPath(1), "wip.txt")
	if err := os.WriteFile(scratch, []byte("wip\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := m.Remove(ctx, "task-1", false)
	var de *DirtyError
	if !errors.As(err, &de) {
		t.Fatalf("Remove on dirty worktree = %v, want DirtyError", err)
	}

	if _, err := m.Remove(ctx, "task-1", true); err != nil {
		t.Errorf("Remove --force failed: %v", err)
	}
}

func TestClean_NeverFailsOnCleanState(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if err := m.Clean(context.Background()); err != nil {
		t.Errorf("Clean failed: %v", err)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 3, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// A branch outside the prefix pattern must survive the reset.
	runGit(t, m.Root, "branch", "feature/keep")

	summary, err := m.Reset(ctx, false)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if summary.Failed() {
		t.Errorf("Reset reported failures: %+v", summary)
	}
	if len(summary.Removed) != 3 {
		t.Errorf("Removed %d worktrees, want 3", len(summary.Removed))
	}
	if len(summary.LocalDeleted) != 3 {
		t.Errorf("Deleted %d branches, want 3", len(summary.LocalDeleted))
	}

	if tasks := taskWorktrees(t, m); len(tasks) != 0 {
		t.Errorf("found %d task worktrees after reset, want 0", len(tasks))
	}

	branches, err := git.ListBranches(ctx, m.Root, m.Prefix+"/task-*")
	if err != nil {
		t.Fatalf("ListBranches failed: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("task branches remain after reset: %v", branches)
	}
	if !git.BranchExists(ctx, m.Root, "feature/keep") {
		t.Error("reset deleted a branch outside the prefix pattern")
	}
}

func TestReset_DirtyWorktreeIsolatedFailure(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	scratch := filepath.Join(m.TaskPath(1), "wip.txt")
	if err := os.WriteFile(scratch, []byte("wip\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	summary, err := m.Reset(ctx, false)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !summary.Failed() {
		t.Error("Reset should report the dirty worktree as a failure")
	}

	var failed, succeeded int
	for _, item := range summary.Removed {
		if item.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("Removed outcomes: %d failed, %d succeeded, want 1/1", failed, succeeded)
	}
}

func TestReset_ThenInitRecreates(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := m.Reset(ctx, false); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	results, err := m.Init(ctx, 3, "main")
	if err != nil {
		t.Fatalf("recreate Init failed: %v", err)
	}
	for _, res := range results {
		if res.Status != StatusCreated {
			t.Errorf("index %d status = %q (%v), want created", res.Index, res.Status, res.Err)
		}
	}
	if tasks := taskWorktrees(t, m); len(tasks) != 3 {
		t.Errorf("found %d task worktrees, want 3", len(tasks))
	}
}
