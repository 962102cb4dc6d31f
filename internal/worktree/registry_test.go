package worktree

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestRegistry_ListIncludesMainWorktree(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 1, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	records, err := m.Registry.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	if records[0].Path != m.Root {
		t.Errorf("first record = %q, want repo root", records[0].Path)
	}
}

func TestRegistry_FindByName(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	rec, err := m.Registry.Find(ctx, "task-1")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if rec.Branch != "agent/task-1" {
		t.Errorf("Find(task-1).Branch = %q, want agent/task-1", rec.Branch)
	}
	if rec.Path != m.TaskPath(1) {
		t.Errorf("Find(task-1).Path = %q, want %q", rec.Path, m.TaskPath(1))
	}
}

func TestRegistry_FindByPath(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 1, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Absolute path
	rec, err := m.Registry.Find(ctx, m.TaskPath(1))
	if err != nil {
		t.Fatalf("Find by absolute path failed: %v", err)
	}
	if rec.Name != "task-1" {
		t.Errorf("Find by absolute path = %q, want task-1", rec.Name)
	}

	// Path relative to repo root
	rec, err = m.Registry.Find(ctx, filepath.Join(DefaultWorkdir, "task-1"))
	if err != nil {
		t.Fatalf("Find by relative path failed: %v", err)
	}
	if rec.Name != "task-1" {
		t.Errorf("Find by relative path = %q, want task-1", rec.Name)
	}
}

func TestRegistry_FindNotFoundSuggests(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 2, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	_, err := m.Registry.Find(ctx, "task")
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Find(task) = %v, want NotFoundError", err)
	}
	if len(nfe.Suggestions) == 0 {
		t.Error("NotFoundError should carry fuzzy suggestions")
	}
}

func TestRegistry_FindAmbiguous(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Init(ctx, 1, "main"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// A second worktree with the same last path segment outside the workdir.
	otherPath := filepath.Join(m.Root, "elsewhere", "task-1")
	runGit(t, m.Root, "worktree", "add", "-b", "other/task-1", otherPath, "main")

	_, err := m.Registry.Find(ctx, "task-1")
	var ae *AmbiguousError
	if !errors.As(err, &ae) {
		t.Fatalf("Find(task-1) = %v, want AmbiguousError", err)
	}
	if len(ae.Matches) != 2 {
		t.Errorf("AmbiguousError.Matches = %v, want 2 paths", ae.Matches)
	}

	// A full path still disambiguates.
	rec, err := m.Registry.Find(ctx, otherPath)
	if err != nil {
		t.Fatalf("Find by path failed: %v", err)
	}
	if rec.Branch != "other/task-1" {
		t.Errorf("Find by path = %q, want other/task-1", rec.Branch)
	}
}
