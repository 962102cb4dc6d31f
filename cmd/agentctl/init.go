package main

import (
	"context"
	"fmt"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/log"
	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/worktree"
)

// initOptions holds the parameters for a worktree bootstrap run, shared
// between 'init' and 'reset --recreate'.
type initOptions struct {
	count   int
	prefix  string
	workdir string
	base    string // explicit base ref override, empty = resolve
}

// runInit fetches, resolves the base ref and creates the task worktrees.
// Per-index failures are reported but do not stop the remaining indices;
// any failure makes the whole run return an error.
func runInit(ctx context.Context, root string, opts initOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if err := fetchOrigin(ctx, root); err != nil {
		return fmt.Errorf("fetch origin: %w", err)
	}

	base, err := git.ResolveBaseRef(ctx, root, opts.base)
	if err != nil {
		return err
	}
	l.Debug("resolved base ref", "base", base)

	m := worktree.NewManager(root, opts.workdir, opts.prefix)
	results, err := m.Init(ctx, opts.count, base)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		switch r.Status {
		case worktree.StatusCreated:
			out.Printf("Created %s on branch %s\n", r.Path, r.Branch)
		case worktree.StatusSkipped:
			out.Printf("Skipped %s (already exists)\n", r.Path)
		case worktree.StatusFailed:
			l.Printf("Failed %s: %v\n", r.Name, r.Err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d worktree(s) failed", failed, len(results))
	}
	return nil
}
