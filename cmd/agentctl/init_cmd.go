package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/worktree"
)

func newInitCmd() *cobra.Command {
	var (
		count   int
		prefix  string
		workdir string
		base    string
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Bootstrap task worktrees",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Bootstrap N isolated worktrees under <repo>/<workdir>/task-N,
each on a new branch <prefix>/task-N created from the base ref.

The base ref resolves to --base, then origin's default branch, then
origin/main, origin/master and finally a local main branch.

Re-running init is safe: worktrees that already exist are skipped. An
index whose branch exists without a worktree is reported and the
remaining indices are still created.`,
		Example: `  agentctl init                 # two worktrees, branches agent/task-N
  agentctl init -n 4            # four worktrees
  agentctl init -p bot          # branches bot/task-N
  agentctl init -b origin/dev   # branch off origin/dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if count < 1 {
				return fmt.Errorf("--count must be >= 1, got %d", count)
			}

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			return runInit(ctx, root, initOptions{
				count:   count,
				prefix:  prefix,
				workdir: workdir,
				base:    base,
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", worktree.DefaultCount, "Number of worktrees to create")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", worktree.DefaultPrefix, "Branch prefix")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", worktree.DefaultWorkdir, "Worktree directory relative to the repo root")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref to branch from (default: auto-detect)")

	applyConfigDefaults(cmd, &count, &prefix, &workdir, &base)

	return cmd
}

// applyConfigDefaults overrides built-in flag defaults with values from the
// config file. Explicitly passed flags always win; config takes effect only
// for flags the user did not set.
func applyConfigDefaults(cmd *cobra.Command, count *int, prefix, workdir, base *string) {
	pre := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if pre != nil {
			if err := pre(cmd, args); err != nil {
				return err
			}
		}
		if cfg == nil {
			return nil
		}
		if count != nil && !cmd.Flags().Changed("count") {
			*count = cfg.Worktrees.Count
		}
		if prefix != nil && !cmd.Flags().Changed("prefix") {
			*prefix = cfg.Worktrees.Prefix
		}
		if workdir != nil && !cmd.Flags().Changed("workdir") {
			*workdir = cfg.Worktrees.Dir
		}
		if base != nil && !cmd.Flags().Changed("base") && cfg.Worktrees.BaseRef != "" {
			*base = cfg.Worktrees.BaseRef
		}
		return nil
	}
}
