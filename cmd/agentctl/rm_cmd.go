package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/worktree"
)

func newRmCmd() *cobra.Command {
	var (
		workdir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "rm <name|path>",
		Short:   "Remove a single worktree",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Remove one worktree identified by name (task-1) or path, then prune
git's worktree bookkeeping. The branch is kept; use reset to delete
branches.

Worktrees with uncommitted changes are refused unless --force is given.`,
		Example: `  agentctl rm task-1                 # by name
  agentctl rm worktrees/task-1       # by path relative to the repo root
  agentctl rm --force task-2         # discard uncommitted changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			m := worktree.NewManager(root, workdir, worktree.DefaultPrefix)
			removed, err := m.Remove(ctx, args[0], force)
			if err != nil {
				return err
			}

			out.Printf("Removed %s\n", removed.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workdir, "workdir", "w", worktree.DefaultWorkdir, "Worktree directory relative to the repo root")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")

	applyConfigDefaults(cmd, nil, nil, &workdir, nil)

	return cmd
}
