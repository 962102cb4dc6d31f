package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/worktree"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Prune stale worktree entries",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Prune worktree entries whose directories no longer exist, e.g. after
a worktree directory was deleted manually. Running clean on an already
clean repository is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			m := worktree.NewManager(root, worktree.DefaultWorkdir, worktree.DefaultPrefix)
			if err := m.Clean(ctx); err != nil {
				return err
			}

			out.Println("Pruned stale worktree entries")
			return nil
		},
	}

	return cmd
}
