package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/log"
	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/worktree"
)

func newPathCmd() *cobra.Command {
	var (
		workdir         string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "path <name|path>",
		Short:   "Print a worktree path for shell scripting",
		GroupID: GroupUtility,
		Args:    cobra.ExactArgs(1),
		Long: `Print the absolute path of a worktree for shell scripting.

Use with shell command substitution: cd "$(agentctl path task-1)"`,
		Example: `  cd "$(agentctl path task-1)"   # cd into a task worktree
  agentctl path task-2 --copy    # copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			reg := &worktree.Registry{Root: root, Workdir: workdir}
			rec, err := reg.Find(ctx, args[0])
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(rec.Path); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			out.Println(rec.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workdir, "workdir", "w", worktree.DefaultWorkdir, "Worktree directory relative to the repo root")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	applyConfigDefaults(cmd, nil, nil, &workdir, nil)

	return cmd
}
