package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/ui"
	"github.com/raphi011/agentctl/internal/ui/prompt"
	"github.com/raphi011/agentctl/internal/worktree"
)

// ErrConfirmationRequired is returned when reset runs non-interactively
// without --yes.
var ErrConfirmationRequired = errors.New("confirmation required: re-run with --yes")

func newResetCmd() *cobra.Command {
	var (
		yes          bool
		workdir      string
		prefix       string
		deleteRemote bool
		recreate     bool
		count        int
		base         string
	)

	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Remove all task worktrees and branches",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Remove every worktree under the worktree directory, prune, and delete
all local <prefix>/task-* branches. This is destructive: without --yes an
interactive confirmation is required, and non-interactive runs fail.

Failures are isolated per item: a worktree that cannot be removed (for
example, with uncommitted changes) is reported and the remaining items
are still processed. The command exits non-zero if anything failed.`,
		Example: `  agentctl reset                       # prompt, then remove everything
  agentctl reset --yes                 # no prompt (for scripts)
  agentctl reset --yes --delete-remote # also delete origin branches
  agentctl reset --yes --recreate -n 4 # reset, then init 4 fresh worktrees`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			if !yes {
				if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
					return ErrConfirmationRequired
				}
				res, err := prompt.Confirm(fmt.Sprintf("Remove all worktrees under %s/ and delete %s/task-* branches?", workdir, prefix))
				if err != nil {
					return err
				}
				if !res.Confirmed || res.Cancelled {
					out.Println("Aborted")
					return nil
				}
			}

			m := worktree.NewManager(root, workdir, prefix)
			summary, err := m.Reset(ctx, deleteRemote)
			if err != nil {
				return err
			}

			printResetSummary(out, summary)

			// Recreate even after partial failures: init skips indices
			// whose worktree survived, so the run stays repairable.
			if recreate {
				if err := runInit(ctx, root, initOptions{
					count:   count,
					prefix:  prefix,
					workdir: workdir,
					base:    base,
				}); err != nil {
					return err
				}
			}

			if summary.Failed() {
				return fmt.Errorf("reset finished with failures")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", worktree.DefaultWorkdir, "Worktree directory relative to the repo root")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", worktree.DefaultPrefix, "Branch prefix")
	cmd.Flags().BoolVar(&deleteRemote, "delete-remote", false, "Also delete matching branches on origin")
	cmd.Flags().BoolVar(&recreate, "recreate", false, "Run init again after the reset")
	cmd.Flags().IntVarP(&count, "count", "n", worktree.DefaultCount, "Number of worktrees to recreate")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref for recreated worktrees (default: auto-detect)")

	applyConfigDefaults(cmd, &count, &prefix, &workdir, &base)

	return cmd
}

func printResetSummary(out *output.Printer, summary *worktree.ResetSummary) {
	succeeded := func(items []worktree.ItemResult) int {
		n := 0
		for _, item := range items {
			if item.Err == nil {
				n++
			}
		}
		return n
	}
	for _, phase := range [][]worktree.ItemResult{summary.Removed, summary.LocalDeleted, summary.RemoteDeleted} {
		for _, item := range phase {
			if item.Err != nil {
				out.Printf("Failed: %s: %v\n", item.Target, item.Err)
			}
		}
	}
	removed := succeeded(summary.Removed)
	out.Println(ui.FormatRemoveSummary(removed, len(summary.Removed)-removed))
	out.Printf("Deleted %d local and %d remote branch(es)\n",
		succeeded(summary.LocalDeleted), succeeded(summary.RemoteDeleted))
}
