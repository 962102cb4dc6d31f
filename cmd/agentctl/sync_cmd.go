package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/log"
	"github.com/raphi011/agentctl/internal/output"
)

// syncPayload is the JSON shape of 'sync --json'.
type syncPayload struct {
	Branch string `json:"branch"`
	Base   string `json:"base_ref"`
	git.SyncResult
}

func newSyncCmd() *cobra.Command {
	var (
		strategyFlag string
		base         string
		autostash    bool
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Update the current worktree from the base branch",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Fetch and replay the current branch onto the base ref, by rebase
(default) or merge. Run it from within the worktree to update.

A conflicted replay is left in progress so the conflicts can be resolved
(or aborted) by hand; the blocking paths are reported and the command
exits non-zero. A branch already up to date is a no-op.`,
		Example: `  agentctl sync                 # rebase onto the auto-detected base
  agentctl sync -s merge        # merge instead of rebase
  agentctl sync --autostash     # stash dirty state around the replay
  agentctl sync --json          # machine-readable outcome`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			strategy, err := git.ParseStrategy(strategyFlag)
			if err != nil {
				return err
			}

			// Sync operates on the worktree agentctl runs in, not the
			// main worktree.
			if _, err := repoRoot(ctx); err != nil {
				return err
			}

			branch, err := git.CurrentBranch(ctx, workDir)
			if err != nil {
				return err
			}

			if err := fetchOrigin(ctx, workDir); err != nil {
				return fmt.Errorf("fetch origin: %w", err)
			}

			baseRef, err := git.ResolveBaseRef(ctx, workDir, base)
			if err != nil {
				return err
			}
			l.Debug("syncing", "branch", branch, "base", baseRef, "strategy", string(strategy))

			result, syncErr := git.Sync(ctx, workDir, baseRef, strategy, autostash)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				if err := enc.Encode(syncPayload{Branch: branch, Base: baseRef, SyncResult: result}); err != nil {
					return err
				}
			} else {
				printSyncResult(out, branch, baseRef, result)
			}

			if syncErr != nil {
				return syncErr
			}
			if result.Outcome == git.OutcomeConflicted {
				return fmt.Errorf("sync conflicted on %d path(s); resolve or abort the %s", len(result.Conflicts), strategy)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyFlag, "strategy", "s", "rebase", "Sync strategy: rebase or merge")
	cmd.Flags().StringVarP(&base, "base", "b", "", "Base ref to sync onto (default: auto-detect)")
	cmd.Flags().BoolVar(&autostash, "autostash", false, "Stash uncommitted changes around the sync")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

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
		if !cmd.Flags().Changed("strategy") {
			strategyFlag = cfg.Sync.Strategy
		}
		if !cmd.Flags().Changed("autostash") {
			autostash = cfg.Sync.Autostash
		}
		if !cmd.Flags().Changed("base") && cfg.Worktrees.BaseRef != "" {
			base = cfg.Worktrees.BaseRef
		}
		return nil
	}

	return cmd
}

func printSyncResult(out *output.Printer, branch, base string, result git.SyncResult) {
	switch result.Outcome {
	case git.OutcomeNoop:
		out.Printf("%s is already up to date with %s\n", branch, base)
	case git.OutcomeClean:
		out.Printf("Synced %s onto %s (%s)\n", branch, base, result.Strategy)
	case git.OutcomeConflicted:
		out.Printf("Conflicts while syncing %s onto %s:\n", branch, base)
		for _, path := range result.Conflicts {
			out.Printf("  %s\n", path)
		}
	case git.OutcomeError:
		msg := result.Message
		if msg == "" {
			msg = "sync failed"
		}
		out.Println(strings.TrimSpace(msg))
	}
}
