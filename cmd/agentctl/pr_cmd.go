package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/github"
	"github.com/raphi011/agentctl/internal/log"
	"github.com/raphi011/agentctl/internal/output"
)

func newPrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pr",
		Short:   "Work with the pull request for a worktree branch",
		GroupID: GroupPR,
		Args:    cobra.NoArgs,
	}

	cmd.AddCommand(newPrCommentsCmd())

	return cmd
}

func newPrCommentsCmd() *cobra.Command {
	var (
		number     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Show PR comments for the current branch",
		Args:  cobra.NoArgs,
		Long: `Fetch discussion and review comments for a pull request, merged and
sorted by creation time. Without --pr the number is detected from the
open PR of the current branch.

Requires the gh CLI, installed and authenticated.`,
		Example: `  agentctl pr comments           # PR detected from the current branch
  agentctl pr comments --pr 42   # explicit PR number
  agentctl pr comments --json    # JSON for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if err := github.CheckGH(); err != nil {
				return err
			}

			if number == 0 {
				branch, err := git.CurrentBranch(ctx, workDir)
				if err != nil {
					return err
				}
				number, err = github.PRForBranch(ctx, workDir, branch)
				if err != nil {
					return err
				}
				if number == 0 {
					return fmt.Errorf("no pull request found for branch %q", branch)
				}
				l.Debug("detected pull request", "branch", branch, "number", number)
			}

			comments, err := github.PRComments(ctx, workDir, number)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(comments)
			}

			if len(comments) == 0 {
				out.Printf("No comments on PR #%d\n", number)
				return nil
			}
			out.Printf("%d comment(s) on PR #%d\n", len(comments), number)
			for _, c := range comments {
				out.Printf("\n[%s] %s (%s)\n", c.Type, c.Author, c.CreatedAt)
				if c.Path != "" {
					if c.Line > 0 {
						out.Printf("%s:%d\n", c.Path, c.Line)
					} else {
						out.Printf("%s\n", c.Path)
					}
				}
				out.Println(c.Body)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number (default: detect from the current branch)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
