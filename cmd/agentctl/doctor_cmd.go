package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/github"
	"github.com/raphi011/agentctl/internal/output"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose environment issues",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Diagnose the environment agentctl runs in.

Checks:
- git is installed
- the current directory is inside a git repository
- a base ref can be resolved
- gh is installed and authenticated (needed for 'pr comments')

Exits non-zero when issues are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			var issues int

			out.Println("Running diagnostics...")
			out.Println()

			out.Printf("Execution mode: %s\n", mode)

			if err := git.CheckGit(); err != nil {
				out.Printf("✗ git not found: %v\n", err)
				issues++
			} else {
				out.Println("✓ git is available")
			}

			if !git.IsInsideRepoPath(ctx, workDir) {
				out.Println("✗ not inside a git repository")
				issues++
			} else if root, err := repoRoot(ctx); err != nil {
				out.Printf("✗ cannot resolve repository root: %v\n", err)
				issues++
			} else {
				out.Printf("✓ repository at %s\n", root)

				base, err := git.ResolveBaseRef(ctx, root, "")
				if err != nil {
					out.Printf("✗ no base ref: %v\n", err)
					issues++
				} else {
					out.Printf("✓ base ref resolves to %s\n", base)
				}
			}

			if err := github.CheckGH(); err != nil {
				// gh is only needed for 'pr comments'; flag but count it.
				out.Printf("✗ %v\n", err)
				issues++
			} else {
				out.Println("✓ gh is installed and authenticated")
			}

			out.Println()
			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			out.Println("No issues found")
			return nil
		},
	}

	return cmd
}
