package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/output"
	"github.com/raphi011/agentctl/internal/ui"
	"github.com/raphi011/agentctl/internal/worktree"
)

// listPayload is the JSON shape of 'list --json'.
type listPayload struct {
	RepoRoot  string         `json:"repo_root"`
	Worktrees []git.Worktree `json:"worktrees"`
}

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List all worktrees linked to the repository, including the main
worktree. The listing is re-derived from git on every run; nothing is
cached, so it never goes stale.`,
		Example: `  agentctl list           # Table output
  agentctl list --json    # JSON for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, err := repoRoot(ctx)
			if err != nil {
				return err
			}

			// Listing covers every worktree, so no workdir scoping applies.
			reg := &worktree.Registry{Root: root, Workdir: worktree.DefaultWorkdir}
			records, err := reg.List(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(listPayload{RepoRoot: root, Worktrees: records})
			}

			if len(records) == 0 {
				out.Println("No worktrees found")
				return nil
			}
			out.Print(ui.FormatWorktreesTable(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
