// Package ui renders human-facing output: the worktree listing table and
// anything else that needs terminal styling. JSON output paths bypass this
// package entirely.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raphi011/agentctl/internal/git"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("240")).
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240")).
	BorderBottom(true)

// FormatWorktreesTable renders the worktree listing. Column widths are
// derived from the content so branch names of any length stay aligned.
func FormatWorktreesTable(worktrees []git.Worktree) string {
	if len(worktrees) == 0 {
		return ""
	}

	headers := []string{"NAME", "BRANCH", "HEAD", "PATH"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	rows := make([][]string, 0, len(worktrees))
	for _, wt := range worktrees {
		branch := wt.Branch
		if wt.Detached {
			branch = "(detached)"
		}
		if wt.Bare {
			branch = "(bare)"
		}

		head := wt.Head
		if len(head) > 8 {
			head = head[:8]
		}

		row := []string{wt.Name, branch, head, wt.Path}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	var output strings.Builder
	output.WriteString(headerStyle.Render(formatRow(headers, widths)))
	output.WriteString("\n")
	for _, row := range rows {
		output.WriteString(formatRow(row, widths))
		output.WriteString("\n")
	}
	return output.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			// Last column is unpadded so trailing whitespace never
			// ends up in the output.
			parts[i] = cell
			continue
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// FormatRemoveSummary formats the result line printed after bulk removals.
func FormatRemoveSummary(removed, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("Removed %d worktree(s)", removed)
	}
	return fmt.Sprintf("Removed %d worktree(s), %d failed", removed, failed)
}
