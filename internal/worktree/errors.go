package worktree

import (
	"fmt"
	"strings"
)

// NotFoundError reports an identifier that resolved to no worktree.
type NotFoundError struct {
	Identifier  string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no worktree found for %q", e.Identifier)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// AmbiguousError reports an identifier that matched more than one worktree.
type AmbiguousError struct {
	Identifier string
	Matches    []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("worktree %q is ambiguous, matches: %s", e.Identifier, strings.Join(e.Matches, ", "))
}

// BranchExistsError reports an init index whose target branch already exists
// without a worktree using it.
type BranchExistsError struct {
	Branch string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("branch %q already exists: delete it or choose a different prefix", e.Branch)
}

// DirtyError reports a removal refused because the worktree has uncommitted
// changes.
type DirtyError struct {
	Path string
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("worktree %s has uncommitted changes: commit, stash, or pass --force", e.Path)
}
