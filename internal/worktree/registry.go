package worktree

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/agentctl/internal/git"
)

// maxSuggestions bounds the "did you mean" list on lookup failures.
const maxSuggestions = 3

// Registry is a derived, read-only view over git's own worktree bookkeeping.
// It never caches: every query re-reads git worktree list, so it cannot go
// stale when other processes mutate the repository.
type Registry struct {
	// Root is the absolute repository root.
	Root string
	// Workdir is the worktree directory, relative to Root.
	Workdir string
}

// WorkdirPath returns the absolute path of the worktree directory.
func (r *Registry) WorkdirPath() string {
	return filepath.Join(r.Root, r.Workdir)
}

// List returns the current worktree set, ordered as git reports it.
func (r *Registry) List(ctx context.Context) ([]git.Worktree, error) {
	return git.ListWorktrees(ctx, r.Root)
}

// Find resolves an identifier to exactly one worktree record.
//
// A bare name (no separator) matches by last path segment; anything that
// looks like a path is matched absolutely, relative to the workdir, and
// relative to the repo root. Returns NotFoundError when nothing matches and
// AmbiguousError when the identifier cannot be disambiguated.
func (r *Registry) Find(ctx context.Context, identifier string) (git.Worktree, error) {
	records, err := r.List(ctx)
	if err != nil {
		return git.Worktree{}, err
	}

	candidates := r.candidatePaths(identifier)

	var matches []git.Worktree
	seen := make(map[string]bool)
	for _, rec := range records {
		ok := rec.Name == identifier
		for _, c := range candidates {
			if filepath.Clean(rec.Path) == c {
				ok = true
			}
		}
		if ok && !seen[rec.Path] {
			seen[rec.Path] = true
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return git.Worktree{}, &NotFoundError{
			Identifier:  identifier,
			Suggestions: suggest(identifier, records),
		}
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = m.Path
		}
		return git.Worktree{}, &AmbiguousError{Identifier: identifier, Matches: paths}
	}
}

// candidatePaths lists the absolute paths an identifier may refer to.
func (r *Registry) candidatePaths(identifier string) []string {
	if filepath.IsAbs(identifier) {
		return []string{filepath.Clean(identifier)}
	}
	paths := []string{
		filepath.Clean(filepath.Join(r.WorkdirPath(), identifier)),
	}
	if strings.ContainsRune(identifier, '/') || strings.HasPrefix(identifier, ".") {
		paths = append(paths, filepath.Clean(filepath.Join(r.Root, identifier)))
	}
	return paths
}

// suggest returns up to maxSuggestions worktree names close to the identifier.
func suggest(identifier string, records []git.Worktree) []string {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	ranked := fuzzy.Find(identifier, names)
	var out []string
	for _, m := range ranked {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
