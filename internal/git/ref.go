package git

import (
	"context"
	"errors"
	"strings"
)

// ErrNoBaseRef indicates no base ref could be resolved from the fallback chain.
var ErrNoBaseRef = errors.New("no base ref found: pass --base explicitly")

// ResolveBaseRef determines the base ref new worktrees branch from and sync
// operations replay onto.
//
// Priority: explicit override > origin/HEAD > origin/main > origin/master >
// local main. The override is taken verbatim; every other candidate must
// actually resolve. Returns ErrNoBaseRef when the whole chain comes up empty.
func ResolveBaseRef(ctx context.Context, dir, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if ref := RemoteDefaultRef(ctx, dir); ref != "" {
		return ref, nil
	}

	for _, candidate := range []string{"origin/main", "origin/master"} {
		if RemoteRefExists(ctx, dir, candidate) {
			return candidate, nil
		}
	}

	if BranchExists(ctx, dir, "main") {
		return "main", nil
	}

	return "", ErrNoBaseRef
}

// RemoteDefaultRef returns the remote's advertised default branch as a
// remote-tracking ref (e.g. "origin/main"), or "" if origin/HEAD is unset.
func RemoteDefaultRef(ctx context.Context, dir string) string {
	output, err := outputGit(ctx, dir, "symbolic-ref", "-q", "refs/remotes/origin/HEAD")
	if err != nil {
		return ""
	}
	ref := strings.TrimSpace(string(output))
	return strings.TrimPrefix(ref, "refs/remotes/")
}

// RemoteRefExists checks if a remote-tracking ref (e.g. "origin/main") resolves.
func RemoteRefExists(ctx context.Context, dir, ref string) bool {
	_, err := outputGit(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/remotes/"+ref)
	return err == nil
}
