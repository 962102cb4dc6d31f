package git

import (
	"context"
	"fmt"
	"strings"
)

// Strategy selects how a branch is replayed onto its base.
type Strategy string

const (
	StrategyRebase Strategy = "rebase"
	StrategyMerge  Strategy = "merge"
)

// ParseStrategy validates a strategy flag value.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRebase, StrategyMerge:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("strategy must be 'rebase' or 'merge', got %q", s)
	}
}

// Outcome classifies the result of a sync operation.
type Outcome string

const (
	// OutcomeClean means the replay completed and moved the branch.
	OutcomeClean Outcome = "clean"
	// OutcomeConflicted means the replay stopped on conflicts and was left
	// in progress for manual resolution.
	OutcomeConflicted Outcome = "conflicted"
	// OutcomeNoop means the branch was already up to date with the base.
	OutcomeNoop Outcome = "no-op"
	// OutcomeError means the replay failed for a reason other than conflicts.
	OutcomeError Outcome = "error"
)

// SyncResult describes what a sync did.
type SyncResult struct {
	Strategy  Strategy `json:"strategy"`
	Outcome   Outcome  `json:"outcome"`
	Message   string   `json:"message,omitempty"`
	Conflicts []string `json:"conflicts,omitempty"`
}

// Sync replays the current branch of dir onto base using the given strategy.
//
// A conflicted replay is reported via OutcomeConflicted and deliberately left
// in its in-progress state: aborting it automatically would destroy the
// caller's ability to resolve the conflicts. Only non-conflict failures
// return a non-nil error.
func Sync(ctx context.Context, dir, base string, strategy Strategy, autostash bool) (SyncResult, error) {
	result := SyncResult{Strategy: strategy}

	headBefore, err := HeadCommit(ctx, dir)
	if err != nil {
		result.Outcome = OutcomeError
		return result, err
	}

	// Merge has no native autostash flag, so stash/restore explicitly.
	stashed := false
	if autostash && strategy == StrategyMerge && IsDirty(ctx, dir) {
		if err := Stash(ctx, dir); err != nil {
			result.Outcome = OutcomeError
			return result, err
		}
		stashed = true
	}

	var args []string
	switch strategy {
	case StrategyRebase:
		args = []string{"rebase"}
		if autostash {
			args = append(args, "--autostash")
		}
		args = append(args, base)
	case StrategyMerge:
		args = []string{"merge", "--no-edit", base}
	}

	out, runErr := combinedGit(ctx, dir, args...)
	result.Message = out

	if runErr != nil {
		if conflicts := ConflictPaths(ctx, dir); len(conflicts) > 0 {
			result.Outcome = OutcomeConflicted
			result.Conflicts = conflicts
			if stashed {
				// git refuses to pop onto unmerged entries; the stash entry
				// survives for the user to restore after resolving.
				if err := StashPop(ctx, dir); err != nil {
					result.Message += "\nstashed changes kept: " + err.Error()
				}
			}
			return result, nil
		}
		result.Outcome = OutcomeError
		if stashed {
			if err := StashPop(ctx, dir); err != nil {
				result.Message += "\nstashed changes kept: " + err.Error()
			}
		}
		return result, fmt.Errorf("%s failed: %s", strategy, out)
	}

	if stashed {
		if err := StashPop(ctx, dir); err != nil {
			result.Outcome = OutcomeError
			return result, fmt.Errorf("failed to restore stashed changes: %v", err)
		}
	}

	headAfter, err := HeadCommit(ctx, dir)
	if err != nil {
		result.Outcome = OutcomeError
		return result, err
	}

	if headAfter == headBefore {
		result.Outcome = OutcomeNoop
	} else {
		result.Outcome = OutcomeClean
	}
	return result, nil
}

// ConflictPaths returns the paths blocked by merge conflicts in dir.
func ConflictPaths(ctx context.Context, dir string) []string {
	output, err := outputGit(ctx, dir, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(string(output), "\n") {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
