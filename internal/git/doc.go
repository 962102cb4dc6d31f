// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather
// than using Go git libraries. This approach is simpler, more reliable, and
// ensures compatibility with user configurations (SSH keys, credential
// helpers, aliases). It also means the underlying tool's own locking protects
// repository metadata when several agentctl processes run concurrently.
//
// # Worktree Operations
//
//   - [ListWorktrees]: Parse git worktree list --porcelain into records
//   - [AddWorktree]: Create a worktree on a new branch from a base ref
//   - [RemoveWorktree]: Remove a worktree, optionally forcing past dirty state
//   - [PruneWorktrees]: Discard stale worktree administrative metadata
//
// # Repository and Ref Operations
//
//   - [RepoRoot]: Resolve the enclosing repository root from any subdirectory
//   - [CurrentBranch]: Current branch, or [ErrDetachedHead]
//   - [ResolveBaseRef]: Deterministic base-ref fallback chain
//   - [BranchExists], [ListBranches], [DeleteLocalBranch], [DeleteRemoteBranch]
//
// # Sync
//
//   - [Sync]: Replay the current branch onto a base via rebase or merge,
//     classifying the result as clean, conflicted, or a no-op. Conflicted
//     replays are left in progress for manual resolution.
package git
