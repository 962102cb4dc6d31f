// Package worktree implements the worktree lifecycle for agent tasks.
//
// A task worktree is addressed by an integer index: index i lives at
// {workdir}/task-{i} on branch {prefix}/task-{i}, created from a resolved
// base ref. The package deliberately persists nothing of its own — the
// [Registry] re-derives the worktree set from git on every query, and the
// [Manager] mutates state only by issuing git subcommands.
//
// Batch operations (init across N indices, reset's removal and branch
// deletion phases) collect per-item outcomes instead of aborting on the
// first failure, so an interrupted or partially failed run can be repaired
// by simply re-invoking it: init skips indices that already exist.
package worktree
