package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/config"
	"github.com/raphi011/agentctl/internal/gate"
	"github.com/raphi011/agentctl/internal/git"
	"github.com/raphi011/agentctl/internal/log"
	"github.com/raphi011/agentctl/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg     *config.Config
	workDir string
	mode    gate.Mode
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupPR      = "pr"
	GroupUtility = "utility"
)

// Exit codes. Permission denials are distinguishable from operational
// failures so callers can tell "not allowed" from "tried and failed".
const (
	exitError  = 1
	exitDenied = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "agentctl",
	Short: "Manage isolated git worktrees for concurrent agents",
	Long: `agentctl bootstraps and manages a set of isolated git worktrees so
multiple agents (or humans) can work on the same repository concurrently
without stepping on each other's working directories.

Each task lives in its own worktree under <repo>/worktrees/task-N on its
own branch <prefix>/task-N. All worktree state is derived from git itself;
agentctl keeps no bookkeeping of its own.

When AGENTCTL_MODE=agent, destructive commands (init, rm, clean, reset)
are denied and exit with code 2.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip checks for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are bound only now, so the logger and printer must be
		// created after parsing for -v/-q to take effect.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(output.WithPrinter(ctx, os.Stdout))

		// The permission gate is the single choke point: a denied command
		// performs no observable work.
		if err := gate.Authorize(gateCommandName(cmd), mode); err != nil {
			return err
		}

		// Check git is available
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Execution mode is read once for the process lifetime
	mode = gate.ModeFromEnv()

	// Get working directory
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "agentctl: failed to get working directory: %v\n", err)
		os.Exit(exitError)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Store context for commands to use; the logger and printer are
	// attached in PersistentPreRunE once flags are parsed
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an execution error to the process exit code.
func exitCode(err error) int {
	var denied *gate.DeniedError
	if errors.As(err, &denied) {
		return exitDenied
	}
	return exitError
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupPR, Title: "Pull Request Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newSyncCmd())

	// PR commands
	rootCmd.AddCommand(newPrCmd())

	// Utility commands
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
