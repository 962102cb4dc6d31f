package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentctl/internal/gate"
)

func TestGateCommandName(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "agentctl"}
	initCmd := &cobra.Command{Use: "init"}
	pr := &cobra.Command{Use: "pr"}
	comments := &cobra.Command{Use: "comments"}
	root.AddCommand(initCmd, pr)
	pr.AddCommand(comments)

	tests := []struct {
		name string
		cmd  *cobra.Command
		want string
	}{
		{"root", root, ""},
		{"top-level command", initCmd, "init"},
		{"nested command", comments, "pr-comments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := gateCommandName(tt.cmd); got != tt.want {
				t.Errorf("gateCommandName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every registered command name must be classified by the gate so denial
// happens at the dispatch choke point, not deep inside a command.
func TestGateCommandName_CoversRegisteredCommands(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		name := gateCommandName(cmd)
		switch name {
		case "completion", "help":
			continue
		}
		if err := gate.Authorize(name, gate.ModeUser); err != nil {
			t.Errorf("command %q denied in user mode: %v", name, err)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	denied := &gate.DeniedError{Command: "reset", Mode: gate.ModeAgent}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), exitError},
		{"denied", denied, exitDenied},
		{"wrapped denied", fmt.Errorf("dispatch: %w", denied), exitDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
