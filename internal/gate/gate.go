// Package gate restricts which commands an automated caller may invoke.
//
// The execution mode is read once from the AGENTCTL_MODE environment variable
// at startup and never changes for the process lifetime. Classification is a
// static table consulted at a single choke point before command dispatch, so
// a denied command performs no observable work.
package gate

import (
	"fmt"
	"os"
	"strings"
)

// Mode is the process-wide execution mode.
type Mode string

const (
	// ModeUser allows every command.
	ModeUser Mode = "user"
	// ModeAgent restricts the caller to non-destructive operations.
	ModeAgent Mode = "agent"
)

// EnvVar selects the execution mode. Unset or "user" means user mode.
const EnvVar = "AGENTCTL_MODE"

// ModeFromEnv reads the execution mode from the process environment.
func ModeFromEnv() Mode {
	if strings.ToLower(os.Getenv(EnvVar)) == string(ModeAgent) {
		return ModeAgent
	}
	return ModeUser
}

// Policy classifies a command.
type Policy int

const (
	// Universal commands are allowed in every mode.
	Universal Policy = iota
	// UserOnly commands mutate repo topology and are denied in agent mode.
	UserOnly
)

// policies is the static classification table. "sync" is deliberately
// universal: keeping a long-running agent branch up to date is a safe
// mutation for agents.
var policies = map[string]Policy{
	"init":        UserOnly,
	"rm":          UserOnly,
	"clean":       UserOnly,
	"reset":       UserOnly,
	"list":        Universal,
	"sync":        Universal,
	"pr-comments": Universal,
	"doctor":      Universal,
	"path":        Universal,
}

// DeniedError reports a command rejected by the permission gate.
type DeniedError struct {
	Command string
	Mode    Mode
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("denied: %q is user-only (%s=%s)", e.Command, EnvVar, e.Mode)
}

// Authorize checks whether command may run in mode.
// Unknown commands are allowed; they fail later on their own terms.
func Authorize(command string, mode Mode) error {
	if mode == ModeAgent && policies[command] == UserOnly {
		return &DeniedError{Command: command, Mode: mode}
	}
	return nil
}
