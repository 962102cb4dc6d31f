package gate

import (
	"errors"
	"testing"
)

func TestAuthorize_AgentMode(t *testing.T) {
	t.Parallel()

	denied := []string{"init", "rm", "clean", "reset"}
	for _, cmd := range denied {
		err := Authorize(cmd, ModeAgent)
		if err == nil {
			t.Errorf("Authorize(%q, agent) = nil, want DeniedError", cmd)
			continue
		}
		var de *DeniedError
		if !errors.As(err, &de) {
			t.Errorf("Authorize(%q, agent) = %T, want *DeniedError", cmd, err)
			continue
		}
		if de.Command != cmd {
			t.Errorf("DeniedError.Command = %q, want %q", de.Command, cmd)
		}
	}

	allowed := []string{"list", "sync", "pr-comments", "doctor", "path"}
	for _, cmd := range allowed {
		if err := Authorize(cmd, ModeAgent); err != nil {
			t.Errorf("Authorize(%q, agent) = %v, want nil", cmd, err)
		}
	}
}

func TestAuthorize_UserModeAllowsEverything(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"init", "rm", "clean", "reset", "list", "sync", "pr-comments", "doctor", "path"} {
		if err := Authorize(cmd, ModeUser); err != nil {
			t.Errorf("Authorize(%q, user) = %v, want nil", cmd, err)
		}
	}
}

func TestAuthorize_UnknownCommand(t *testing.T) {
	t.Parallel()

	if err := Authorize("completion", ModeAgent); err != nil {
		t.Errorf("Authorize(completion, agent) = %v, want nil", err)
	}
}

func TestModeFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  Mode
	}{
		{"", ModeUser},
		{"user", ModeUser},
		{"agent", ModeAgent},
		{"AGENT", ModeAgent},
		{"something-else", ModeUser},
	}

	for _, tt := range tests {
		t.Setenv(EnvVar, tt.value)
		if got := ModeFromEnv(); got != tt.want {
			t.Errorf("ModeFromEnv() with %s=%q = %q, want %q", EnvVar, tt.value, got, tt.want)
		}
	}
}

func TestDeniedError_Message(t *testing.T) {
	t.Parallel()

	err := &DeniedError{Command: "reset", Mode: ModeAgent}
	want := `denied: "reset" is user-only (AGENTCTL_MODE=agent)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
