package dmi

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// CommandExecutor is an interface for executing system commands, allowing
// for dependency injection and testing. The macOS probe and fallback use
// it to run system_profiler and ioreg.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

// defaultCommandExecutor implements CommandExecutor using actual system
// command execution.
type defaultCommandExecutor struct {
	Timeout time.Duration
}

// Execute runs a system command with a timeout and returns the trimmed
// output. It uses context.WithTimeout to prevent commands from hanging
// indefinitely; the subprocess is killed when the deadline expires.
func (e *defaultCommandExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", &CommandError{Command: name, Err: err}
	}

	return strings.TrimSpace(string(output)), nil
}
