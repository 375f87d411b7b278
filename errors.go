package dmi

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by [Resolver.Info] when no hardware
// probe exists for the current operating system. It is the only error the
// resolution pipeline propagates; every per-field failure degrades to an
// omitted key instead.
var ErrUnsupportedPlatform = errors.New("no hardware probe for this platform")

// CommandError records a failed system command execution.
// Use [errors.As] to extract the command name from wrapped errors.
type CommandError struct {
	Command string // command name, e.g. "system_profiler", "ioreg"
	Err     error  // underlying error from exec
}

// Error returns a human-readable description of the command failure.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParseError records a failure while parsing command or system output.
// Use [errors.As] to extract the source from wrapped errors.
type ParseError struct {
	Source string // data source, e.g. "system_profiler JSON", "ioreg output"
	Err    error  // underlying parse error
}

// Error returns a human-readable description of the parse failure.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
