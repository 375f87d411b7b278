package dmi

import (
	"context"
	"errors"
	"io/fs"
	"time"

	log "github.com/sirupsen/logrus"
)

// Status classifies the result of probing a single hardware field.
type Status int

const (
	// StatusUnavailable means the source does not exist on this system,
	// timed out, or produced output that could not be parsed.
	StatusUnavailable Status = iota

	// StatusDenied means the source exists but reading it would require
	// elevated privileges. Never treated as a fatal condition.
	StatusDenied

	// StatusAvailable means a raw value was read. The value still has to
	// pass the sanity filter before it appears in an [Info] mapping.
	StatusAvailable
)

// ProbeOutcome is the per-field result of one probe attempt.
// The zero value reports an unavailable field.
type ProbeOutcome struct {
	Value  string
	Status Status
}

// Probe reads raw identifier fields from the operating system without
// elevated privileges. Implementations never return an error: every
// OS-level failure (missing file, missing binary, permission denial,
// timeout, malformed output) degrades to [StatusUnavailable] or
// [StatusDenied] for the affected field.
//
// The platform variant is selected once at startup via build tags;
// inject a custom Probe with [Resolver.WithProbe] for testing.
type Probe interface {
	Probe(ctx context.Context) map[string]ProbeOutcome
}

// classifyReadError maps a file read error onto a probe status.
func classifyReadError(err error) Status {
	if errors.Is(err, fs.ErrPermission) {
		return StatusDenied
	}

	return StatusUnavailable
}

// runBounded executes fn on its own goroutine and waits at most until
// timeout or ctx expiry. On deadline the goroutine is abandoned and nil
// is returned; the stray goroutine finishes in the background. WMI
// queries are known to hang on some driver stacks, so the bound is not
// optional.
func runBounded(ctx context.Context, timeout time.Duration, fn func() map[string]ProbeOutcome) map[string]ProbeOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan map[string]ProbeOutcome, 1)
	go func() {
		done <- fn()
	}()

	select {
	case outcomes := <-done:
		return outcomes
	case <-ctx.Done():
		log.Warnf("hardware probe abandoned after %s: %v", timeout, ctx.Err())

		return nil
	}
}
