package dmi

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProbe is a deterministic Probe that counts invocations.
type stubProbe struct {
	calls    atomic.Int64
	outcomes map[string]ProbeOutcome
}

func (p *stubProbe) Probe(_ context.Context) map[string]ProbeOutcome {
	p.calls.Add(1)

	return p.outcomes
}

// newTestResolver wires a resolver to the stub probe with deterministic
// container detection and fallback sources.
func newTestResolver(probe Probe) *Resolver {
	r := New().WithProbe(probe)
	r.containerized = func() bool { return false }
	r.fallback = func(_ context.Context) map[string]string {
		return map[string]string{
			KeyMachineID: "9f72b4a27e5e4a3da21d2b1ef3a9c8d4",
			KeyHostname:  "build-agent-17",
		}
	}

	return r
}

func TestResolveEndToEnd(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID:  {Value: "123e4567-e89b-12d3-a456-426614174000", Status: StatusAvailable},
		KeyBoardSerial: {Value: "", Status: StatusAvailable},
	}}

	info, err := newTestResolver(probe).Info(context.Background(), false)
	require.NoError(t, err)

	// Empty board_serial is filtered out; the annotation is the only
	// extra key.
	assert.Equal(t, Info{
		KeySystemUUID: "123e4567-e89b-12d3-a456-426614174000",
		KeyContainer:  "false",
	}, info)
	assert.Equal(t, Info{KeySystemUUID: "123e4567-e89b-12d3-a456-426614174000"}, info.Primary())
	assert.Empty(t, info.Fallback())
	assert.False(t, info.Containerized())
}

func TestResolveIdempotent(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID: {Value: "123e4567-e89b-12d3-a456-426614174000", Status: StatusAvailable},
	}}
	r := newTestResolver(probe)

	first, err := r.Info(context.Background(), true)
	require.NoError(t, err)

	second, err := r.Info(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, probe.calls.Load(), "second call must not re-probe the OS")
}

func TestResolveCachesPerConfig(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeyProductName: {Value: "ThinkPad X1 Carbon", Status: StatusAvailable},
	}}
	r := newTestResolver(probe)

	withFallback, err := r.Info(context.Background(), true)
	require.NoError(t, err)
	withoutFallback, err := r.Info(context.Background(), false)
	require.NoError(t, err)

	// No system_uuid: the fallback-enabled config carries the weaker
	// identifiers, the other does not.
	assert.Equal(t, "build-agent-17", withFallback[KeyHostname])
	assert.NotContains(t, withoutFallback, KeyHostname)

	// One probe run per config, both cached afterwards.
	assert.EqualValues(t, 2, probe.calls.Load())
	_, _ = r.Info(context.Background(), true)
	_, _ = r.Info(context.Background(), false)
	assert.EqualValues(t, 2, probe.calls.Load())
}

func TestResolveConcurrent(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID: {Value: "123e4567-e89b-12d3-a456-426614174000", Status: StatusAvailable},
	}}
	r := newTestResolver(probe)

	const callers = 50
	results := make([]Info, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			info, err := r.Info(context.Background(), true)
			assert.NoError(t, err)
			results[i] = info
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, probe.calls.Load(), "concurrent first callers must share one probe run")
	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestResolveFallbackTrigger(t *testing.T) {
	// A probe that yields nothing usable: denied, unavailable, and
	// placeholder-valued fields.
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID:  {Status: StatusDenied},
		KeyBoardSerial: {Status: StatusUnavailable},
		KeyProductName: {Value: "To be filled by O.E.M.", Status: StatusAvailable},
	}}

	t.Run("fallback enabled", func(t *testing.T) {
		info, err := newTestResolver(probe).Info(context.Background(), true)
		require.NoError(t, err)

		assert.NotContains(t, info, KeySystemUUID)
		assert.Equal(t, "build-agent-17", info[KeyHostname])
		assert.Equal(t, "9f72b4a27e5e4a3da21d2b1ef3a9c8d4", info[KeyMachineID])
		assert.Equal(t, Info{
			KeyMachineID: "9f72b4a27e5e4a3da21d2b1ef3a9c8d4",
			KeyHostname:  "build-agent-17",
		}, info.Fallback())
	})

	t.Run("fallback disabled", func(t *testing.T) {
		info, err := newTestResolver(probe).Info(context.Background(), false)
		require.NoError(t, err)

		assert.Empty(t, info.Primary())
		assert.Empty(t, info.Fallback())
	})
}

func TestResolveFallbackNotTriggeredWithUUID(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID: {Value: "123e4567-e89b-12d3-a456-426614174000", Status: StatusAvailable},
	}}

	info, err := newTestResolver(probe).Info(context.Background(), true)
	require.NoError(t, err)

	// The primary identifier is present, so the weaker sources stay out
	// even with fallback enabled.
	assert.NotContains(t, info, KeyMachineID)
	assert.NotContains(t, info, KeyHostname)
}

func TestResolveFallbackSourceUnavailable(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{}}
	r := newTestResolver(probe)
	r.fallback = func(_ context.Context) map[string]string { return nil }

	info, err := r.Info(context.Background(), true)
	require.NoError(t, err, "missing fallback sources are never fatal")
	assert.Empty(t, info.Primary())
	assert.Empty(t, info.Fallback())
}

func TestResolveContainerAnnotation(t *testing.T) {
	probe := &stubProbe{outcomes: map[string]ProbeOutcome{
		KeySystemUUID: {Value: "123e4567-e89b-12d3-a456-426614174000", Status: StatusAvailable},
	}}
	r := newTestResolver(probe)
	r.containerized = func() bool { return true }

	info, err := r.Info(context.Background(), false)
	require.NoError(t, err)

	assert.True(t, info.Containerized())
	// The flag annotates, it never changes which fields are returned.
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", info[KeySystemUUID])
}

func TestResolveUnsupportedPlatform(t *testing.T) {
	r := newTestResolver(nil)

	_, err := r.Info(context.Background(), true)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)

	// Errors are not cached; the condition is permanent anyway.
	_, err = r.Info(context.Background(), true)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestGetInfoSharedResolver(t *testing.T) {
	// GetInfo delegates to the process-wide resolver; both calls must
	// observe identical data.
	first, err := GetInfo(context.Background(), true)
	if err != nil {
		require.ErrorIs(t, err, ErrUnsupportedPlatform)

		return
	}

	second, err := GetInfo(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, KeyContainer)
}
