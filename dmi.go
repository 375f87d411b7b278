package dmi

import (
	"context"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Identifier keys that may appear in an [Info] mapping.
//
// The primary keys carry firmware-populated hardware identifiers.
// KeyMachineID and KeyHostname are reserved for the fallback resolver
// and are never produced by a platform probe, so provenance is always
// visible from the key alone. KeyContainer is an annotation, not an
// identifier.
const (
	KeySystemUUID    = "system_uuid"
	KeyBoardSerial   = "board_serial"
	KeyProductSerial = "product_serial"
	KeyChassisSerial = "chassis_serial"
	KeyBIOSSerial    = "bios_serial"
	KeyProductName   = "product_name"
	KeyBoardVendor   = "board_vendor"
	KeyManufacturer  = "manufacturer"

	// Fallback-provenance keys: weaker, OS-generated identifiers.
	KeyMachineID = "machine_id"
	KeyHostname  = "hostname"

	// Annotation: "true"/"false" container runtime flag.
	KeyContainer = "container"
)

// fallbackKeys is the reserved key namespace of the fallback resolver.
var fallbackKeys = map[string]struct{}{
	KeyMachineID: {},
	KeyHostname:  {},
}

// Default timeouts. WMI queries can hang on broken provider stacks and
// system_profiler is slow on first invocation; both bounds follow the
// values that survived production use.
const (
	defaultProbeTimeout   = 5 * time.Second
	defaultCommandTimeout = 3 * time.Second
)

// Info maps identifier keys to resolved values. Keys are present only
// when a value was read and passed the sanity filter; no key ever maps
// to an empty string or a known vendor placeholder.
type Info map[string]string

// Containerized reports whether the mapping was resolved inside a
// container runtime, where DMI identifiers may be shared across many
// instances.
func (i Info) Containerized() bool {
	return i[KeyContainer] == "true"
}

// Primary returns only the firmware-derived identifiers, dropping
// fallback values and the container annotation.
func (i Info) Primary() Info {
	primary := make(Info, len(i))
	for key, value := range i {
		if key == KeyContainer {
			continue
		}
		if _, ok := fallbackKeys[key]; ok {
			continue
		}
		primary[key] = value
	}

	return primary
}

// Fallback returns only the weaker OS-generated identifiers contributed
// by the fallback resolver.
func (i Info) Fallback() Info {
	fallback := make(Info, len(fallbackKeys))
	for key := range fallbackKeys {
		if value, ok := i[key]; ok {
			fallback[key] = value
		}
	}

	return fallback
}

// Resolver resolves hardware identifiers for the current machine and
// caches the result. Results differ depending on whether fallback
// identifiers are allowed, so the cache holds one entry per value of
// includeFallback; neither entry ever expires (hardware identifiers are
// static for a running machine).
//
// The zero Resolver is not usable; construct with [New]. Resolver
// methods are safe for concurrent use after configuration is complete.
type Resolver struct {
	executor      CommandExecutor
	timeout       time.Duration
	probe         Probe
	customProbe   bool
	fallback      func(ctx context.Context) map[string]string
	containerized func() bool

	group singleflight.Group
	mu    sync.RWMutex
	cache map[bool]Info
}

// New creates a Resolver wired to the platform probe for the current
// operating system.
func New() *Resolver {
	r := &Resolver{
		executor: &defaultCommandExecutor{Timeout: defaultCommandTimeout},
		timeout:  defaultProbeTimeout,
		cache:    make(map[bool]Info, 2),
	}
	r.probe = newPlatformProbe(r)
	r.fallback = r.fallbackInfo
	r.containerized = Containerized

	return r
}

// WithExecutor sets a custom [CommandExecutor], enabling deterministic
// testing without real system commands.
func (r *Resolver) WithExecutor(executor CommandExecutor) *Resolver {
	r.executor = executor
	if !r.customProbe {
		r.probe = newPlatformProbe(r)
	}

	return r
}

// WithTimeout bounds the platform probe. Applies to probes that can
// block (the Windows management query); subprocess probes carry their
// own executor timeout.
func (r *Resolver) WithTimeout(timeout time.Duration) *Resolver {
	r.timeout = timeout
	if !r.customProbe {
		r.probe = newPlatformProbe(r)
	}

	return r
}

// WithProbe replaces the platform probe, enabling deterministic testing
// and synthetic hardware.
func (r *Resolver) WithProbe(probe Probe) *Resolver {
	r.probe = probe
	r.customProbe = true

	return r
}

// Info resolves the identifier mapping for this machine.
//
// On a cache miss the platform probe runs once, every raw field passes
// through the sanity filter, and — when includeFallback is true and the
// filtered result is missing the primary identifier (system_uuid) — the
// fallback resolver contributes the machine ID and host name under
// their reserved keys. The result is annotated with the container flag
// and cached; the pipeline executes at most once per includeFallback
// value for the lifetime of the Resolver, no matter how many callers
// race on the first miss.
//
// Unavailable and permission-denied sources degrade to omitted keys. The
// only error returned is [ErrUnsupportedPlatform].
func (r *Resolver) Info(ctx context.Context, includeFallback bool) (Info, error) {
	r.mu.RLock()
	cached, ok := r.cache[includeFallback]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	key := "primary"
	if includeFallback {
		key = "primary+fallback"
	}

	value, err, _ := r.group.Do(key, func() (any, error) {
		// Recheck under the group: a caller that lost the race arrives
		// here after the winner already stored the entry.
		r.mu.RLock()
		cached, ok := r.cache[includeFallback]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		info, err := r.resolve(ctx, includeFallback)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[includeFallback] = info
		r.mu.Unlock()

		return info, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(Info), nil
}

// resolve runs the probe/filter/fallback pipeline once.
func (r *Resolver) resolve(ctx context.Context, includeFallback bool) (Info, error) {
	if r.probe == nil {
		return nil, ErrUnsupportedPlatform
	}

	log.Debugf("resolving hardware identifiers on %s (fallback=%t)", runtime.GOOS, includeFallback)

	info := make(Info)
	for key, outcome := range r.probe.Probe(ctx) {
		if outcome.Status != StatusAvailable {
			continue
		}

		if value, ok := sanitize(outcome.Value); ok {
			info[key] = value
		}
	}

	if _, ok := info[KeySystemUUID]; !ok && includeFallback {
		for key, value := range r.fallback(ctx) {
			info[key] = value
		}
	}

	if r.containerized() {
		info[KeyContainer] = "true"
	} else {
		info[KeyContainer] = "false"
	}

	return info, nil
}

// defaultResolver backs [GetInfo], giving the package-level API the
// process-wide cache semantics callers expect: populate once, read from
// everywhere, no teardown before process exit.
var defaultResolver = New()

// GetInfo resolves the hardware identifier mapping for this machine
// using a shared process-wide resolver. Repeated calls return the
// cached result without re-probing the operating system.
func GetInfo(ctx context.Context, includeFallback bool) (Info, error) {
	return defaultResolver.Info(ctx, includeFallback)
}
