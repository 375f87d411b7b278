//go:build darwin

package dmi

// newPlatformProbe selects the system_profiler/ioreg probe on macOS.
func newPlatformProbe(r *Resolver) Probe {
	return &profilerProbe{executor: r.executor}
}
