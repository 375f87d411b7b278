// Package dmi retrieves stable hardware-identifying information (system
// UUID, board and product serial numbers, vendor strings) from the host
// machine without elevated privileges, and returns a normalized mapping
// even when some sources are unavailable.
//
// # Overview
//
// A [Resolver] probes the platform's no-privilege hardware descriptor
// source — the sysfs DMI class on Linux, WMI on Windows,
// system_profiler/ioreg on macOS — filters out vendor placeholder
// values, optionally supplements the result with weaker OS-generated
// fallback identifiers, annotates it with a container-runtime flag, and
// caches it for the lifetime of the process.
//
// # Quick Start
//
//	info, err := dmi.GetInfo(ctx, true)
//	if err != nil {
//		// only ErrUnsupportedPlatform reaches here
//	}
//	fmt.Println(info[dmi.KeySystemUUID])
//
// # Resolution Pipeline
//
// On a cache miss the pipeline runs exactly once per configuration:
//
//   - the platform probe reads raw fields, reporting each as available,
//     unavailable, or permission-denied — never as a fatal error
//   - the sanity filter discards empty strings, all-zero and all-F
//     UUIDs, and vendor placeholders such as "To be filled by O.E.M."
//   - when system_uuid is missing and fallback is enabled, the machine
//     ID and host name are merged in under reserved keys
//   - the container flag is attached under [KeyContainer]
//
// Partial mappings are normal. A machine inside a container, or one
// whose firmware tables were never configured, may yield nothing but
// fallback identifiers.
//
// # Provenance
//
// [KeyMachineID] and [KeyHostname] are only ever produced by the
// fallback resolver; platform probes cannot emit them. Use
// [Info.Primary] and [Info.Fallback] to separate firmware-derived
// identifiers from the weaker fallback ones.
//
// # Container Awareness
//
// DMI tables inside containers are frequently virtualized or shared
// across every container on the host. [Containerized] detects the
// common runtime fingerprints and every resolved mapping carries the
// flag, so callers can decide how much to trust the identifiers for
// uniqueness purposes.
//
// # Thread Safety
//
// A [Resolver] is safe for concurrent use after configuration is
// complete. Concurrent first callers share a single probe run; later
// callers read the cached mapping. There is no invalidation: hardware
// identifiers are static for a running machine.
//
// # Testing
//
// Inject a [CommandExecutor] via [Resolver.WithExecutor] or a whole
// [Probe] via [Resolver.WithProbe] to replace real system access with
// deterministic test doubles.
//
// # Platform Support
//
// Linux, Windows, and macOS. On any other operating system
// [Resolver.Info] returns [ErrUnsupportedPlatform] — the single error
// the package surfaces.
//
// # CLI Tool
//
// A thin command-line wrapper is provided in cmd/dmi:
//
//	dmi
//	dmi --json
//	dmi --no-fallback
//	dmi version
package dmi
