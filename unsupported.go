//go:build !linux && !darwin && !windows

package dmi

// newPlatformProbe has no variant for this operating system; the
// resolver surfaces [ErrUnsupportedPlatform].
func newPlatformProbe(_ *Resolver) Probe {
	return nil
}
