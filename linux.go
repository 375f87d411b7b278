//go:build linux

package dmi

// newPlatformProbe selects the sysfs DMI reader on Linux.
func newPlatformProbe(_ *Resolver) Probe {
	return newSysfsProbe()
}
