//go:build linux

package dmi

import "context"

// machineID reads the systemd machine ID, falling back to the older
// dbus location.
func (r *Resolver) machineID(_ context.Context) string {
	return readMachineIDFile("/etc/machine-id", "/var/lib/dbus/machine-id")
}
