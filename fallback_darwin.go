//go:build darwin

package dmi

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// machineID reads the IOPlatformUUID from the platform expert device.
// macOS has no machine-id file; the IOKit UUID is the closest locally
// persistent equivalent.
func (r *Resolver) machineID(ctx context.Context) string {
	output, err := r.executor.Execute(ctx, "ioreg", "-d2", "-c", "IOPlatformExpertDevice")
	if err != nil {
		log.Debugf("ioreg: %v", err)

		return ""
	}

	if match := ioregUUIDRe.FindStringSubmatch(output); len(match) > 1 {
		return match[1]
	}

	return ""
}
