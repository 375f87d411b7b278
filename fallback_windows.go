//go:build windows

package dmi

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows/registry"
)

// machineID reads the MachineGuid generated at Windows installation
// time. The key is world-readable; no elevation involved.
func (r *Resolver) machineID(_ context.Context) string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Cryptography`,
		registry.QUERY_VALUE)
	if err != nil {
		log.Debugf("open Cryptography registry key: %v", err)

		return ""
	}
	defer key.Close()

	guid, _, err := key.GetStringValue("MachineGuid")
	if err != nil {
		log.Debugf("read MachineGuid: %v", err)

		return ""
	}

	return guid
}
