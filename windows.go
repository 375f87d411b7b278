//go:build windows

package dmi

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yusufpapurcu/wmi"
)

// WMI classes queried for hardware identifiers. Pointer fields because
// firmware frequently leaves serial properties NULL.
type win32ComputerSystemProduct struct {
	UUID              *string
	IdentifyingNumber *string
	Name              *string
	Vendor            *string
}

type win32BIOS struct {
	SerialNumber *string
}

type win32BaseBoard struct {
	SerialNumber *string
}

// wmiProbe reads hardware identifiers through the Windows management
// instrumentation interface. Queries run under a hard timeout: WMI can
// hang indefinitely on broken provider stacks, and a hung query must
// degrade to unavailable fields rather than block the caller.
type wmiProbe struct {
	timeout time.Duration
}

func (p *wmiProbe) Probe(ctx context.Context) map[string]ProbeOutcome {
	return runBounded(ctx, p.timeout, queryWMI)
}

// queryWMI collects identifier fields from the three relevant WMI
// classes. Each class query degrades independently.
func queryWMI() map[string]ProbeOutcome {
	outcomes := make(map[string]ProbeOutcome)

	var products []win32ComputerSystemProduct
	if err := wmi.Query("SELECT UUID, IdentifyingNumber, Name, Vendor FROM Win32_ComputerSystemProduct", &products); err != nil {
		log.Debugf("query Win32_ComputerSystemProduct: %v", err)
	} else if len(products) > 0 {
		setAvailablePtr(outcomes, KeySystemUUID, products[0].UUID)
		setAvailablePtr(outcomes, KeyChassisSerial, products[0].IdentifyingNumber)
		setAvailablePtr(outcomes, KeyProductName, products[0].Name)
		setAvailablePtr(outcomes, KeyManufacturer, products[0].Vendor)
	}

	var bios []win32BIOS
	if err := wmi.Query("SELECT SerialNumber FROM Win32_BIOS", &bios); err != nil {
		log.Debugf("query Win32_BIOS: %v", err)
	} else if len(bios) > 0 {
		setAvailablePtr(outcomes, KeyBIOSSerial, bios[0].SerialNumber)
	}

	var boards []win32BaseBoard
	if err := wmi.Query("SELECT SerialNumber FROM Win32_BaseBoard", &boards); err != nil {
		log.Debugf("query Win32_BaseBoard: %v", err)
	} else if len(boards) > 0 {
		setAvailablePtr(outcomes, KeyBoardSerial, boards[0].SerialNumber)
	}

	return outcomes
}

// setAvailablePtr records a nullable WMI property when present.
func setAvailablePtr(outcomes map[string]ProbeOutcome, key string, value *string) {
	if value == nil {
		return
	}

	setAvailable(outcomes, key, *value)
}

// newPlatformProbe selects the WMI probe on Windows.
func newPlatformProbe(r *Resolver) Probe {
	return &wmiProbe{timeout: r.timeout}
}
