package dmi

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Well-known locations where the kernel exposes the DMI class. The
// second path serves older kernels that only register the virtual
// device node.
var sysfsDMIRoots = []string{
	"/sys/class/dmi/id",
	"/sys/devices/virtual/dmi/id",
}

// sysfsFields maps identifier keys to the file exporting them under a
// DMI root. product_uuid and the serial files are world-visible on some
// distributions and root-only on others; a denied read is reported as
// such, never escalated.
var sysfsFields = map[string]string{
	KeySystemUUID:    "product_uuid",
	KeyBoardSerial:   "board_serial",
	KeyProductSerial: "product_serial",
	KeyChassisSerial: "chassis_serial",
	KeyProductName:   "product_name",
	KeyBoardVendor:   "board_vendor",
	KeyManufacturer:  "sys_vendor",
}

// sysfsProbe reads DMI fields from the sysfs hierarchy. Roots are
// injectable so tests can point it at a synthetic directory tree.
type sysfsProbe struct {
	roots []string
}

func newSysfsProbe(roots ...string) *sysfsProbe {
	if len(roots) == 0 {
		roots = sysfsDMIRoots
	}

	return &sysfsProbe{roots: roots}
}

// Probe reads every known DMI field, one small text file per field.
func (p *sysfsProbe) Probe(_ context.Context) map[string]ProbeOutcome {
	outcomes := make(map[string]ProbeOutcome, len(sysfsFields))
	for key, file := range sysfsFields {
		outcomes[key] = p.readField(file)
	}

	return outcomes
}

// readField returns the first readable value across the configured
// roots. A permission error on any root marks the field denied unless a
// later root yields a value.
func (p *sysfsProbe) readField(file string) ProbeOutcome {
	var outcome ProbeOutcome

	for _, root := range p.roots {
		path := filepath.Join(root, file)

		data, err := os.ReadFile(path)
		if err != nil {
			if status := classifyReadError(err); status == StatusDenied {
				log.Debugf("dmi field %s requires privilege: %v", path, err)
				outcome.Status = StatusDenied
			}

			continue
		}

		return ProbeOutcome{Value: strings.TrimSpace(string(data)), Status: StatusAvailable}
	}

	return outcome
}
