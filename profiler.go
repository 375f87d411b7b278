package dmi

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Compiled regexes for ioreg output parsing.
var (
	ioregUUIDRe   = regexp.MustCompile(`"IOPlatformUUID"\s*=\s*"([^"]+)"`)
	ioregSerialRe = regexp.MustCompile(`"IOPlatformSerialNumber"\s*=\s*"([^"]+)"`)
)

// spHardwareDataType represents the JSON output of
// `system_profiler SPHardwareDataType -json`.
type spHardwareDataType struct {
	SPHardwareDataType []spHardwareEntry `json:"SPHardwareDataType"`
}

type spHardwareEntry struct {
	PlatformUUID string `json:"platform_UUID"`
	SerialNumber string `json:"serial_number"`
	MachineModel string `json:"machine_model"`
}

// profilerProbe reads macOS hardware identifiers by invoking
// system_profiler restricted to the hardware data type, with ioreg as a
// secondary source when the profiler fails or omits fields. Neither
// command needs elevated privileges.
type profilerProbe struct {
	executor CommandExecutor
}

func (p *profilerProbe) Probe(ctx context.Context) map[string]ProbeOutcome {
	outcomes := make(map[string]ProbeOutcome, 3)

	output, err := p.executor.Execute(ctx, "system_profiler", "SPHardwareDataType", "-json")
	if err != nil {
		log.Debugf("system_profiler: %v", err)
	} else if entry, perr := parseHardwareJSON(output); perr != nil {
		log.Debugf("system_profiler: %v", perr)
	} else {
		setAvailable(outcomes, KeySystemUUID, entry.PlatformUUID)
		setAvailable(outcomes, KeyProductSerial, entry.SerialNumber)
		setAvailable(outcomes, KeyProductName, entry.MachineModel)
	}

	if missing(outcomes, KeySystemUUID) || missing(outcomes, KeyProductSerial) {
		p.probeIORegistry(ctx, outcomes)
	}

	return outcomes
}

// probeIORegistry fills missing UUID/serial fields from the platform
// expert device node.
func (p *profilerProbe) probeIORegistry(ctx context.Context, outcomes map[string]ProbeOutcome) {
	output, err := p.executor.Execute(ctx, "ioreg", "-d2", "-c", "IOPlatformExpertDevice")
	if err != nil {
		log.Debugf("ioreg: %v", err)

		return
	}

	if missing(outcomes, KeySystemUUID) {
		if match := ioregUUIDRe.FindStringSubmatch(output); len(match) > 1 {
			setAvailable(outcomes, KeySystemUUID, match[1])
		}
	}

	if missing(outcomes, KeyProductSerial) {
		if match := ioregSerialRe.FindStringSubmatch(output); len(match) > 1 {
			setAvailable(outcomes, KeyProductSerial, match[1])
		}
	}
}

// parseHardwareJSON decodes system_profiler JSON output into its first
// hardware entry.
func parseHardwareJSON(output string) (spHardwareEntry, error) {
	var hw spHardwareDataType
	if err := json.Unmarshal([]byte(output), &hw); err != nil {
		return spHardwareEntry{}, &ParseError{Source: "system_profiler JSON", Err: err}
	}

	if len(hw.SPHardwareDataType) == 0 {
		return spHardwareEntry{}, &ParseError{Source: "system_profiler JSON", Err: errors.New("no hardware entries")}
	}

	return hw.SPHardwareDataType[0], nil
}

// setAvailable records a raw value for key, skipping empty values so the
// field stays unavailable instead of carrying an empty outcome.
func setAvailable(outcomes map[string]ProbeOutcome, key, value string) {
	if value == "" {
		return
	}

	outcomes[key] = ProbeOutcome{Value: value, Status: StatusAvailable}
}

// missing reports whether key has no available value yet.
func missing(outcomes map[string]ProbeOutcome, key string) bool {
	return outcomes[key].Status != StatusAvailable
}
