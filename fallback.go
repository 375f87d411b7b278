package dmi

import (
	"context"
	"os"
	"strings"
)

// fallbackInfo collects the weaker secondary identifiers: the OS's own
// locally generated stable machine ID and the network host name. These
// are not hardware-derived (they can change on reinstall and are not
// guaranteed globally unique), which is why they live under reserved
// keys no platform probe ever emits. An unavailable source is silently
// omitted.
func (r *Resolver) fallbackInfo(ctx context.Context) map[string]string {
	fallbacks := make(map[string]string, 2)

	if id := r.machineID(ctx); id != "" {
		fallbacks[KeyMachineID] = id
	}

	if name := hostname(); name != "" {
		fallbacks[KeyHostname] = name
	}

	return fallbacks
}

// hostname returns the network host name, or "" when it carries no
// identifying information.
func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}

	return normalizeHostname(name)
}

// normalizeHostname rejects host names that are placeholders rather
// than identifiers.
func normalizeHostname(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "localhost") {
		return ""
	}

	return name
}

// readMachineIDFile returns the first non-empty machine ID across the
// given locations. systemd writes the literal string "unavailable" when
// it cannot commit an ID; that is not an identifier either.
func readMachineIDFile(paths ...string) string {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		id := strings.TrimSpace(string(data))
		if id != "" && id != "unavailable" {
			return id
		}
	}

	return ""
}
