package dmi

import (
	"strings"

	"github.com/google/uuid"
)

// placeholderValues lists vendor default strings that indicate a DMI
// field was never configured at the factory. Many vendors ship
// unconfigured tables; treating these as real identifiers would make
// thousands of distinct machines collide on the same "identity".
// Matched case-insensitively.
var placeholderValues = map[string]struct{}{
	"to be filled by o.e.m.": {},
	"default string":         {},
	"none":                   {},
	"n/a":                    {},
	"system serial number":   {},
	"not specified":          {},
	"unknown":                {},
}

// maxUUID is the all-F UUID some firmware reports instead of leaving the
// field empty.
var maxUUID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

// sanitize validates a raw probed value. It discards empty and
// whitespace-only strings, known vendor placeholders, and all-zero or
// all-F UUIDs. Values that survive are returned trimmed but otherwise
// unchanged.
func sanitize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	if _, ok := placeholderValues[strings.ToLower(value)]; ok {
		return "", false
	}

	// Non-UUID fields (serials, product names) simply fail to parse and
	// skip this check.
	if u, err := uuid.Parse(value); err == nil {
		if u == uuid.Nil || u == maxUUID {
			return "", false
		}
	}

	return value, true
}
