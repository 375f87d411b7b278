package dmi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMachineIDFile(t *testing.T) {
	dir := t.TempDir()

	primary := filepath.Join(dir, "machine-id")
	secondary := filepath.Join(dir, "dbus-machine-id")
	require.NoError(t, os.WriteFile(secondary, []byte("9f72b4a27e5e4a3da21d2b1ef3a9c8d4\n"), 0o644))

	// Primary missing, secondary wins.
	assert.Equal(t, "9f72b4a27e5e4a3da21d2b1ef3a9c8d4", readMachineIDFile(primary, secondary))

	// systemd's "unavailable" sentinel is not an identifier.
	require.NoError(t, os.WriteFile(primary, []byte("unavailable\n"), 0o644))
	assert.Equal(t, "9f72b4a27e5e4a3da21d2b1ef3a9c8d4", readMachineIDFile(primary, secondary))

	// A real primary takes precedence.
	require.NoError(t, os.WriteFile(primary, []byte("5c1d0f8a93f04bb7a8e2d64c7b19e0aa\n"), 0o644))
	assert.Equal(t, "5c1d0f8a93f04bb7a8e2d64c7b19e0aa", readMachineIDFile(primary, secondary))

	// Nothing readable at all.
	assert.Empty(t, readMachineIDFile(filepath.Join(dir, "nope")))
}

func TestNormalizeHostname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "regular host", in: "build-agent-17", want: "build-agent-17"},
		{name: "trimmed", in: "  db01  ", want: "db01"},
		{name: "empty", in: ""},
		{name: "whitespace", in: "   "},
		{name: "localhost", in: "localhost"},
		{name: "localhost case-insensitive", in: "LOCALHOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHostname(tt.in))
		})
	}
}
