package dmi

import (
	"os"
	"strings"
	"sync"
)

// Container runtime fingerprints. DMI tables inside containers are
// frequently virtualized or shared across every container on the host,
// so results resolved there deserve lower confidence.
var (
	containerMarkerFiles = []string{
		"/.dockerenv",
		"/run/.containerenv",
	}

	containerCgroupPath = "/proc/self/cgroup"

	containerRuntimeHints = []string{
		"docker",
		"containerd",
		"kubepods",
		"lxc",
		"podman",
	}
)

var (
	containerOnce sync.Once
	containerFlag bool
)

// Containerized reports whether the process runs inside a container
// runtime. Detection is a fixed property of the execution environment,
// so it is computed once and cached for the process lifetime.
func Containerized() bool {
	containerOnce.Do(func() {
		containerFlag = detectContainer(containerMarkerFiles, containerCgroupPath)
	})

	return containerFlag
}

// detectContainer checks the well-known runtime fingerprints: marker
// files, the env convention used by podman and systemd-nspawn, and
// runtime names in the cgroup membership.
func detectContainer(markerFiles []string, cgroupPath string) bool {
	for _, marker := range markerFiles {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	if os.Getenv("container") != "" {
		return true
	}

	data, err := os.ReadFile(cgroupPath)
	if err != nil {
		return false
	}

	cgroup := string(data)
	for _, hint := range containerRuntimeHints {
		if strings.Contains(cgroup, hint) {
			return true
		}
	}

	return false
}
