//go:build !linux && !darwin && !windows

package dmi

import "context"

// machineID has no source on unsupported platforms. Unreachable in
// practice: the resolver errors out before the fallback runs.
func (r *Resolver) machineID(_ context.Context) string {
	return ""
}
