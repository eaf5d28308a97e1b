//go:build linux

// File: internal/concurrency/platform_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux worker ceiling derived from the process limit on threads.

package concurrency

import "golang.org/x/sys/unix"

// platformWorkerCeiling returns the per-process thread allowance, capped by
// defaultWorkerCeiling when RLIMIT_NPROC is unlimited or unreadable.
func platformWorkerCeiling() int {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NPROC, &rl); err != nil {
		return defaultWorkerCeiling
	}
	if rl.Cur == unix.RLIM_INFINITY || rl.Cur > defaultWorkerCeiling {
		return defaultWorkerCeiling
	}
	if rl.Cur < 1 {
		return 1
	}
	return int(rl.Cur)
}
