//go:build windows

// File: internal/concurrency/platform_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows worker ceiling derived from the maximum processor count across
// all processor groups.

package concurrency

import "golang.org/x/sys/windows"

// Threads a single processor is allowed to oversubscribe by before the
// ceiling applies.
const threadsPerProcessor = 256

func platformWorkerCeiling() int {
	n := windows.GetMaximumProcessorCount(windows.ALL_PROCESSOR_GROUPS)
	if n == 0 {
		return defaultWorkerCeiling
	}
	ceiling := int(n) * threadsPerProcessor
	if ceiling > defaultWorkerCeiling {
		return defaultWorkerCeiling
	}
	return ceiling
}
