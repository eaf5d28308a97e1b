//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pure-Go Linux thread pinning via sched_setaffinity. No CGO required.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func pinCurrentThread(cpuID int) error {
	runtime.LockOSThread()
	cpu := cpuID % runtime.NumCPU()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	// tid 0 targets the calling thread.
	return unix.SchedSetaffinity(0, &set)
}
