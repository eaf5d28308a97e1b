//go:build !linux

// File: internal/concurrency/pin_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pinning fallback: lock the goroutine to its thread, skip CPU binding.

package concurrency

import "runtime"

func pinCurrentThread(cpuID int) error {
	runtime.LockOSThread()
	return nil
}
