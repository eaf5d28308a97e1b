package concurrency

import (
	"testing"
	"time"
)

func TestPinCurrentThread(t *testing.T) {
	// Pinning may be restricted by the execution environment; the contract
	// is that it never panics and returns promptly.
	done := make(chan error, 1)
	go func() {
		done <- PinCurrentThread(0)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PinCurrentThread did not return")
	}
}
