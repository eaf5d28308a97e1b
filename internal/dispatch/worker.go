// File: internal/dispatch/worker.go
// Package dispatch defines the shared worker state.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A worker is one long-lived goroutine running a variant-specific dispatch
// loop. Permanent workers fill the minimum floor and never retire on idle;
// non-permanent workers retire once the idle timeout elapses without a
// processed item.

package dispatch

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type worker struct {
	name      string
	permanent bool

	// lastProcessed is the UnixNano timestamp of the most recently
	// completed item, seeded at birth.
	lastProcessed atomic.Int64
}

func newWorker(permanent bool) *worker {
	w := &worker{
		name:      uuid.NewString(),
		permanent: permanent,
	}
	w.markProcessed()
	return w
}

func (w *worker) markProcessed() {
	w.lastProcessed.Store(time.Now().UnixNano())
}

func (w *worker) idleFor() time.Duration {
	return time.Duration(time.Now().UnixNano() - w.lastProcessed.Load())
}

// idleExpired reports whether the worker has outlived the idle timeout.
// Permanent workers never expire; a non-positive timeout disables
// shrinkage entirely.
func (w *worker) idleExpired(timeout time.Duration) bool {
	if w.permanent || timeout <= 0 {
		return false
	}
	return w.idleFor() > timeout
}
