// File: internal/dispatch/subscribers.go
// Package dispatch implements the work-item failure channel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Subscribers are stored in a copy-on-write slice: registration swaps in a
// fresh copy under a mutex, notification reads the current slice without
// locking. Handlers run on the worker goroutine that executed the failing
// item.

package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-pool/api"
)

type failureSubscribers struct {
	mu       sync.Mutex   // serializes writers
	handlers atomic.Value // []api.FailureHandler
}

func newFailureSubscribers() *failureSubscribers {
	fs := &failureSubscribers{}
	fs.handlers.Store([]api.FailureHandler{})
	return fs
}

// Register appends a handler. Handlers are never removed.
func (fs *failureSubscribers) Register(h api.FailureHandler) {
	if h == nil {
		return
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	old := fs.handlers.Load().([]api.FailureHandler)
	grown := make([]api.FailureHandler, len(old)+1)
	copy(grown, old)
	grown[len(old)] = h
	fs.handlers.Store(grown)
}

// Notify invokes every registered handler in registration order.
func (fs *failureSubscribers) Notify(recovered any, userData any) {
	for _, h := range fs.handlers.Load().([]api.FailureHandler) {
		h(recovered, userData)
	}
}
