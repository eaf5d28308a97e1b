// File: api/pool.go
// Package api defines the public thread-pool contract for hioload-pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool abstracts the three dispatcher variants behind one submission,
// observation and disposal surface. Implementations live in internal/dispatch
// and are constructed through the adapters package.

package api

import "context"

// Variant selects the dispatching strategy of a pool.
type Variant int

const (
	// VariantGlobalQueue uses a single MPMC FIFO with competing consumers.
	VariantGlobalQueue Variant = iota

	// VariantPrivateQueues gives each worker a private bounded queue and
	// assigns submissions by round-robin or min-load policy.
	VariantPrivateQueues

	// VariantWorkStealing gives each worker a work-stealing deque backed by
	// a global overflow FIFO.
	VariantWorkStealing
)

// String returns the human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantGlobalQueue:
		return "global-queue"
	case VariantPrivateQueues:
		return "private-queues"
	case VariantWorkStealing:
		return "work-stealing"
	default:
		return "unknown"
	}
}

// WorkItemFunc is a unit of work submitted to a pool. ctx is cancelled when
// the pool is cancelled; long-running items are expected to observe it.
// userData is the opaque value passed to Submit, handed through verbatim.
type WorkItemFunc func(ctx context.Context, userData any)

// FailureHandler receives the recovered value of a work item that panicked,
// together with the userData the item was submitted with. Handlers run on the
// worker goroutine that executed the item.
type FailureHandler func(recovered any, userData any)

// Pool dispatches short CPU-bound work items across a bounded population of
// long-lived workers.
type Pool interface {
	// Submit schedules fn for execution. It returns false without side
	// effects once the pool is cancelled. fn must be non-nil.
	Submit(fn WorkItemFunc, userData any) bool

	// SubmitCtx is Submit with the submitter's context. When the pool was
	// configured with CaptureCallerContext, the values of ctx are restored
	// around the item's execution; ctx never contributes cancellation.
	SubmitCtx(ctx context.Context, fn WorkItemFunc, userData any) bool

	// TotalWorkers returns the number of live workers. The value is
	// eventually consistent.
	TotalWorkers() int

	// Name returns the unique pool identifier assigned at construction.
	Name() string

	// OnWorkItemFailure registers an additional handler for work items that
	// escape with a panic. Handlers are never removed.
	OnWorkItemFailure(h FailureHandler)

	// Stats returns a snapshot of runtime counters.
	Stats() map[string]any

	// Close cancels the pool and releases its resources. It is idempotent.
	// Workers are signalled, not joined; running items drain to completion.
	Close() error
}
