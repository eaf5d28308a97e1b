// File: api/events.go
// Package api defines lifecycle and error event types for hioload-pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pools report their lifecycle through a Sink. The sink is an opaque
// collaborator: it is not required to be reliable or ordered, and it must
// never block a worker for long. Events are small value types.

package api

// Event is the marker interface implemented by all pool events.
type Event interface {
	// EventName returns the stable event identifier.
	EventName() string
}

// Sink consumes pool events. Implementations must be safe for concurrent
// use; Emit is called from producer and worker goroutines alike.
type Sink interface {
	Emit(ev Event)
}

// PoolStarted is emitted once when a pool finishes construction.
type PoolStarted struct {
	Name string
	Min  int
	Max  int
}

// PoolCancelled is emitted when cancellation is observed, with the number
// of workers live at that moment.
type PoolCancelled struct {
	Name string
	Live int
}

// WorkerStart is emitted when a worker enters its dispatch loop.
type WorkerStart struct {
	Worker string
}

// WorkerExit is emitted when a worker leaves its dispatch loop.
type WorkerExit struct {
	Worker string
}

// WorkerSelected is emitted when the private-queue dispatcher picks a
// target worker for a submission.
type WorkerSelected struct {
	Worker string
	Tasks  int
}

// WorkerAssignmentFailed is emitted when a private-queue assignment could
// not be completed and selection restarts.
type WorkerAssignmentFailed struct {
	Worker string
	Tasks  int
}

// PoolSizeWarning is emitted when the live worker count crosses the
// advisory 95% high-watermark.
type PoolSizeWarning struct {
	Pool    string
	Current int
	Max     int
}

// WorkItemFailure is emitted when a user work item escapes with a panic.
type WorkItemFailure struct {
	Pool    string
	Message string
}

// Failure is emitted on internal pool errors.
type Failure struct {
	Pool    string
	Message string
}

func (PoolStarted) EventName() string            { return "pool_started" }
func (PoolCancelled) EventName() string          { return "pool_cancelled" }
func (WorkerStart) EventName() string            { return "pool_worker_start" }
func (WorkerExit) EventName() string             { return "pool_worker_exit" }
func (WorkerSelected) EventName() string         { return "pool_worker_selected" }
func (WorkerAssignmentFailed) EventName() string { return "pool_worker_assignment_failed" }
func (PoolSizeWarning) EventName() string        { return "pool_size_warning" }
func (WorkItemFailure) EventName() string        { return "work_item_failure" }
func (Failure) EventName() string                { return "failure" }

// NopSink discards every event.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}
