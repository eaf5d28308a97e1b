// File: api/config.go
// Package api defines the immutable pool configuration.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Config holds parameters immutable per pool instance. Validation is
// performed once at construction; there is no runtime reconfiguration.

package api

import (
	"math"
	"runtime"
	"time"
)

// Default configuration values.
const (
	DefaultMinWorkers       = 1
	DefaultIdleTimeout      = 120 * time.Second
	DefaultQueueArrivalWait = 100 * time.Millisecond
	DefaultNewWorkerSpacing = 5 * time.Second
	DefaultStealWait        = 100 * time.Millisecond
)

// Config holds pool parameters, immutable after construction.
type Config struct {
	// Variant selects the dispatching strategy.
	Variant Variant

	// MinWorkers is the permanent worker floor. Must be >= 1.
	MinWorkers int

	// MaxWorkers is the worker ceiling. Must be >= MinWorkers. The
	// constructor additionally caps it by a platform-dependent bound.
	MaxWorkers int

	// IdleTimeout is how long a non-permanent worker may run without
	// processing an item before it exits. Zero or negative disables
	// shrinkage entirely.
	IdleTimeout time.Duration

	// NewWorkerSpacing is the minimum wall-clock interval between two
	// successive worker births.
	NewWorkerSpacing time.Duration

	// QueueArrivalWait bounds the wait a global-queue worker performs when
	// the queue is empty before re-examining its exit conditions.
	QueueArrivalWait time.Duration

	// StealWait bounds the wait for a steal victim's foreign lock.
	StealWait time.Duration

	// CaptureCallerContext captures the submitter's context values at
	// submission time and restores them around execution.
	CaptureCallerContext bool

	// PinWorkers pins each worker's OS thread to a logical CPU,
	// round-robin. Supported on Linux; a no-op elsewhere.
	PinWorkers bool

	// Assignment selects how the private-queues variant picks a target
	// worker for a submission. Ignored by the other variants.
	Assignment AssignmentPolicy
}

// AssignmentPolicy is the target-worker selection strategy of the
// private-queues variant.
type AssignmentPolicy int

const (
	// PolicyRoundRobin cycles a stateful index over the live workers.
	PolicyRoundRobin AssignmentPolicy = iota

	// PolicyMinLoad picks uniformly among the workers with the fewest
	// outstanding items.
	PolicyMinLoad
)

// DefaultConfig returns a Config with production defaults:
// one permanent worker, a ceiling of NumCPU, 120s idle timeout.
func DefaultConfig() Config {
	return Config{
		Variant:          VariantGlobalQueue,
		MinWorkers:       DefaultMinWorkers,
		MaxWorkers:       runtime.NumCPU(),
		IdleTimeout:      DefaultIdleTimeout,
		NewWorkerSpacing: DefaultNewWorkerSpacing,
		QueueArrivalWait: DefaultQueueArrivalWait,
		StealWait:        DefaultStealWait,
	}
}

// Validate checks bounds and returns a structured error on violation.
func (c Config) Validate() error {
	if c.MinWorkers < 1 {
		return NewError(ErrCodeInvalidArgument, "MinWorkers must be at least 1").
			WithContext("min_workers", c.MinWorkers)
	}
	if c.MaxWorkers < 1 {
		return NewError(ErrCodeInvalidArgument, "MaxWorkers must be at least 1").
			WithContext("max_workers", c.MaxWorkers)
	}
	if c.MinWorkers > c.MaxWorkers {
		return NewError(ErrCodeOutOfRange, "MinWorkers exceeds MaxWorkers").
			WithContext("min_workers", c.MinWorkers).
			WithContext("max_workers", c.MaxWorkers)
	}
	if c.Variant < VariantGlobalQueue || c.Variant > VariantWorkStealing {
		return NewError(ErrCodeInvalidArgument, "unknown pool variant").
			WithContext("variant", int(c.Variant))
	}
	if c.Assignment < PolicyRoundRobin || c.Assignment > PolicyMinLoad {
		return NewError(ErrCodeInvalidArgument, "unknown assignment policy").
			WithContext("assignment", int(c.Assignment))
	}
	return nil
}

// SizeWarningThreshold is the advisory high-watermark at 95% of MaxWorkers.
func (c Config) SizeWarningThreshold() int {
	return int(math.Ceil(0.95 * float64(c.MaxWorkers)))
}
