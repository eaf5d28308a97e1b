// File: internal/concurrency/global_queue.go
// Package concurrency implements the dispatcher's global FIFO.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// GlobalQueue is a multi-producer/multi-consumer FIFO built on
// eapache/queue under a mutex, with a one-slot arrival channel so that
// consumers can perform a bounded wait instead of spinning. Enqueue and
// TryDequeue are linearizable at the mutex; per-producer FIFO order follows
// from the single critical section.

package concurrency

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// GlobalQueue is a concurrent FIFO of items of type T.
type GlobalQueue[T any] struct {
	mu      sync.Mutex
	items   *queue.Queue
	arrival chan struct{}
}

// NewGlobalQueue creates an empty queue.
func NewGlobalQueue[T any]() *GlobalQueue[T] {
	return &GlobalQueue[T]{
		items:   queue.New(),
		arrival: make(chan struct{}, 1),
	}
}

// Enqueue appends v and signals one waiting consumer.
func (q *GlobalQueue[T]) Enqueue(v T) {
	q.mu.Lock()
	q.items.Add(v)
	q.mu.Unlock()

	select {
	case q.arrival <- struct{}{}:
	default:
	}
}

// TryDequeue removes and returns the oldest item, or ok==false when the
// queue is empty.
func (q *GlobalQueue[T]) TryDequeue() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		return v, false
	}
	return q.items.Remove().(T), true
}

// Len returns the current item count.
func (q *GlobalQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Empty reports whether the queue holds no items.
func (q *GlobalQueue[T]) Empty() bool {
	return q.Len() == 0
}

// WaitArrival blocks for up to d waiting for an enqueue signal. It returns
// true when a signal was observed. The signal is a hint: a concurrent
// consumer may already have taken the item, so callers must re-poll.
func (q *GlobalQueue[T]) WaitArrival(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-q.arrival:
		return true
	case <-timer.C:
		return false
	}
}
