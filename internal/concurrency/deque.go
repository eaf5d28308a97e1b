// File: internal/concurrency/deque.go
// Package concurrency implements the per-worker work-stealing deque.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Deque is a bounded, growable double-ended queue over a power-of-two
// backing array. The owning worker pushes and pops at the tail without
// taking a lock on the fast path; foreign workers steal at the head under
// the foreign lock with a bounded wait. Only growth, steals, and the
// owner-pop conflict path serialize on that lock.
//
// The backing array and mask are written only by the owner while it holds
// the foreign lock, and stealers read them only under the same lock, so the
// owner fast path never observes a torn buffer swap.

package concurrency

import (
	"sync/atomic"
	"time"
)

// DequeInitialCapacity is the backing array size a fresh deque starts with.
const DequeInitialCapacity = 32

// Deque is a work-stealing deque owned by exactly one worker.
type Deque[T any] struct {
	head    atomic.Int64
	tail    atomic.Int64
	entries []T
	mask    int64
	foreign chan struct{} // one-slot semaphore: the foreign lock
}

// NewDeque creates an empty deque with the initial capacity.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{
		entries: make([]T, DequeInitialCapacity),
		mask:    DequeInitialCapacity - 1,
		foreign: make(chan struct{}, 1),
	}
}

func (d *Deque[T]) lockForeign() {
	d.foreign <- struct{}{}
}

// lockForeignTimed acquires the foreign lock within wait, or reports false.
func (d *Deque[T]) lockForeignTimed(wait time.Duration) bool {
	if wait <= 0 {
		select {
		case d.foreign <- struct{}{}:
			return true
		default:
			return false
		}
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case d.foreign <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

func (d *Deque[T]) unlockForeign() {
	<-d.foreign
}

// OwnerPush appends v at the tail. Lock-free while the buffer has room;
// when full it takes the foreign lock and doubles the backing array,
// compacting the live window to head=0. Must be called only by the owner.
func (d *Deque[T]) OwnerPush(v T) {
	t := d.tail.Load()
	h := d.head.Load()
	if t < h+d.mask {
		d.entries[t&d.mask] = v
		d.tail.Store(t + 1)
		return
	}

	d.lockForeign()
	h = d.head.Load()
	t = d.tail.Load()
	count := t - h
	if count >= d.mask {
		grown := make([]T, 2*len(d.entries))
		for i := int64(0); i < count; i++ {
			grown[i] = d.entries[(h+i)&d.mask]
		}
		d.entries = grown
		d.mask = int64(len(grown)) - 1
		d.head.Store(0)
		d.tail.Store(count)
		t = count
	}
	d.entries[t&d.mask] = v
	d.tail.Store(t + 1)
	d.unlockForeign()
}

// OwnerPop removes and returns the item at the tail. The decrement of tail
// publishes the claim; if a stealer raced for the last item the slow path
// re-checks under the foreign lock and restores tail when it lost.
// Must be called only by the owner.
func (d *Deque[T]) OwnerPop() (v T, ok bool) {
	var zero T
	t := d.tail.Add(-1)
	h := d.head.Load()
	if h <= t {
		v = d.entries[t&d.mask]
		d.entries[t&d.mask] = zero
		return v, true
	}

	// A stealer may have taken the element concurrently.
	d.lockForeign()
	h = d.head.Load()
	if h <= t {
		v = d.entries[t&d.mask]
		d.entries[t&d.mask] = zero
		d.unlockForeign()
		return v, true
	}
	d.tail.Store(t + 1)
	d.unlockForeign()
	return zero, false
}

// Steal removes and returns the item at the head on behalf of a foreign
// worker. It waits at most wait for the foreign lock; ok==false means the
// lock was contended past the deadline or the deque was empty.
func (d *Deque[T]) Steal(wait time.Duration) (v T, ok bool) {
	var zero T
	if !d.lockForeignTimed(wait) {
		return zero, false
	}
	h := d.head.Add(1) - 1
	if h < d.tail.Load() {
		v = d.entries[h&d.mask]
		d.entries[h&d.mask] = zero
		d.unlockForeign()
		return v, true
	}
	d.head.Store(h)
	d.unlockForeign()
	return zero, false
}

// Len returns the number of items reachable by the owner or a stealer.
func (d *Deque[T]) Len() int {
	n := d.tail.Load() - d.head.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Cap returns the current backing array capacity.
func (d *Deque[T]) Cap() int {
	d.lockForeign()
	defer d.unlockForeign()
	return len(d.entries)
}
