// File: adapters/sink_ring.go
// Package adapters provides a buffered event sink.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingSink decouples event emission from a slow consumer: Emit enqueues
// into a fixed ring of events and returns; a drain goroutine forwards to
// the inner sink with adaptive backoff. Events are dropped when the ring
// is full — the sink contract is explicitly unreliable, and a worker must
// never wait on the consumer. Concurrent emitters are serialized by a
// short critical section around the ring insert.

package adapters

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-pool/api"
)

// defaultRingCapacity absorbs a full worker-churn burst (start, exit and
// selection events for every worker of a large pool) without drops.
const defaultRingCapacity = 1024

// eventRing is a fixed-capacity buffer between event producers and the
// drain goroutine. It supports one producer and one consumer at a time;
// RingSink serializes its producers. A full ring refuses instead of
// blocking, and the caller accounts the drop. Capacity is a power of two
// so slot selection is a mask, not a division.
type eventRing struct {
	slots []api.Event
	mask  uint64
	head  uint64
	_     [64]byte // keep the drain-side cursor off the producers' line
	tail  uint64
}

func newEventRing(capacity int) *eventRing {
	if capacity < 1 {
		capacity = defaultRingCapacity
	}
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &eventRing{
		slots: make([]api.Event, size),
		mask:  size - 1,
	}
}

// offer places ev unless the ring is full.
func (r *eventRing) offer(ev api.Event) bool {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if tail-head == uint64(len(r.slots)) {
		return false
	}
	r.slots[tail&r.mask] = ev
	atomic.AddUint64(&r.tail, 1)
	return true
}

// take removes the oldest buffered event; ok==false when empty.
func (r *eventRing) take() (ev api.Event, ok bool) {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	if head == tail {
		return nil, false
	}
	ev = r.slots[head&r.mask]
	atomic.AddUint64(&r.head, 1)
	return ev, true
}

func (r *eventRing) buffered() int {
	return int(atomic.LoadUint64(&r.tail) - atomic.LoadUint64(&r.head))
}

// RingSink buffers events in front of an inner sink.
type RingSink struct {
	inner   api.Sink
	ring    *eventRing
	emitMu  sync.Mutex // eventRing.offer is single-producer
	stopCh  chan struct{}
	stopped int32
	dropped atomic.Int64
}

// NewRingSink creates a running sink. capacity is rounded up to a power
// of two; a non-positive value selects the default. Call Close to stop
// the drain goroutine.
func NewRingSink(inner api.Sink, capacity int) *RingSink {
	if inner == nil {
		inner = api.NopSink{}
	}
	rs := &RingSink{
		inner:  inner,
		ring:   newEventRing(capacity),
		stopCh: make(chan struct{}),
	}
	go rs.drain()
	return rs
}

// Emit implements api.Sink and is safe for concurrent use. It never waits
// for the drain goroutine; a full ring drops the event.
func (rs *RingSink) Emit(ev api.Event) {
	rs.emitMu.Lock()
	ok := rs.ring.offer(ev)
	rs.emitMu.Unlock()
	if !ok {
		rs.dropped.Add(1)
	}
}

// Dropped returns the number of events lost to a full ring.
func (rs *RingSink) Dropped() int64 {
	return rs.dropped.Load()
}

// Buffered returns the number of events awaiting the drain goroutine.
func (rs *RingSink) Buffered() int {
	return rs.ring.buffered()
}

// Close stops the drain goroutine after flushing buffered events.
func (rs *RingSink) Close() {
	if atomic.CompareAndSwapInt32(&rs.stopped, 0, 1) {
		close(rs.stopCh)
	}
}

func (rs *RingSink) drain() {
	backoff := time.Microsecond
	for {
		ev, ok := rs.ring.take()
		if ok {
			rs.inner.Emit(ev)
			backoff = time.Microsecond
			continue
		}
		select {
		case <-rs.stopCh:
			// flush whatever arrived before the stop signal
			for {
				ev, ok := rs.ring.take()
				if !ok {
					return
				}
				rs.inner.Emit(ev)
			}
		default:
		}
		if backoff < time.Millisecond {
			time.Sleep(backoff)
			backoff *= 2
		} else {
			runtime.Gosched()
		}
	}
}
