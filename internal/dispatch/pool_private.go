// File: internal/dispatch/pool_private.go
// Package dispatch implements the private-queues variant.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each worker owns a bounded blocking queue and an outstanding counter.
// Submissions pick a target by round-robin or min-load policy; a busy
// target may first trigger growth under the spacing throttle, after which
// selection restarts. FIFO holds per (producer, chosen worker) pair only.
//
// Worker status is one-way Ready -> Running -> Exiting. Idle retirement is
// driven by a periodic timer; an exiting worker closes its queue, runs the
// items it already accepted, and leaves.

package dispatch

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-pool/api"
)

const privateQueueCapacity = 1024

const (
	statusReady int32 = iota
	statusRunning
	statusExiting
)

type privateWorker struct {
	*worker
	items       chan *workItem
	outstanding atomic.Int64
	status      atomic.Int32
	closed      chan struct{}
	closeOnce   sync.Once
}

func newPrivateWorker(permanent bool) *privateWorker {
	return &privateWorker{
		worker: newWorker(permanent),
		items:  make(chan *workItem, privateQueueCapacity),
		closed: make(chan struct{}),
	}
}

// markExiting flips the worker to its terminal state and signals producers
// that the queue accepts no more items.
func (pw *privateWorker) markExiting() {
	pw.status.Store(statusExiting)
	pw.closeOnce.Do(func() { close(pw.closed) })
}

func (pw *privateWorker) exiting() bool {
	return pw.status.Load() == statusExiting
}

type privatePool struct {
	*basePool

	selMu sync.RWMutex
	ring  []*privateWorker

	rr atomic.Int64
}

func newPrivatePool(base *basePool) *privatePool {
	p := &privatePool{basePool: base}
	base.spawnFn = p.spawn
	base.probes.RegisterProbe("outstanding", func() any {
		total := int64(0)
		for _, pw := range p.snapshot() {
			total += pw.outstanding.Load()
		}
		return total
	})
	return p
}

func (p *privatePool) snapshot() []*privateWorker {
	p.selMu.RLock()
	defer p.selMu.RUnlock()
	out := make([]*privateWorker, len(p.ring))
	copy(out, p.ring)
	return out
}

func (p *privatePool) addToRing(pw *privateWorker) {
	p.selMu.Lock()
	p.ring = append(p.ring, pw)
	p.selMu.Unlock()
}

func (p *privatePool) removeFromRing(pw *privateWorker) {
	p.selMu.Lock()
	for i, cur := range p.ring {
		if cur == pw {
			p.ring = append(p.ring[:i], p.ring[i+1:]...)
			break
		}
	}
	p.selMu.Unlock()
}

// selectWorker applies the configured assignment policy to the live ring.
func (p *privatePool) selectWorker() *privateWorker {
	ring := p.snapshot()
	if len(ring) == 0 {
		return nil
	}
	if p.cfg.Assignment == api.PolicyMinLoad {
		min := int64(-1)
		var least []*privateWorker
		for _, pw := range ring {
			if pw.exiting() {
				continue
			}
			n := pw.outstanding.Load()
			switch {
			case min < 0 || n < min:
				min = n
				least = least[:0]
				least = append(least, pw)
			case n == min:
				least = append(least, pw)
			}
		}
		if len(least) == 0 {
			return nil
		}
		return least[rand.IntN(len(least))]
	}
	idx := int(p.rr.Add(1)-1) % len(ring)
	if idx < 0 {
		idx += len(ring)
	}
	return ring[idx]
}

func (p *privatePool) Submit(fn api.WorkItemFunc, userData any) bool {
	return p.SubmitCtx(context.Background(), fn, userData)
}

func (p *privatePool) SubmitCtx(ctx context.Context, fn api.WorkItemFunc, userData any) bool {
	if !p.admit(fn) {
		return false
	}
	it := newWorkItem(fn, userData, ctx, p.cfg.CaptureCallerContext)

	for {
		if p.cancelled() {
			p.metrics.Inc("rejected", 1)
			return false
		}
		pw := p.selectWorker()
		if pw == nil {
			runtime.Gosched()
			continue
		}
		if pw.exiting() {
			continue
		}
		// A loaded target is the backlog signal of this variant: give the
		// pool a chance to grow, then reselect.
		if pw.outstanding.Load() > 0 && p.TotalWorkers() < p.cfg.MaxWorkers {
			if p.tryGrow(func() bool { return pw.outstanding.Load() > 0 }) {
				continue
			}
		}
		select {
		case pw.items <- it:
			tasks := int(pw.outstanding.Add(1))
			// The worker may have flipped to Exiting and finished its
			// final drain between the status check and the send. Reclaim
			// one item and reroute it; an empty queue means the drain
			// already took ours.
			if pw.exiting() {
				select {
				case back := <-pw.items:
					pw.outstanding.Add(-1)
					it = back
					continue
				default:
				}
			}
			p.metrics.Inc("submitted", 1)
			p.sink.Emit(api.WorkerSelected{Worker: pw.name, Tasks: tasks})
			return true
		case <-pw.closed:
			p.sink.Emit(api.WorkerAssignmentFailed{Worker: pw.name, Tasks: int(pw.outstanding.Load())})
			continue
		default:
			// queue full
			p.sink.Emit(api.WorkerAssignmentFailed{Worker: pw.name, Tasks: int(pw.outstanding.Load())})
			runtime.Gosched()
			continue
		}
	}
}

func (p *privatePool) spawn(permanent bool) {
	pw := newPrivateWorker(permanent)
	p.addToRing(pw)
	p.launch(pw.worker,
		func() { p.runWorker(pw) },
		func() { p.removeFromRing(pw) })
}

func (p *privatePool) runWorker(pw *privateWorker) {
	pw.status.Store(statusRunning)

	var tick <-chan time.Time
	if p.cfg.IdleTimeout > 0 {
		ticker := time.NewTicker(p.cfg.IdleTimeout)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case it := <-pw.items:
			pw.outstanding.Add(-1)
			p.executeItem(pw.worker, it)
		case <-p.ctx.Done():
			pw.markExiting()
			return
		case <-tick:
			if pw.idleExpired(p.cfg.IdleTimeout) && p.TotalWorkers() > p.cfg.MinWorkers {
				pw.markExiting()
				p.drainAccepted(pw)
				return
			}
		}
	}
}

// drainAccepted runs items the worker accepted before it flipped to
// Exiting, preserving the executed-exactly-once guarantee.
func (p *privatePool) drainAccepted(pw *privateWorker) {
	for {
		select {
		case it := <-pw.items:
			pw.outstanding.Add(-1)
			p.executeItem(pw.worker, it)
		default:
			return
		}
	}
}
