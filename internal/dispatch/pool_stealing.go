// File: internal/dispatch/pool_stealing.go
// Package dispatch implements the work-stealing variant.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each worker owns a deque; producers without a deque enqueue into the
// global overflow FIFO. The search order per iteration is own deque (LIFO
// tail), then the global queue, then a steal sweep over peer deques (FIFO
// head). No ordering is guaranteed across workers. Running items are never
// interrupted by cancellation.

package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/internal/concurrency"
)

// idleSpinPause bounds the spin when a full search pass found nothing.
const idleSpinPause = time.Millisecond

type stealingPool struct {
	*basePool
	global *concurrency.GlobalQueue[*workItem]
	deques *concurrency.DequeRegistry[*workItem]

	// locals maps a worker goroutine id to its deque, the Go rendition of
	// the per-thread current-deque pointer.
	locals sync.Map
}

func newStealingPool(base *basePool) *stealingPool {
	p := &stealingPool{
		basePool: base,
		global:   concurrency.NewGlobalQueue[*workItem](),
		deques:   concurrency.NewDequeRegistry[*workItem](),
	}
	base.spawnFn = p.spawn
	base.probes.RegisterProbe("backlog", func() any {
		return p.deques.TotalLen() + p.global.Len()
	})
	return p
}

func (p *stealingPool) Submit(fn api.WorkItemFunc, userData any) bool {
	return p.SubmitCtx(context.Background(), fn, userData)
}

func (p *stealingPool) SubmitCtx(ctx context.Context, fn api.WorkItemFunc, userData any) bool {
	if !p.admit(fn) {
		return false
	}
	it := newWorkItem(fn, userData, ctx, p.cfg.CaptureCallerContext)

	// A submission from inside a work item lands on the executing worker's
	// own deque; every other goroutine is a producer and goes global.
	if d := p.localDeque(); d != nil {
		d.OwnerPush(it)
		p.metrics.Inc("submitted", 1)
		if d.Len() > p.cfg.MinWorkers {
			p.tryGrow(p.backlog)
		}
		return true
	}

	p.global.Enqueue(it)
	p.metrics.Inc("submitted", 1)
	if p.global.Len() > p.cfg.MinWorkers {
		p.tryGrow(p.backlog)
	}
	return true
}

func (p *stealingPool) backlog() bool {
	return p.deques.TotalLen()+p.global.Len() > p.cfg.MaxWorkers
}

// localDeque resolves the calling goroutine's deque, nil for producers.
func (p *stealingPool) localDeque() *concurrency.Deque[*workItem] {
	if v, ok := p.locals.Load(goroutineID()); ok {
		return v.(*concurrency.Deque[*workItem])
	}
	return nil
}

func (p *stealingPool) spawn(permanent bool) {
	w := newWorker(permanent)
	d := concurrency.NewDeque[*workItem]()
	slot := p.deques.Attach(d)
	p.launch(w,
		func() {
			gid := goroutineID()
			p.locals.Store(gid, d)
			defer p.locals.Delete(gid)
			p.runWorker(w, d)
		},
		func() { p.deques.Detach(slot) })
}

func (p *stealingPool) runWorker(w *worker, d *concurrency.Deque[*workItem]) {
	for {
		if p.cancelled() {
			return
		}
		if w.idleExpired(p.cfg.IdleTimeout) && p.TotalWorkers() > p.cfg.MinWorkers {
			return
		}

		var it *workItem
		ok := false
		if d.Len() > 0 {
			it, ok = d.OwnerPop()
		}
		if !ok {
			it, ok = p.global.TryDequeue()
		}
		if !ok {
			for _, victim := range p.deques.Snapshot() {
				if victim == nil || victim == d {
					continue
				}
				if stolen, hit := victim.Steal(p.cfg.StealWait); hit {
					it, ok = stolen, true
					p.metrics.Inc("steals", 1)
					break
				}
			}
		}

		if ok {
			p.executeItem(w, it)
			continue
		}
		time.Sleep(idleSpinPause)
	}
}
