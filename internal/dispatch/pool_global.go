// File: internal/dispatch/pool_global.go
// Package dispatch implements the global-queue variant.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One MPMC FIFO, competing consumers. Submission FIFO is preserved across
// the whole pool. Workers poll the queue and perform a bounded arrival
// wait when it is empty before re-examining their exit conditions.

package dispatch

import (
	"context"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/internal/concurrency"
)

type globalPool struct {
	*basePool
	queue *concurrency.GlobalQueue[*workItem]
}

func newGlobalPool(base *basePool) *globalPool {
	p := &globalPool{
		basePool: base,
		queue:    concurrency.NewGlobalQueue[*workItem](),
	}
	base.spawnFn = p.spawn
	base.probes.RegisterProbe("global_queue", func() any { return p.queue.Len() })
	return p
}

func (p *globalPool) Submit(fn api.WorkItemFunc, userData any) bool {
	return p.SubmitCtx(context.Background(), fn, userData)
}

func (p *globalPool) SubmitCtx(ctx context.Context, fn api.WorkItemFunc, userData any) bool {
	if !p.admit(fn) {
		return false
	}
	p.queue.Enqueue(newWorkItem(fn, userData, ctx, p.cfg.CaptureCallerContext))
	p.metrics.Inc("submitted", 1)
	if p.queue.Len() > p.TotalWorkers() {
		p.tryGrow(p.backlog)
	}
	return true
}

func (p *globalPool) backlog() bool {
	return p.queue.Len() > p.TotalWorkers()
}

func (p *globalPool) spawn(permanent bool) {
	w := newWorker(permanent)
	p.launch(w, func() { p.runWorker(w) }, nil)
}

func (p *globalPool) runWorker(w *worker) {
	for {
		if p.cancelled() {
			return
		}
		if w.idleExpired(p.cfg.IdleTimeout) && p.TotalWorkers() > p.cfg.MinWorkers {
			return
		}
		if it, ok := p.queue.TryDequeue(); ok {
			p.executeItem(w, it)
			continue
		}
		p.queue.WaitArrival(p.cfg.QueueArrivalWait)
	}
}
