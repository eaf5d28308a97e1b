// File: internal/dispatch/pool.go
// Package dispatch implements the shared pool skeleton.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// basePool carries everything the three variants share: the worker
// registry (concurrent map plus ordered key list), cancellation linkage,
// the growth gate with birth spacing, the failure subscriber channel, the
// metrics registry, and item execution with panic capture. No lock is ever
// held across a user callable.

package dispatch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/control"
	"github.com/momentics/hioload-pool/internal/concurrency"
)

// New validates cfg and constructs the pool for cfg.Variant; MaxWorkers is
// additionally capped by the platform ceiling here.
func New(ctx context.Context, cfg api.Config, sink api.Sink) (api.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ceiling := concurrency.MaxWorkerCeiling(); cfg.MaxWorkers > ceiling {
		cfg.MaxWorkers = ceiling
		if cfg.MinWorkers > cfg.MaxWorkers {
			cfg.MinWorkers = cfg.MaxWorkers
		}
	}

	base := newBasePool(ctx, cfg, sink)
	var p api.Pool
	switch cfg.Variant {
	case api.VariantGlobalQueue:
		p = newGlobalPool(base)
	case api.VariantPrivateQueues:
		p = newPrivatePool(base)
	case api.VariantWorkStealing:
		p = newStealingPool(base)
	default:
		base.cancel()
		return nil, api.NewError(api.ErrCodeInvalidArgument, "unknown pool variant").
			WithContext("variant", int(cfg.Variant))
	}
	base.startFloor()
	return p, nil
}

type basePool struct {
	cfg  api.Config
	name string
	sink api.Sink

	ctx    context.Context
	cancel context.CancelFunc
	closed sync.Once

	// spawnFn is installed by the variant constructor; it creates one
	// worker of the variant's kind and launches its loop.
	spawnFn func(permanent bool)

	regMu   sync.RWMutex
	workers map[string]*worker
	order   []string

	growMu    sync.Mutex
	lastBirth time.Time

	warned atomic.Bool
	pinSeq atomic.Int64

	subs    *failureSubscribers
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
}

func newBasePool(ctx context.Context, cfg api.Config, sink api.Sink) *basePool {
	if ctx == nil {
		ctx = context.Background()
	}
	if sink == nil {
		sink = api.NopSink{}
	}
	linked, cancel := context.WithCancel(ctx)
	p := &basePool{
		cfg:     cfg,
		name:    "pool-" + uuid.NewString(),
		sink:    sink,
		ctx:     linked,
		cancel:  cancel,
		workers: make(map[string]*worker),
		subs:    newFailureSubscribers(),
		metrics: control.NewMetricsRegistry(),
		probes:  control.NewDebugProbes(),
	}
	p.probes.RegisterProbe("state", func() any {
		return map[string]any{
			"name":         p.name,
			"variant":      cfg.Variant.String(),
			"live_workers": p.TotalWorkers(),
			"cancelled":    p.cancelled(),
		}
	})
	go func() {
		<-p.ctx.Done()
		p.sink.Emit(api.PoolCancelled{Name: p.name, Live: p.TotalWorkers()})
	}()
	return p
}

// startFloor spawns the permanent minimum and announces the pool. Birth
// spacing applies only to growth after this point.
func (p *basePool) startFloor() {
	for i := 0; i < p.cfg.MinWorkers; i++ {
		p.spawnFn(true)
	}
	p.growMu.Lock()
	p.lastBirth = time.Now()
	p.growMu.Unlock()
	p.sink.Emit(api.PoolStarted{Name: p.name, Min: p.cfg.MinWorkers, Max: p.cfg.MaxWorkers})
}

func (p *basePool) cancelled() bool {
	return p.ctx.Err() != nil
}

// admit performs the common submission checks. A nil callable is reported
// as an internal failure; a cancelled pool refuses silently.
func (p *basePool) admit(fn api.WorkItemFunc) bool {
	if fn == nil {
		p.metrics.Inc("rejected", 1)
		p.sink.Emit(api.Failure{Pool: p.name, Message: api.ErrInvalidArgument.Error() + ": nil work item"})
		return false
	}
	if p.cancelled() {
		p.metrics.Inc("rejected", 1)
		return false
	}
	return true
}

func (p *basePool) register(w *worker) {
	p.regMu.Lock()
	p.workers[w.name] = w
	p.order = append(p.order, w.name)
	p.regMu.Unlock()
}

func (p *basePool) unregister(w *worker) {
	p.regMu.Lock()
	delete(p.workers, w.name)
	for i, name := range p.order {
		if name == w.name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.regMu.Unlock()
}

// TotalWorkers returns the live worker count; eventually consistent.
func (p *basePool) TotalWorkers() int {
	p.regMu.RLock()
	defer p.regMu.RUnlock()
	return len(p.workers)
}

func (p *basePool) Name() string {
	return p.name
}

func (p *basePool) OnWorkItemFailure(h api.FailureHandler) {
	p.subs.Register(h)
}

func (p *basePool) Stats() map[string]any {
	out := make(map[string]any)
	for k, v := range p.metrics.GetSnapshot() {
		out[k] = v
	}
	out["live_workers"] = p.TotalWorkers()
	for k, v := range p.probes.DumpState() {
		out["probe_"+k] = v
	}
	return out
}

// Close requests cancellation and releases the pool. Idempotent; workers
// are signalled, never joined.
func (p *basePool) Close() error {
	p.closed.Do(func() {
		p.cancel()
	})
	return nil
}

// launch starts w's dispatch loop on a fresh goroutine. cleanup runs after
// the loop on the same goroutine, before the worker unregisters. Each
// worker carries a debug probe for its lifetime.
func (p *basePool) launch(w *worker, run func(), cleanup func()) {
	p.register(w)
	probeName := "worker/" + w.name
	p.probes.RegisterProbe(probeName, func() any {
		return map[string]any{
			"permanent": w.permanent,
			"idle":      w.idleFor().String(),
		}
	})
	p.metrics.Inc("worker_births", 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.metrics.Inc("internal_errors", 1)
				p.sink.Emit(api.Failure{Pool: p.name, Message: fmt.Sprintf("worker %s: %v", w.name, r)})
			}
			if cleanup != nil {
				cleanup()
			}
			p.probes.UnregisterProbe(probeName)
			p.unregister(w)
			p.metrics.Inc("worker_exits", 1)
			p.sink.Emit(api.WorkerExit{Worker: w.name})
			p.replenish()
		}()
		if p.cfg.PinWorkers {
			_ = concurrency.PinCurrentThread(int(p.pinSeq.Add(1) - 1))
		}
		p.sink.Emit(api.WorkerStart{Worker: w.name})
		run()
	}()
}

// replenish restores the permanent floor after an abnormal worker exit.
func (p *basePool) replenish() {
	if !p.cancelled() && p.TotalWorkers() < p.cfg.MinWorkers {
		p.spawnFn(true)
	}
}

// tryGrow births one non-permanent worker when the spacing throttle, the
// ceiling, and the variant's backlog condition all allow it. lastBirth is
// read and written only under growMu.
func (p *basePool) tryGrow(backlog func() bool) bool {
	if p.cancelled() {
		return false
	}
	p.growMu.Lock()
	defer p.growMu.Unlock()
	if p.TotalWorkers() >= p.cfg.MaxWorkers {
		return false
	}
	if time.Since(p.lastBirth) < p.cfg.NewWorkerSpacing {
		return false
	}
	if !backlog() {
		return false
	}
	p.lastBirth = time.Now()
	p.spawnFn(false)
	p.metrics.Inc("grows", 1)
	p.maybeWarnSize()
	return true
}

func (p *basePool) maybeWarnSize() {
	live := p.TotalWorkers()
	if live >= p.cfg.SizeWarningThreshold() && p.warned.CompareAndSwap(false, true) {
		p.sink.Emit(api.PoolSizeWarning{Pool: p.name, Current: live, Max: p.cfg.MaxWorkers})
	}
}

// executeItem runs one item with panic capture. Escapes are routed to the
// sink and every failure subscriber; the worker survives.
func (p *basePool) executeItem(w *worker, it *workItem) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.Inc("work_item_panics", 1)
			p.sink.Emit(api.WorkItemFailure{Pool: p.name, Message: fmt.Sprint(r)})
			p.subs.Notify(r, it.userData)
		}
		w.markProcessed()
		p.metrics.Inc("executed", 1)
	}()
	it.fn(it.runCtx(p.ctx), it.userData)
}
