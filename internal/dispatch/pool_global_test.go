package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
)

func TestGlobalPoolFIFOWithSingleWorker(t *testing.T) {
	cfg := testConfig(api.VariantGlobalQueue)
	cfg.MinWorkers = 1
	cfg.MaxWorkers = 1
	p, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	total := 1000
	wg.Add(total)
	for i := 0; i < total; i++ {
		idx := i
		require.True(t, p.Submit(func(context.Context, any) {
			mu.Lock()
			order = append(order, idx)
			mu.Unlock()
			wg.Done()
		}, nil))
	}
	wg.Wait()

	require.Len(t, order, total)
	for i, v := range order {
		require.Equal(t, i, v, "execution order must match submission order")
	}
}

func TestGlobalPoolIdleShrinkToFloor(t *testing.T) {
	cfg := testConfig(api.VariantGlobalQueue)
	cfg.MinWorkers = 1
	cfg.MaxWorkers = 3
	cfg.IdleTimeout = time.Millisecond
	cfg.NewWorkerSpacing = time.Millisecond
	p, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	var done atomic.Int64
	var peak atomic.Int64
	for i := 0; i < 10000; i++ {
		require.True(t, p.Submit(func(context.Context, any) { done.Add(1) }, nil))
		if n := int64(p.TotalWorkers()); n > peak.Load() {
			peak.Store(n)
		}
	}
	require.Eventually(t, func() bool { return done.Load() == 10000 }, 10*time.Second, time.Millisecond)
	assert.LessOrEqual(t, peak.Load(), int64(3))

	require.Eventually(t, func() bool {
		return p.TotalWorkers() == 1
	}, 3*time.Second, 5*time.Millisecond, "pool should shrink back to the permanent floor")
}

func TestGlobalPoolBoundedArrivalWait(t *testing.T) {
	cfg := testConfig(api.VariantGlobalQueue)
	cfg.QueueArrivalWait = 10 * time.Millisecond
	p, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	// a worker parked in the arrival wait still observes cancellation
	// within one bounded interval
	require.NoError(t, p.Close())
	require.Eventually(t, func() bool {
		return p.TotalWorkers() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGlobalPoolExecutesAfterBurst(t *testing.T) {
	cfg := testConfig(api.VariantGlobalQueue)
	cfg.MinWorkers = 2
	cfg.MaxWorkers = 4
	p, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer p.Close()

	var done atomic.Int64
	for i := 0; i < 500; i++ {
		require.True(t, p.Submit(func(context.Context, any) { done.Add(1) }, nil))
	}
	require.Eventually(t, func() bool { return done.Load() == 500 }, 5*time.Second, time.Millisecond)
	assert.LessOrEqual(t, p.TotalWorkers(), 4)
}
