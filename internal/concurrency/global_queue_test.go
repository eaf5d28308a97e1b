package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalQueueFIFO(t *testing.T) {
	q := NewGlobalQueue[int]()
	for i := 0; i < 100; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 100, q.Len())
	for i := 0; i < 100; i++ {
		v, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := q.TryDequeue()
	assert.False(t, ok)
	assert.True(t, q.Empty())
}

func TestGlobalQueue_MPMC(t *testing.T) {
	q := NewGlobalQueue[int]()
	producers := 10
	consumers := 10
	itemsPerProducer := 10000

	var wg sync.WaitGroup
	var sentSum int64
	var receivedSum int64
	var receivedCount int64
	totalItems := int64(producers * itemsPerProducer)

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				q.Enqueue(val)
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	consumerWg := sync.WaitGroup{}
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				if val, ok := q.TryDequeue(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					if atomic.AddInt64(&receivedCount, 1) == totalItems {
						return
					}
				} else {
					if atomic.LoadInt64(&receivedCount) >= totalItems {
						return
					}
					runtime.Gosched()
				}
			}
		}()
	}

	wg.Wait()

	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if sentSum != receivedSum {
			t.Errorf("Checksum mismatch: sent %d, received %d", sentSum, receivedSum)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("Timeout waiting for consumers. Received %d/%d", atomic.LoadInt64(&receivedCount), totalItems)
	}
}

func TestGlobalQueueWaitArrival(t *testing.T) {
	q := NewGlobalQueue[int]()

	// empty queue, no signal: the wait must time out
	start := time.Now()
	assert.False(t, q.WaitArrival(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)

	// an enqueue wakes a waiter well before the deadline
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Enqueue(1)
	}()
	assert.True(t, q.WaitArrival(2*time.Second))

	// non-positive wait never blocks
	assert.False(t, q.WaitArrival(0))
}
