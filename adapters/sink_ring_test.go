package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/fake"
)

func TestRingSinkForwardsEvents(t *testing.T) {
	inner := fake.NewSink()
	rs := NewRingSink(inner, 64)
	defer rs.Close()

	for i := 0; i < 10; i++ {
		rs.Emit(api.WorkerStart{Worker: "w"})
	}
	require.Eventually(t, func() bool {
		return inner.CountOf("pool_worker_start") == 10
	}, 2*time.Second, time.Millisecond)
	assert.Zero(t, rs.Dropped())
}

func TestRingSinkDropsWhenFull(t *testing.T) {
	// use a tiny ring and flood it faster than the drain goroutine can
	// forward, so some emissions may be dropped
	inner := fake.NewSink()
	rs := NewRingSink(inner, 2)
	for i := 0; i < 10000; i++ {
		rs.Emit(api.WorkerStart{Worker: "w"})
	}
	rs.Close()
	// forwarded + dropped accounts for every emission
	require.Eventually(t, func() bool {
		return int64(inner.CountOf("pool_worker_start"))+rs.Dropped() == 10000
	}, 2*time.Second, time.Millisecond)
}

func TestEventRingOfferTake(t *testing.T) {
	r := newEventRing(4)
	require.Len(t, r.slots, 4)

	for i := 0; i < 4; i++ {
		require.True(t, r.offer(api.WorkerStart{Worker: "w"}))
	}
	assert.False(t, r.offer(api.WorkerStart{Worker: "w"}), "full ring must refuse")
	assert.Equal(t, 4, r.buffered())

	for i := 0; i < 4; i++ {
		_, ok := r.take()
		require.True(t, ok)
	}
	_, ok := r.take()
	assert.False(t, ok)
}

func TestEventRingRoundsAndClampsCapacity(t *testing.T) {
	assert.Len(t, newEventRing(3).slots, 4, "capacity rounds up to a power of two")
	assert.Len(t, newEventRing(0).slots, defaultRingCapacity)
	assert.Len(t, newEventRing(-5).slots, defaultRingCapacity)
}

func TestRingSinkNegativeCapacity(t *testing.T) {
	inner := fake.NewSink()
	rs := NewRingSink(inner, -1)
	defer rs.Close()

	rs.Emit(api.PoolStarted{Name: "p"})
	require.Eventually(t, func() bool {
		return inner.CountOf("pool_started") == 1
	}, 2*time.Second, time.Millisecond)
	assert.Zero(t, rs.Dropped())
}

func TestRingSinkCloseFlushes(t *testing.T) {
	inner := fake.NewSink()
	rs := NewRingSink(inner, 64)
	rs.Emit(api.PoolStarted{Name: "p"})
	rs.Close()
	require.Eventually(t, func() bool {
		return inner.CountOf("pool_started") == 1
	}, 2*time.Second, time.Millisecond)
}
