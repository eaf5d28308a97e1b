package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

func TestWorkItemContextCapture(t *testing.T) {
	poolCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callerCtx, callerCancel := context.WithCancel(context.Background())
	callerCtx = context.WithValue(callerCtx, ctxKey("tenant"), "acme")

	it := newWorkItem(func(context.Context, any) {}, nil, callerCtx, true)
	run := it.runCtx(poolCtx)

	// captured values resolve
	assert.Equal(t, "acme", run.Value(ctxKey("tenant")))

	// caller cancellation never propagates to the item
	callerCancel()
	assert.NoError(t, run.Err())

	// pool cancellation does
	cancel()
	assert.Error(t, run.Err())
}

func TestWorkItemNoCapture(t *testing.T) {
	poolCtx := context.Background()
	callerCtx := context.WithValue(context.Background(), ctxKey("tenant"), "acme")

	it := newWorkItem(func(context.Context, any) {}, nil, callerCtx, false)
	run := it.runCtx(poolCtx)
	assert.Nil(t, run.Value(ctxKey("tenant")))
}

func TestFailureSubscribersOrder(t *testing.T) {
	fs := newFailureSubscribers()
	var calls []string
	fs.Register(func(r any, u any) { calls = append(calls, "a") })
	fs.Register(func(r any, u any) { calls = append(calls, "b") })
	fs.Register(nil) // ignored

	fs.Notify("boom", 7)
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestGoroutineID(t *testing.T) {
	id := goroutineID()
	require.NotZero(t, id)

	other := make(chan uint64, 1)
	go func() { other <- goroutineID() }()
	assert.NotEqual(t, id, <-other)
}
