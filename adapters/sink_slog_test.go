package adapters

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-pool/api"
)

func TestSlogSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewSlogSink(logger)

	s.Emit(api.PoolStarted{Name: "pool-x", Min: 1, Max: 4})
	s.Emit(api.PoolSizeWarning{Pool: "pool-x", Current: 4, Max: 4})
	s.Emit(api.WorkItemFailure{Pool: "pool-x", Message: "boom"})

	out := buf.String()
	assert.Contains(t, out, "pool_started")
	assert.Contains(t, out, "pool=pool-x")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "boom")
}

func TestSlogSinkNilLoggerFallsBack(t *testing.T) {
	s := NewSlogSink(nil)
	require.NotNil(t, s)
	// must not panic
	s.Emit(api.WorkerStart{Worker: "w-1"})
}
