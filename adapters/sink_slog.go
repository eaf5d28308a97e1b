// File: adapters/sink_slog.go
// Package adapters bridges pool events to structured logging.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SlogSink renders every pool event as one structured log record. Failure
// events log at error level, the size warning at warn, everything else at
// debug, so production handlers stay quiet on the hot path.

package adapters

import (
	"context"
	"log/slog"

	"github.com/momentics/hioload-pool/api"
)

// SlogSink emits pool events through a slog.Logger.
type SlogSink struct {
	log *slog.Logger
}

// NewSlogSink wraps l; a nil logger falls back to slog.Default.
func NewSlogSink(l *slog.Logger) *SlogSink {
	if l == nil {
		l = slog.Default()
	}
	return &SlogSink{log: l}
}

// Emit implements api.Sink.
func (s *SlogSink) Emit(ev api.Event) {
	level := slog.LevelDebug
	attrs := make([]any, 0, 6)
	switch e := ev.(type) {
	case api.PoolStarted:
		attrs = append(attrs, "pool", e.Name, "min", e.Min, "max", e.Max)
	case api.PoolCancelled:
		attrs = append(attrs, "pool", e.Name, "live", e.Live)
	case api.WorkerStart:
		attrs = append(attrs, "worker", e.Worker)
	case api.WorkerExit:
		attrs = append(attrs, "worker", e.Worker)
	case api.WorkerSelected:
		attrs = append(attrs, "worker", e.Worker, "tasks", e.Tasks)
	case api.WorkerAssignmentFailed:
		attrs = append(attrs, "worker", e.Worker, "tasks", e.Tasks)
	case api.PoolSizeWarning:
		level = slog.LevelWarn
		attrs = append(attrs, "pool", e.Pool, "current", e.Current, "max", e.Max)
	case api.WorkItemFailure:
		level = slog.LevelError
		attrs = append(attrs, "pool", e.Pool, "message", e.Message)
	case api.Failure:
		level = slog.LevelError
		attrs = append(attrs, "pool", e.Pool, "message", e.Message)
	}
	s.log.Log(context.Background(), level, ev.EventName(), attrs...)
}
