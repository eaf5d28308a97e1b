// File: adapters/pool_adapter.go
// Package adapters provides glue between internal dispatch and api.Pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NewPool is the library entry point: it validates the configuration,
// links cancellation, and constructs the variant selected by cfg.Variant.

package adapters

import (
	"context"

	"github.com/momentics/hioload-pool/api"
	"github.com/momentics/hioload-pool/internal/dispatch"
)

// NewPool constructs a pool. ctx supplies caller-side cancellation: when it
// is cancelled the pool stops accepting work, exactly as if Close had been
// called. sink may be nil; events are then discarded.
func NewPool(ctx context.Context, cfg api.Config, sink api.Sink) (api.Pool, error) {
	return dispatch.New(ctx, cfg, sink)
}
