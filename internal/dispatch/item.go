// File: internal/dispatch/item.go
// Package dispatch defines the inert work item descriptor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package dispatch

import (
	"context"

	"github.com/momentics/hioload-pool/api"
)

// workItem is an immutable descriptor of one submitted callable.
type workItem struct {
	fn       api.WorkItemFunc
	userData any

	// callerValues carries the submitter's context values when capture is
	// enabled; nil otherwise. Cancellation is never inherited from it.
	callerValues context.Context
}

func newWorkItem(fn api.WorkItemFunc, userData any, caller context.Context, capture bool) *workItem {
	it := &workItem{fn: fn, userData: userData}
	if capture && caller != nil {
		it.callerValues = context.WithoutCancel(caller)
	}
	return it
}

// runCtx builds the execution context: pool cancellation joined, when
// captured, with the submitter's ambient values.
func (it *workItem) runCtx(poolCtx context.Context) context.Context {
	if it.callerValues == nil {
		return poolCtx
	}
	return mergedCtx{Context: poolCtx, values: it.callerValues}
}

// mergedCtx takes deadline and cancellation from the pool context and
// resolves values against the captured caller context first.
type mergedCtx struct {
	context.Context
	values context.Context
}

func (m mergedCtx) Value(key any) any {
	if v := m.values.Value(key); v != nil {
		return v
	}
	return m.Context.Value(key)
}
