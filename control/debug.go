// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug probes for pool inspection. A pool registers one "state"
// probe for itself and one probe per live worker; worker probes are
// removed when their worker exits, so DumpState always reflects the
// current population rather than accumulating dead entries.

package control

import "sync"

// ProbeFunc samples one piece of runtime state. It must be safe to call
// from any goroutine and should return quickly.
type ProbeFunc func() any

// DebugProbes holds named probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]ProbeFunc
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]ProbeFunc),
	}
}

// RegisterProbe inserts a named debug hook, replacing any previous probe
// with the same name.
func (dp *DebugProbes) RegisterProbe(name string, fn ProbeFunc) {
	if fn == nil {
		return
	}
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// UnregisterProbe removes a probe; unknown names are ignored. Workers
// call this on exit.
func (dp *DebugProbes) UnregisterProbe(name string) {
	dp.mu.Lock()
	delete(dp.probes, name)
	dp.mu.Unlock()
}

// Len returns the number of registered probes.
func (dp *DebugProbes) Len() int {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return len(dp.probes)
}

// DumpState samples every probe and returns the results keyed by probe
// name. Probes run outside the registry lock so a slow probe cannot
// block registration from a worker being born or dying.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	sampled := make(map[string]ProbeFunc, len(dp.probes))
	for k, fn := range dp.probes {
		sampled[k] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(sampled))
	for k, fn := range sampled {
		out[k] = fn()
	}
	return out
}
