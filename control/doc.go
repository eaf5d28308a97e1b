// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection layer for hioload-pool.
//
// Provides concurrent-safe state handling primitives including:
//   - Counter registry (Inc/Set) with atomic snapshot reads
//   - State export, debug hooks, and probe registration
//
// Pools feed their lifecycle counters into a MetricsRegistry and expose a
// state probe through DebugProbes; both surfaces are read-only for callers.
package control
