// File: internal/dispatch/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher core for hioload-pool: work items, the worker lifecycle, the
// shared pool skeleton (registry, cancellation linkage, growth gate,
// failure subscribers), and the three dispatching variants layered on the
// queue structures from internal/concurrency.
//
// Lifecycle: a pool starts with its permanent worker floor, grows lazily
// under the birth-spacing throttle up to the ceiling, and non-permanent
// workers retire after the idle timeout. Cancellation is level-triggered
// and one-way; running items always drain to completion.
package dispatch
