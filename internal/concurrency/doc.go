// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrent queue structures for the hioload-pool dispatcher: a
// multi-producer/multi-consumer FIFO with arrival signalling, a per-worker
// work-stealing deque with lock-free owner fast paths, and the growable
// slot registry that exposes live deques to stealers.
//
// All implementations are cross-platform; CPU pinning and the platform
// worker ceiling are provided per-OS via build tags.
package concurrency
