// File: internal/dispatch/goid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity for worker-local deque lookup. The runtime offers no
// goroutine-local storage; the id is parsed from the stack header, which is
// stable across releases ("goroutine <id> [...").

package dispatch

import (
	"runtime"
	"strconv"
	"strings"
)

func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	idField, _, _ := strings.Cut(header, " ")
	id, err := strconv.ParseUint(idField, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
