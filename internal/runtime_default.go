//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// goroutine id -> *Runtime
var runtimes sync.Map

// GetRuntime returns the runtime of the calling goroutine, creating it on first use.
func GetRuntime() *Runtime {
	id := goid.Get()
	if r, ok := runtimes.Load(id); ok {
		return r.(*Runtime)
	}

	r, _ := runtimes.LoadOrStore(id, NewRuntime())
	return r.(*Runtime)
}

// ReleaseRuntime drops the runtime of the calling goroutine.
// Goroutines that drive renders and then exit should call it to not leak their entry.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}
