//go:build wasm

package internal

// wasm runs every render on the one goroutine of the event loop
var single = NewRuntime()

func GetRuntime() *Runtime {
	return single
}

// ReleaseRuntime resets the shared runtime.
func ReleaseRuntime() {
	*single = Runtime{}
}
