package borrow

import (
	"runtime"
	_ "unsafe" // for linkname
)

// spinBudget is the number of busy-wait attempts made with a CPU pause
// hint before falling back to yielding the processor.
const spinBudget = 1 << 10

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// spinUntil retries try until it reports true. The first spinBudget
// attempts are separated by a CPU pause; after that every retry yields
// the processor. It never parks the goroutine.
func spinUntil(try func() bool) {
	for range spinBudget {
		if try() {
			return
		}
		runtime_doSpin()
	}
	for !try() {
		runtime.Gosched()
	}
}

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
