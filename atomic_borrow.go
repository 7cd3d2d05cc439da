package borrow

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/borrow/internal/opt"
)

const (
	// SharedMask selects the shared borrow count: every bit but the top one.
	SharedMask = ^uintptr(0) >> 1
	// UniqueMask selects the unique borrow bit.
	UniqueMask = ^SharedMask
)

// AtomicBorrow tracks the borrows of one piece of data in a single
// machine word: either any number of shared borrows, or exactly one
// unique borrow.
//
// It does not block and does not queue. TryAcquireShared and
// TryAcquireUnique report contention as false; the Spin variants retry
// with a spin-then-yield back-off until they succeed.
//
// Every successful acquisition must be matched by exactly one release of
// the same kind. Mismatched releases panic unless the module is built
// with the borrow_nodebug tag, in which case they corrupt the state.
//
// The zero value is free. An AtomicBorrow must not be copied after first use.
//
// Size: one word.
type AtomicBorrow struct {
	_     noCopy
	state atomic.Uintptr
}

// Load returns a snapshot of the raw state word.
//
//go:nosplit
func (b *AtomicBorrow) Load() uintptr {
	return b.state.Load()
}

// SharedCount returns the number of shared borrows.
// The result is a snapshot and may be stale under concurrent use.
//
// It is 0 while a unique borrow is held: the shared bits may then only
// carry failed attempts that are about to be rolled back.
func (b *AtomicBorrow) SharedCount() uintptr {
	s := b.state.Load()
	if s&UniqueMask != 0 {
		return 0
	}
	return s & SharedMask
}

// CanRead reports whether no unique borrow is held.
//
//go:nosplit
func (b *AtomicBorrow) CanRead() bool {
	return b.state.Load()&UniqueMask == 0
}

// IsUnique reports whether a unique borrow is held.
//
//go:nosplit
func (b *AtomicBorrow) IsUnique() bool {
	return b.state.Load()&UniqueMask != 0
}

// IsBorrowed reports whether any borrow, shared or unique, is held.
//
//go:nosplit
func (b *AtomicBorrow) IsBorrowed() bool {
	return b.state.Load() != 0
}

// TryAcquireShared tries to acquire a shared borrow and
// reports whether it succeeded.
//
// It panics if the shared counter would overflow.
func (b *AtomicBorrow) TryAcquireShared() bool {
	// Increment first and roll back if a unique borrow turned out to be
	// held; the uncontended path is a single atomic add.
	prev := b.state.Add(1) - 1
	if prev&SharedMask == SharedMask {
		b.state.Add(^uintptr(0))
		panic("borrow: shared borrow counter overflowed")
	}
	if prev&UniqueMask != 0 {
		b.state.Add(^uintptr(0))
		return false
	}
	return true
}

// TryAcquireUnique tries to acquire the unique borrow and
// reports whether it succeeded. It only succeeds if b is free.
//
//go:nosplit
func (b *AtomicBorrow) TryAcquireUnique() bool {
	return b.state.CompareAndSwap(0, UniqueMask)
}

// ReleaseShared releases a shared borrow.
func (b *AtomicBorrow) ReleaseShared() {
	prev := b.state.Add(^uintptr(0)) + 1
	if opt.Debug_ {
		if prev == 0 {
			b.state.Add(1)
			panic("borrow: shared borrow counter underflow, released more than borrowed")
		}
		if prev&UniqueMask != 0 {
			b.state.Add(1)
			panic("borrow: shared release of unique borrow")
		}
	}
}

// ReleaseUnique releases the unique borrow.
func (b *AtomicBorrow) ReleaseUnique() {
	prev := b.state.And(SharedMask)
	if opt.Debug_ && prev&UniqueMask == 0 {
		panic("borrow: unique release of shared borrow")
	}
}

// SpinAcquireShared acquires a shared borrow, spinning until no unique
// borrow is held.
func (b *AtomicBorrow) SpinAcquireShared() {
	if b.TryAcquireShared() {
		return
	}
	spinUntil(b.TryAcquireShared)
}

// SpinAcquireUnique acquires the unique borrow, spinning until b is free.
func (b *AtomicBorrow) SpinAcquireUnique() {
	if b.TryAcquireUnique() {
		return
	}
	spinUntil(b.TryAcquireUnique)
}

// String describes the current state as "free", "shared(n)" or "unique".
func (b *AtomicBorrow) String() string {
	s := b.state.Load()
	switch {
	case s == 0:
		return "free"
	case s&UniqueMask != 0:
		return "unique"
	default:
		return "shared(" + strconv.FormatUint(uint64(s&SharedMask), 10) + ")"
	}
}

// PaddedAtomicBorrow is an AtomicBorrow padded to a full cache line, so
// that borrow words laid out in an array do not share cache lines.
type PaddedAtomicBorrow struct {
	AtomicBorrow
	_ [(opt.CacheLineSize_ - unsafe.Sizeof(AtomicBorrow{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
}
