package borrow

import "github.com/llxisdsh/borrow/internal/opt"

// SharedGuard pairs a held shared borrow with a pointer to the data it
// protects. It must be released exactly once, usually with defer:
//
//	g, ok := borrow.TryNewSharedGuard(p, &b)
//	if !ok {
//		return
//	}
//	defer g.Release()
//	use(g.Value())
//
// The guard owns neither the data nor the AtomicBorrow, only the borrow.
// A SharedGuard must not be copied.
type SharedGuard[T any] struct {
	_      noCopy
	data   *T
	borrow *AtomicBorrow
}

// NewSharedGuard wraps a shared borrow the caller has already acquired
// on b.
//
// data must stay valid until the guard is released, and every borrow of
// *data must be registered with b.
func NewSharedGuard[T any](data *T, b *AtomicBorrow) SharedGuard[T] {
	return SharedGuard[T]{data: data, borrow: b}
}

// TryNewSharedGuard tries to acquire a shared borrow on b and returns a
// guard over data if it succeeded.
//
// The same preconditions as NewSharedGuard apply.
func TryNewSharedGuard[T any](data *T, b *AtomicBorrow) (SharedGuard[T], bool) {
	if !b.TryAcquireShared() {
		return SharedGuard[T]{}, false
	}
	return SharedGuard[T]{data: data, borrow: b}, true
}

// SpinNewSharedGuard spins until a shared borrow on b is acquired and
// returns a guard over data.
//
// The same preconditions as NewSharedGuard apply.
func SpinNewSharedGuard[T any](data *T, b *AtomicBorrow) SharedGuard[T] {
	b.SpinAcquireShared()
	return SharedGuard[T]{data: data, borrow: b}
}

// Value returns a copy of the guarded data.
func (g *SharedGuard[T]) Value() T {
	return *g.data
}

// Ptr returns the guarded pointer. It must only be read through, and
// only while the guard is held.
func (g *SharedGuard[T]) Ptr() *T {
	return g.data
}

// Borrow returns the AtomicBorrow the guard was acquired from, or nil
// once the guard has been released or forgotten.
func (g *SharedGuard[T]) Borrow() *AtomicBorrow {
	return g.borrow
}

// Forget consumes the guard without releasing its borrow and returns the
// guarded pointer. The caller becomes responsible for calling
// ReleaseShared on the AtomicBorrow.
func (g *SharedGuard[T]) Forget() *T {
	g.consume()
	return g.data
}

// Release releases the shared borrow.
func (g *SharedGuard[T]) Release() {
	if b := g.consume(); b != nil {
		b.ReleaseShared()
	}
}

func (g *SharedGuard[T]) consume() *AtomicBorrow {
	b := g.borrow
	if b == nil {
		if opt.Debug_ {
			panic("borrow: shared guard used after release")
		}
		return nil
	}
	g.borrow = nil
	return b
}
