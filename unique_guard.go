package borrow

import "github.com/llxisdsh/borrow/internal/opt"

// UniqueGuard pairs the held unique borrow with a pointer to the data it
// protects, granting read and write access. It must be released exactly
// once, usually with defer.
//
// A UniqueGuard must not be copied.
type UniqueGuard[T any] struct {
	_      noCopy
	data   *T
	borrow *AtomicBorrow
}

// NewUniqueGuard wraps a unique borrow the caller has already acquired
// on b.
//
// data must stay valid until the guard is released, and every borrow of
// *data must be registered with b.
func NewUniqueGuard[T any](data *T, b *AtomicBorrow) UniqueGuard[T] {
	return UniqueGuard[T]{data: data, borrow: b}
}

// TryNewUniqueGuard tries to acquire the unique borrow on b and returns a
// guard over data if it succeeded.
func TryNewUniqueGuard[T any](data *T, b *AtomicBorrow) (UniqueGuard[T], bool) {
	if !b.TryAcquireUnique() {
		return UniqueGuard[T]{}, false
	}
	return UniqueGuard[T]{data: data, borrow: b}, true
}

// SpinNewUniqueGuard spins until the unique borrow on b is acquired and
// returns a guard over data.
func SpinNewUniqueGuard[T any](data *T, b *AtomicBorrow) UniqueGuard[T] {
	b.SpinAcquireUnique()
	return UniqueGuard[T]{data: data, borrow: b}
}

// Value returns a copy of the guarded data.
func (g *UniqueGuard[T]) Value() T {
	return *g.data
}

// Set overwrites the guarded data.
func (g *UniqueGuard[T]) Set(v T) {
	*g.data = v
}

// Ptr returns the guarded pointer, valid for reads and writes while the
// guard is held.
func (g *UniqueGuard[T]) Ptr() *T {
	return g.data
}

// Borrow returns the AtomicBorrow the guard was acquired from, or nil
// once the guard has been released or forgotten.
func (g *UniqueGuard[T]) Borrow() *AtomicBorrow {
	return g.borrow
}

// Forget consumes the guard without releasing its borrow and returns the
// guarded pointer. The caller becomes responsible for calling
// ReleaseUnique on the AtomicBorrow.
func (g *UniqueGuard[T]) Forget() *T {
	g.consume()
	return g.data
}

// Release releases the unique borrow.
func (g *UniqueGuard[T]) Release() {
	if b := g.consume(); b != nil {
		b.ReleaseUnique()
	}
}

func (g *UniqueGuard[T]) consume() *AtomicBorrow {
	b := g.borrow
	if b == nil {
		if opt.Debug_ {
			panic("borrow: unique guard used after release")
		}
		return nil
	}
	g.borrow = nil
	return b
}
