package borrow

// Arena is a fixed number of slots, each guarded by its own cache-line
// padded AtomicBorrow. Slots are borrowed independently: readers and
// writers of different slots never contend.
type Arena[T any] struct {
	data    []T
	borrows []PaddedAtomicBorrow
}

// NewArena returns an arena of n zero-valued slots.
// It panics if n is negative.
func NewArena[T any](n int) *Arena[T] {
	if n < 0 {
		panic("borrow: negative arena length")
	}
	return &Arena[T]{
		data:    make([]T, n),
		borrows: make([]PaddedAtomicBorrow, n),
	}
}

// Len returns the number of slots.
func (a *Arena[T]) Len() int {
	return len(a.data)
}

// Borrow returns the borrow state of slot i.
func (a *Arena[T]) Borrow(i int) *AtomicBorrow {
	return &a.borrows[i].AtomicBorrow
}

// TryRead tries to borrow slot i for reading.
func (a *Arena[T]) TryRead(i int) (SharedGuard[T], bool) {
	return TryNewSharedGuard(&a.data[i], &a.borrows[i].AtomicBorrow)
}

// Read borrows slot i for reading, spinning while it is written.
func (a *Arena[T]) Read(i int) SharedGuard[T] {
	return SpinNewSharedGuard(&a.data[i], &a.borrows[i].AtomicBorrow)
}

// TryWrite tries to borrow slot i for writing.
func (a *Arena[T]) TryWrite(i int) (UniqueGuard[T], bool) {
	return TryNewUniqueGuard(&a.data[i], &a.borrows[i].AtomicBorrow)
}

// Write borrows slot i for writing, spinning until the slot is free.
func (a *Arena[T]) Write(i int) UniqueGuard[T] {
	return SpinNewUniqueGuard(&a.data[i], &a.borrows[i].AtomicBorrow)
}

// Borrowed returns the number of slots currently borrowed in any way.
// The result is a snapshot.
func (a *Arena[T]) Borrowed() int {
	var n int
	for i := range a.borrows {
		if a.borrows[i].IsBorrowed() {
			n++
		}
	}
	return n
}
