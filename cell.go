package borrow

// Cell is a value guarded by its own AtomicBorrow. Readers and writers
// go through guards, so the many-readers XOR one-writer rule is checked
// at run time instead of being left to the caller.
//
// The zero value is an empty cell ready for use. A Cell must not be
// copied after first use.
type Cell[T any] struct {
	_      noCopy
	borrow AtomicBorrow
	value  T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// TryRead tries to borrow the value for reading.
func (c *Cell[T]) TryRead() (SharedGuard[T], bool) {
	return TryNewSharedGuard(&c.value, &c.borrow)
}

// Read borrows the value for reading, spinning while it is written.
func (c *Cell[T]) Read() SharedGuard[T] {
	return SpinNewSharedGuard(&c.value, &c.borrow)
}

// TryWrite tries to borrow the value for writing.
func (c *Cell[T]) TryWrite() (UniqueGuard[T], bool) {
	return TryNewUniqueGuard(&c.value, &c.borrow)
}

// Write borrows the value for writing, spinning until the cell is free.
func (c *Cell[T]) Write() UniqueGuard[T] {
	return SpinNewUniqueGuard(&c.value, &c.borrow)
}

// Borrow returns the cell's borrow state.
func (c *Cell[T]) Borrow() *AtomicBorrow {
	return &c.borrow
}

// Retire takes the unique borrow and never gives it back, so that every
// later read or write attempt fails (and the spinning ones never return).
// It reports false if the cell is currently borrowed.
func (c *Cell[T]) Retire() bool {
	return c.borrow.TryAcquireUnique()
}
