package borrow

import "github.com/llxisdsh/pb"

// Table maps keys to runtime-checked cells. Lookups and inserts are
// lock-free; each value is then borrowed through its own Cell.
//
// Removing a key retires its cell: goroutines that still hold the *Cell
// can no longer borrow it, so a removed value is never observed again.
//
// The zero value is an empty table ready for use.
type Table[K comparable, V any] struct {
	m pb.MapOf[K, *Cell[V]]
}

// Insert stores v under key unless the key is present. It returns the
// cell now associated with key and reports whether v was inserted.
func (t *Table[K, V]) Insert(key K, v V) (*Cell[V], bool) {
	c, loaded := t.m.ProcessEntry(
		key,
		func(e *pb.EntryOf[K, *Cell[V]]) (*pb.EntryOf[K, *Cell[V]], *Cell[V], bool) {
			if e != nil {
				return e, e.Value, true
			}
			c := NewCell(v)
			return &pb.EntryOf[K, *Cell[V]]{Value: c}, c, false
		},
	)
	return c, !loaded
}

// Cell returns the cell stored under key.
func (t *Table[K, V]) Cell(key K) (*Cell[V], bool) {
	return t.m.Load(key)
}

// TryRead tries to borrow the value under key for reading. It reports
// false if the key is missing or the value is being written.
func (t *Table[K, V]) TryRead(key K) (SharedGuard[V], bool) {
	c, ok := t.m.Load(key)
	if !ok {
		return SharedGuard[V]{}, false
	}
	return c.TryRead()
}

// TryWrite tries to borrow the value under key for writing. It reports
// false if the key is missing or the value is borrowed.
func (t *Table[K, V]) TryWrite(key K) (UniqueGuard[V], bool) {
	c, ok := t.m.Load(key)
	if !ok {
		return UniqueGuard[V]{}, false
	}
	return c.TryWrite()
}

// Remove retires the cell under key and deletes it. It reports false if
// the key is missing or its value is currently borrowed.
func (t *Table[K, V]) Remove(key K) bool {
	_, removed := t.m.ProcessEntry(
		key,
		func(e *pb.EntryOf[K, *Cell[V]]) (*pb.EntryOf[K, *Cell[V]], *Cell[V], bool) {
			if e == nil {
				return nil, nil, false
			}
			if !e.Value.Retire() {
				return e, e.Value, false
			}
			return nil, e.Value, true
		},
	)
	return removed
}

// Len returns the number of keys.
func (t *Table[K, V]) Len() int {
	return t.m.Size()
}

// Range calls yield for every key and cell until yield returns false.
func (t *Table[K, V]) Range(yield func(key K, c *Cell[V]) bool) {
	t.m.Range(yield)
}
