package borrow

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/borrow/internal/opt"
)

type point struct {
	X, Y int
}

func TestSharedGuard_Basic(t *testing.T) {
	var b AtomicBorrow
	data := point{1, 2}

	g1, ok := TryNewSharedGuard(&data, &b)
	require.True(t, ok)
	g2 := SpinNewSharedGuard(&data, &b)
	require.Equal(t, uintptr(2), b.SharedCount())

	require.Equal(t, point{1, 2}, g1.Value())
	require.Same(t, &data, g2.Ptr())
	require.Same(t, &b, g1.Borrow())

	_, ok = TryNewUniqueGuard(&data, &b)
	require.False(t, ok, "unique guard acquired while shared guards are held")

	g1.Release()
	g2.Release()
	require.False(t, b.IsBorrowed())
	require.Nil(t, g1.Borrow())
}

func TestSharedGuard_Trusted(t *testing.T) {
	var b AtomicBorrow
	data := 42

	require.True(t, b.TryAcquireShared())
	g := NewSharedGuard(&data, &b)
	require.Equal(t, 42, g.Value())
	g.Release()
	require.Zero(t, b.Load())
}

func TestSharedGuard_Forget(t *testing.T) {
	var b AtomicBorrow
	data := "forgotten"

	g := SpinNewSharedGuard(&data, &b)
	p := g.Forget()
	require.Same(t, &data, p)
	require.Equal(t, uintptr(1), b.SharedCount(), "Forget must not release")

	b.ReleaseShared()
	require.False(t, b.IsBorrowed())
}

func TestSharedGuard_FailsWhileUnique(t *testing.T) {
	var b AtomicBorrow
	data := 0

	w := SpinNewUniqueGuard(&data, &b)
	_, ok := TryNewSharedGuard(&data, &b)
	require.False(t, ok)
	w.Release()

	r, ok := TryNewSharedGuard(&data, &b)
	require.True(t, ok)
	r.Release()
}

func TestUniqueGuard_Basic(t *testing.T) {
	var b AtomicBorrow
	data := point{}

	g, ok := TryNewUniqueGuard(&data, &b)
	require.True(t, ok)
	require.True(t, b.IsUnique())

	g.Set(point{3, 4})
	g.Ptr().X++
	require.Equal(t, point{4, 4}, g.Value())

	_, ok = TryNewUniqueGuard(&data, &b)
	require.False(t, ok)
	_, ok = TryNewSharedGuard(&data, &b)
	require.False(t, ok)

	g.Release()
	require.Zero(t, b.Load())
	require.Equal(t, point{4, 4}, data)
}

func TestUniqueGuard_TrustedAndForget(t *testing.T) {
	var b AtomicBorrow
	data := []int{1}

	require.True(t, b.TryAcquireUnique())
	g := NewUniqueGuard(&data, &b)
	g.Set(append(g.Value(), 2))

	p := g.Forget()
	require.Equal(t, []int{1, 2}, *p)
	require.True(t, b.IsUnique(), "Forget must not release")

	b.ReleaseUnique()
	require.False(t, b.IsBorrowed())
}

func TestGuard_DoubleRelease(t *testing.T) {
	if !opt.Debug_ {
		t.Skip("release assertions disabled by borrow_nodebug")
	}
	var b AtomicBorrow
	data := 0

	s := SpinNewSharedGuard(&data, &b)
	s.Release()
	require.PanicsWithValue(t, "borrow: shared guard used after release", s.Release)
	require.Zero(t, b.Load())

	u := SpinNewUniqueGuard(&data, &b)
	u.Forget()
	require.PanicsWithValue(t, "borrow: unique guard used after release", u.Release)
	require.True(t, b.IsUnique())
	b.ReleaseUnique()

	var empty SharedGuard[int]
	require.Panics(t, empty.Release)
}

func TestGuard_Counter(t *testing.T) {
	var b AtomicBorrow
	var counter int

	n := runtime.GOMAXPROCS(0)
	loops := 2000
	if opt.Race_ {
		loops = 200
	}

	var g errgroup.Group
	for range n {
		g.Go(func() error {
			for range loops {
				w := SpinNewUniqueGuard(&counter, &b)
				*w.Ptr()++
				w.Release()
			}
			return nil
		})
		g.Go(func() error {
			for range loops {
				r := SpinNewSharedGuard(&counter, &b)
				if v := r.Value(); v < 0 || v > n*loops {
					r.Release()
					t.Errorf("reader observed counter=%d", v)
					return nil
				}
				r.Release()
			}
			return nil
		})
	}
	_ = g.Wait()

	require.Equal(t, n*loops, counter)
	require.Zero(t, b.Load())
}
