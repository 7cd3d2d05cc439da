//go:build !borrow_cachelinesize_32 && !borrow_cachelinesize_64 && !borrow_cachelinesize_128 && !borrow_cachelinesize_256

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used to pad borrow words that sit next to each other
// in memory. It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
