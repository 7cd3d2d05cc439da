//go:build borrow_cachelinesize_64

package opt

// CacheLineSize_ is forced to 64 bytes.
// Use: go build -tags=borrow_cachelinesize_64
const CacheLineSize_ = 64
