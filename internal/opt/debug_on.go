//go:build !borrow_nodebug

package opt

// Debug_ enables the release-mismatch assertions: releasing a borrow that
// is not held, releasing the wrong kind, or releasing a guard twice.
// Disable with: go build -tags=borrow_nodebug
const Debug_ = true
