//go:build borrow_nodebug

package opt

const Debug_ = false
