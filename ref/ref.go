package ref

import (
	"fmt"
	"sync/atomic"
)

// Object is a heap object that embeds its own reference count and knows how
// to tear itself down. The count must never be touched directly by users;
// all manipulation goes through Ref.
type Object interface {
	// RefCount returns the embedded count. It starts at zero on a freshly
	// constructed object and is owned by the handles thereafter.
	RefCount() *atomic.Int32

	// Destroy releases the resources the object owns. Called exactly once,
	// by the handle that observes the count reach zero.
	Destroy()
}

// Ref is a shared-ownership handle to an Object. The zero value is the empty
// handle.
type Ref[T Object] struct {
	obj T
	ok  bool
}

// New wraps a freshly constructed object and increments its count to one.
// The object must not be referenced by any other handle yet; a negative
// embedded count indicates a construction bug and panics.
func New[T Object](obj T) Ref[T] {
	n := obj.RefCount().Add(1)
	if n <= 0 {
		panic(fmt.Sprintf("ref: expected non-negative refcount to start, got %d", n-1))
	}
	return Ref[T]{obj: obj, ok: true}
}

// Clone returns a new handle to the same object, incrementing the count.
// Cloning an empty handle yields an empty handle.
func (r Ref[T]) Clone() Ref[T] {
	if !r.ok {
		return Ref[T]{}
	}
	r.obj.RefCount().Add(1)
	return Ref[T]{obj: r.obj, ok: true}
}

// Take moves ownership out of r, leaving it empty. The count is unchanged.
func (r *Ref[T]) Take() Ref[T] {
	out := *r
	var zero T
	r.obj = zero
	r.ok = false
	return out
}

// Release drops this handle's ownership and empties it. If the decrement
// observes the count transitioning to zero, the object is destroyed. The
// decrement and the zero test are one atomic operation, so concurrent
// releases from independent handles never double-destroy.
func (r *Ref[T]) Release() {
	if !r.ok {
		return
	}
	if r.obj.RefCount().Add(-1) == 0 {
		r.obj.Destroy()
	}
	var zero T
	r.obj = zero
	r.ok = false
}

// Get returns the underlying object. The handle must be non-empty;
// dereferencing an empty handle is the documented undefined case and returns
// the zero T.
func (r Ref[T]) Get() T {
	return r.obj
}

// Empty reports whether the handle owns nothing.
func (r Ref[T]) Empty() bool {
	return !r.ok
}

// Count returns the current reference count, for tests and debugging. The
// value is immediately stale under concurrent handle activity.
func (r Ref[T]) Count() int32 {
	if !r.ok {
		return 0
	}
	return r.obj.RefCount().Load()
}
