package gobj

import (
	"sync"

	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

// MainContext is a reference counted event-loop context.
type MainContext struct {
	ownership.Handle[Ptr, ContextStrategy]
}

// NewMainContext creates a context owning the single reference the heap
// hands out.
func NewMainContext(heap *resource.Heap) (*MainContext, error) {
	id, err := heap.Create(TypeMainContext, nil, 0)
	if err != nil {
		return nil, err
	}
	c := &MainContext{}
	c.Assign(PtrOf(heap, id), ownership.ModeNone)
	return c, nil
}

var (
	defaultCtx     Ptr
	defaultCtxOnce sync.Once
)

// DefaultContext returns the process-wide context on resource.Default().
// The accessor grants no reference, so the result is a heap-registered
// view; call Own on it to keep the context beyond the caller's scope, and
// Release the view when done.
func DefaultContext() (*View[ContextStrategy], error) {
	defaultCtxOnce.Do(func() {
		heap := resource.Default()
		id, err := heap.Create(TypeMainContext, nil, 0)
		if err != nil {
			return
		}
		defaultCtx = PtrOf(heap, id)
	})
	if defaultCtx.IsNull() {
		return nil, errors.Closed(errors.PhaseLookup, "default heap")
	}
	return Borrow[ContextStrategy](defaultCtx)
}
