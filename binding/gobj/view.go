package gobj

import (
	"github.com/wippyai/nativeref/ownership"
)

// View is a borrow that the heap knows about. While a View is live, the
// object's final Unref and any Teardown fail with ErrOutstandingBorrow, so
// the view never points at a destroyed object.
type View[S ownership.Strategy[Ptr]] struct {
	*ownership.Borrowed[Ptr, S]
	held Ptr
}

// Borrow registers a borrow of p on its heap and returns a view of it.
// A null p yields an empty view.
func Borrow[S ownership.Strategy[Ptr]](p Ptr) (*View[S], error) {
	if !p.IsNull() {
		if err := p.heap.Borrow(p.id); err != nil {
			return nil, err
		}
	}
	return &View[S]{Borrowed: ownership.Borrow[Ptr, S](p), held: p}, nil
}

// Reset moves the view to p. The old borrow is returned only once the new
// one is registered.
func (v *View[S]) Reset(p Ptr) error {
	if !p.IsNull() {
		if err := p.heap.Borrow(p.id); err != nil {
			return err
		}
	}
	v.giveBack()
	v.Borrowed.Reset(p)
	v.held = p
	return nil
}

// Detach ends the view and returns the viewed pointer.
func (v *View[S]) Detach() Ptr {
	p := v.Borrowed.Detach()
	v.giveBack()
	return p
}

// Release ends the view and returns the borrow to the heap. The object's
// reference count is not touched.
func (v *View[S]) Release() {
	v.Borrowed.Release()
	v.giveBack()
}

// Close ends the view. It always returns nil.
func (v *View[S]) Close() error {
	v.Release()
	return nil
}

func (v *View[S]) giveBack() {
	if v.held.IsNull() {
		return
	}
	_ = v.held.heap.ReturnBorrow(v.held.id)
	v.held = Ptr{}
}
