package ownership

import "fmt"

// noCopy lets go vet's copylocks check flag copies of a Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle owns zero or one foreign handle of type H whose lifetime is managed
// by strategy S.
//
// The zero value is Empty. An Owning handle holds exactly one release
// obligation, discharged by Release. Ownership is linear: a Handle must not
// be copied, only moved with Move or MoveFrom. Sharing takes a new reference
// with Clone.
//
// A Handle is not safe for concurrent mutation. Moving it to another
// goroutine before further use needs no synchronization.
type Handle[H comparable, S Strategy[H]] struct {
	_ noCopy
	h H
}

// New takes custody of h according to mode. A null h yields an Empty handle
// regardless of mode.
func New[H comparable, S Strategy[H]](h H, mode Mode) *Handle[H, S] {
	o := &Handle[H, S]{}
	o.acquire(h, mode)
	return o
}

func (o *Handle[H, S]) acquire(h H, mode Mode) {
	if isNull(h) {
		o.h = h
		return
	}

	var s S
	switch mode {
	case ModeRef:
		h = s.Ref(h)
	case ModeRefSink:
		h = s.RefSink(h)
	case ModeTakeRef:
		h = s.TakeRef(h)
	}
	o.h = h
	trace("ownership: acquire", h, mode)
}

func (o *Handle[H, S]) release() {
	if isNull(o.h) {
		return
	}
	h := o.h
	var zero H
	o.h = zero

	var s S
	s.Unref(h)
	trace("ownership: release", h, ModeNone)
}

// Get returns the held handle, or the null handle when Empty.
func (o *Handle[H, S]) Get() H {
	return o.h
}

// Valid reports whether the handle is Owning.
func (o *Handle[H, S]) Valid() bool {
	return !isNull(o.h)
}

// IsFloating reports whether the held handle is still unclaimed.
func (o *Handle[H, S]) IsFloating() bool {
	var s S
	return s.IsFloating(o.h)
}

// Assign replaces the held handle. Assigning the handle already held is a
// no-op. Otherwise the old handle is released before h is acquired.
func (o *Handle[H, S]) Assign(h H, mode Mode) {
	if o.h == h {
		return
	}
	o.release()
	o.acquire(h, mode)
}

// Detach gives up the release obligation and returns the held handle.
// The handle becomes Empty; the caller is now responsible for the reference.
func (o *Handle[H, S]) Detach() H {
	h := o.h
	var zero H
	o.h = zero
	if !isNull(h) {
		trace("ownership: detach", h, ModeNone)
	}
	return h
}

// Move transfers the held handle to a new Handle. The receiver becomes
// Empty. No strategy call is made.
func (o *Handle[H, S]) Move() *Handle[H, S] {
	n := &Handle[H, S]{}
	n.h = o.Detach()
	return n
}

// MoveFrom releases whatever the receiver holds and steals other's handle.
// other becomes Empty. Moving a handle onto itself does nothing.
func (o *Handle[H, S]) MoveFrom(other *Handle[H, S]) {
	if o == other {
		return
	}
	o.release()
	o.h = other.Detach()
}

// Clone returns an independent Handle to the same resource, acquired with
// ModeRef. Cloning an Empty handle yields an Empty handle.
func (o *Handle[H, S]) Clone() *Handle[H, S] {
	return New[H, S](o.h, ModeRef)
}

// Borrow returns a non-owning view of the held handle.
func (o *Handle[H, S]) Borrow() *Borrowed[H, S] {
	return Borrow[H, S](o.h)
}

// Release discharges the release obligation. Releasing an Empty handle does
// nothing, so Release may be deferred and also called early.
func (o *Handle[H, S]) Release() {
	o.release()
}

// Close releases the handle. It always returns nil.
func (o *Handle[H, S]) Close() error {
	o.release()
	return nil
}

func (o *Handle[H, S]) String() string {
	if isNull(o.h) {
		return "<empty>"
	}
	return fmt.Sprintf("%v", o.h)
}
