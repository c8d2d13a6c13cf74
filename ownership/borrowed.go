package ownership

// Borrowed presents a handle obtained from a non-owning accessor, such as a
// "default instance" getter, through the same shape as an owned Handle.
//
// A Borrowed never calls Strategy.Unref. Release detaches instead of
// releasing, and Reset re-points the borrow without touching the old value.
type Borrowed[H comparable, S Strategy[H]] struct {
	inner Handle[H, S]
}

// Borrow wraps h without any strategy call.
func Borrow[H comparable, S Strategy[H]](h H) *Borrowed[H, S] {
	b := &Borrowed[H, S]{}
	b.inner.acquire(h, ModeNone)
	return b
}

func (b *Borrowed[H, S]) Get() H {
	return b.inner.Get()
}

func (b *Borrowed[H, S]) Valid() bool {
	return b.inner.Valid()
}

func (b *Borrowed[H, S]) IsFloating() bool {
	return b.inner.IsFloating()
}

// Reset points the borrow at h. The previous value is dropped from view
// without a release.
func (b *Borrowed[H, S]) Reset(h H) {
	b.inner.Detach()
	b.inner.acquire(h, ModeNone)
}

// Detach returns the viewed handle and empties the borrow.
func (b *Borrowed[H, S]) Detach() H {
	return b.inner.Detach()
}

// Own returns an owning Handle to the borrowed resource, acquired with
// ModeRef. The borrow stays valid.
func (b *Borrowed[H, S]) Own() *Handle[H, S] {
	return New[H, S](b.inner.Get(), ModeRef)
}

// Release ends the borrow. The underlying resource is not touched.
func (b *Borrowed[H, S]) Release() {
	b.inner.Detach()
}

// Close ends the borrow. It always returns nil.
func (b *Borrowed[H, S]) Close() error {
	b.Release()
	return nil
}

func (b *Borrowed[H, S]) String() string {
	return "borrowed " + b.inner.String()
}
