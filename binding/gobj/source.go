package gobj

import (
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

// Source is an event source. Releasing it destroys the source outright,
// whatever references other parties still hold.
type Source struct {
	ownership.Handle[Ptr, SourceStrategy]
}

// NewSource creates a source on heap.
func NewSource(heap *resource.Heap, fn func()) (*Source, error) {
	id, err := heap.Create(TypeSource, fn, 0)
	if err != nil {
		return nil, err
	}
	s := &Source{}
	s.Assign(PtrOf(heap, id), ownership.ModeNone)
	return s, nil
}

// Dispatch runs the source's callback. It reports false once the source is
// destroyed.
func (s *Source) Dispatch() bool {
	p := s.Get()
	if p.IsNull() {
		return false
	}
	v, ok := p.heap.Get(p.id)
	if !ok {
		return false
	}
	if fn, ok := v.(func()); ok && fn != nil {
		fn()
	}
	return true
}

// Destroy tears the source down. It is Release under its GLib name.
func (s *Source) Destroy() {
	s.Release()
}
