package gobj

import (
	"sync"

	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

type elementData struct {
	name string
}

// Element is a floating object: it is created with one reference owned by
// nobody and claimed by the first owner through ref-sink.
type Element struct {
	ownership.Handle[Ptr, ElementStrategy]
}

// NewElement creates a floating element and sinks it into the returned
// wrapper.
func NewElement(heap *resource.Heap, name string) (*Element, error) {
	id, err := heap.Create(TypeElement, &elementData{name: name}, resource.FlagFloating)
	if err != nil {
		return nil, err
	}
	return WrapElement(PtrOf(heap, id), ownership.ModeRefSink), nil
}

// NewFloatingElement creates an element and returns its raw floating
// pointer, as a factory call would.
func NewFloatingElement(heap *resource.Heap, name string) (Ptr, error) {
	id, err := heap.Create(TypeElement, &elementData{name: name}, resource.FlagFloating)
	if err != nil {
		return Ptr{}, err
	}
	return PtrOf(heap, id), nil
}

// WrapElement takes custody of p under mode. ModeTakeRef adopts the
// existing reference without incrementing.
func WrapElement(p Ptr, mode ownership.Mode) *Element {
	e := &Element{}
	e.Assign(p, mode)
	return e
}

// Ref returns a second owner of the same element.
func (e *Element) Ref() *Element {
	return WrapElement(e.Get(), ownership.ModeRef)
}

// Name returns the element's name, or "" once it is gone.
func (e *Element) Name() string {
	return nameOf(e.Get())
}

func nameOf(p Ptr) string {
	if p.IsNull() {
		return ""
	}
	v, ok := p.heap.Get(p.id)
	if !ok {
		return ""
	}
	switch d := v.(type) {
	case *elementData:
		return d.name
	case *binData:
		return d.name
	}
	return ""
}

type binData struct {
	name     string
	children []*Element
	mu       sync.Mutex
}

// Drop releases the bin's references to its children when the bin itself
// is destroyed.
func (d *binData) Drop() {
	d.mu.Lock()
	children := d.children
	d.children = nil
	d.mu.Unlock()

	for _, c := range children {
		c.Release()
	}
}

// Bin is a floating container of elements. Unlike Element, its take-ref
// increments.
type Bin struct {
	ownership.Handle[Ptr, BinStrategy]
}

// NewBin creates a floating bin and sinks it into the returned wrapper.
func NewBin(heap *resource.Heap, name string) (*Bin, error) {
	id, err := heap.Create(TypeBin, &binData{name: name}, resource.FlagFloating)
	if err != nil {
		return nil, err
	}
	return WrapBin(PtrOf(heap, id), ownership.ModeRefSink), nil
}

// WrapBin takes custody of p under mode. ModeTakeRef adds a reference.
func WrapBin(p Ptr, mode ownership.Mode) *Bin {
	b := &Bin{}
	b.Assign(p, mode)
	return b
}

// Name returns the bin's name.
func (b *Bin) Name() string {
	return nameOf(b.Get())
}

func (b *Bin) data() (*binData, error) {
	p := b.Get()
	if p.IsNull() {
		return nil, errors.InvalidHandle(errors.PhaseLookup, 0)
	}
	if err := p.expect(TypeBin); err != nil {
		return nil, err
	}
	v, _ := p.heap.Get(p.id)
	d, ok := v.(*binData)
	if !ok {
		return nil, errors.AlreadyFreed(errors.PhaseLookup, uint64(p.id))
	}
	return d, nil
}

// Add makes the bin an owner of e. An element that is already owned gets an
// extra reference. A floating element's reference is claimed by the bin and
// e is left empty.
func (b *Bin) Add(e *Element) error {
	d, err := b.data()
	if err != nil {
		return err
	}
	p := e.Get()
	if p.IsNull() {
		return errors.InvalidInput(errors.PhaseAcquire, "add empty element")
	}

	mode := ownership.ModeRef
	if e.IsFloating() {
		mode = ownership.ModeRefSink
		e.Detach()
	}
	child := WrapElement(p, mode)

	d.mu.Lock()
	d.children = append(d.children, child)
	d.mu.Unlock()
	return nil
}

// Children returns heap-registered views of the bin's elements. While a
// view is live, destroying the bin leaves that child alive; release the
// views first.
func (b *Bin) Children() []*View[ElementStrategy] {
	d, err := b.data()
	if err != nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*View[ElementStrategy], 0, len(d.children))
	for _, c := range d.children {
		v, err := Borrow[ElementStrategy](c.Get())
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
