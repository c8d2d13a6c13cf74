package gobj

import (
	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

type arrayData struct {
	data     []byte
	elemSize int
}

// Array is a reference counted byte array of fixed-size elements.
type Array struct {
	ownership.Handle[Ptr, ArrayStrategy]
}

// NewArray creates an array owning the single reference the heap hands out.
func NewArray(heap *resource.Heap, elemSize int) (*Array, error) {
	if elemSize <= 0 {
		return nil, errors.InvalidInput(errors.PhaseAcquire, "element size must be positive")
	}
	id, err := heap.Create(TypeArray, &arrayData{elemSize: elemSize}, 0)
	if err != nil {
		return nil, err
	}
	return WrapArray(PtrOf(heap, id), ownership.ModeNone), nil
}

// WrapArray takes custody of p under mode.
func WrapArray(p Ptr, mode ownership.Mode) *Array {
	a := &Array{}
	a.Assign(p, mode)
	return a
}

// Ref returns a second owner of the same array.
func (a *Array) Ref() *Array {
	return WrapArray(a.Get(), ownership.ModeRef)
}

// Move transfers ownership to a new Array, leaving a empty.
func (a *Array) Move() *Array {
	n := &Array{}
	n.MoveFrom(&a.Handle)
	return n
}

func (a *Array) payload() (*arrayData, error) {
	p := a.Get()
	if p.IsNull() {
		return nil, errors.InvalidHandle(errors.PhaseLookup, 0)
	}
	if err := p.expect(TypeArray); err != nil {
		return nil, err
	}
	v, _ := p.heap.Get(p.id)
	d, ok := v.(*arrayData)
	if !ok {
		return nil, errors.AlreadyFreed(errors.PhaseLookup, uint64(p.id))
	}
	return d, nil
}

// Append adds one element. len(elem) must equal the element size.
func (a *Array) Append(elem []byte) error {
	d, err := a.payload()
	if err != nil {
		return err
	}
	if len(elem) != d.elemSize {
		return errors.InvalidInput(errors.PhaseRuntime, "element size mismatch")
	}
	d.data = append(d.data, elem...)
	return nil
}

// Len returns the number of elements.
func (a *Array) Len() int {
	d, err := a.payload()
	if err != nil {
		return 0
	}
	return len(d.data) / d.elemSize
}

// Index returns element i.
func (a *Array) Index(i int) ([]byte, error) {
	d, err := a.payload()
	if err != nil {
		return nil, err
	}
	if i < 0 || (i+1)*d.elemSize > len(d.data) {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "index out of range")
	}
	return d.data[i*d.elemSize : (i+1)*d.elemSize], nil
}
