package gobj

import (
	"strconv"

	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

// Type IDs of the objects this package places on a heap.
const (
	TypeArray uint32 = iota + 1
	TypeElement
	TypeBin
	TypeMainContext
	TypeSource
)

// Ptr addresses an object on a foreign heap. The zero Ptr is null.
type Ptr struct {
	heap *resource.Heap
	id   resource.Handle
}

// PtrOf returns the Ptr for id on heap.
func PtrOf(heap *resource.Heap, id resource.Handle) Ptr {
	if heap == nil || id == 0 {
		return Ptr{}
	}
	return Ptr{heap: heap, id: id}
}

func (p Ptr) Heap() *resource.Heap { return p.heap }
func (p Ptr) ID() resource.Handle  { return p.id }
func (p Ptr) IsNull() bool         { return p.id == 0 }

func (p Ptr) String() string {
	if p.id == 0 {
		return "(null)"
	}
	return "obj#" + strconv.FormatUint(uint64(p.id), 10)
}

// RefCount returns the object's current reference count, or 0 once it is
// gone.
func (p Ptr) RefCount() int32 {
	if p.id == 0 {
		return 0
	}
	n, _ := p.heap.RefCount(p.id)
	return n
}

// TypeName returns the name of a type ID, or "object" for IDs this package
// does not define.
func TypeName(typeID uint32) string {
	switch typeID {
	case TypeArray:
		return "array"
	case TypeElement:
		return "element"
	case TypeBin:
		return "bin"
	case TypeMainContext:
		return "main-context"
	case TypeSource:
		return "source"
	}
	return "object"
}

// expect checks that p is live and has type want.
func (p Ptr) expect(want uint32) error {
	got, ok := p.heap.TypeID(p.id)
	if !ok {
		return errors.AlreadyFreed(errors.PhaseLookup, uint64(p.id))
	}
	if got != want {
		return errors.TypeMismatch(errors.PhaseLookup, uint64(p.id), TypeName(want), TypeName(got))
	}
	return nil
}

// Heap failures are logged by the heap itself; the strategy contract has no
// error channel.

type refOps struct{}

func (refOps) Ref(p Ptr) Ptr {
	_ = p.heap.Ref(p.id)
	return p
}

func (refOps) Unref(p Ptr) {
	_, _ = p.heap.Unref(p.id)
}

type floatOps struct {
	refOps
}

func (floatOps) Sink(p Ptr) Ptr {
	_ = p.heap.Sink(p.id)
	return p
}

func (floatOps) IsFloating(p Ptr) bool {
	return p.heap.IsFloating(p.id)
}

// binOps increments on take-ref, matching gst_object_ref semantics for bins
// handed across API boundaries.
type binOps struct {
	floatOps
}

func (binOps) TakeRef(p Ptr) Ptr {
	_ = p.heap.Ref(p.id)
	return p
}

type teardownOps struct{}

func (teardownOps) Teardown(p Ptr) {
	_ = p.heap.Teardown(p.id)
}

// Strategies used by the wrappers in this package.
type (
	ArrayStrategy   = ownership.PlainRefcount[Ptr, refOps]
	ElementStrategy = ownership.FloatingRefcount[Ptr, floatOps]
	BinStrategy     = ownership.FloatingRefcount[Ptr, binOps]
	ContextStrategy = ownership.PlainRefcount[Ptr, refOps]
	SourceStrategy  = ownership.AlternateTeardown[Ptr, teardownOps]
)
