// Package com binds COM-style objects: reference counted through
// IUnknown::AddRef and IUnknown::Release.
//
// Ptr is the owning smart pointer. Attach adopts a pointer returned by a
// creating call (which already carries a reference); Share takes a new one.
//
//	dev := com.Attach(created)    // no AddRef
//	defer dev.Release()           // one Release
//
//	alias := dev.Clone()          // AddRef
package com

import (
	"github.com/wippyai/nativeref/ownership"
)

// Unknown is the reference counting half of IUnknown. Both calls return the
// new count, which is informational only.
type Unknown interface {
	AddRef() uint32
	Release() uint32
}

// Interface constrains the pointer types Ptr can hold.
type Interface interface {
	comparable
	Unknown
}

type unknownOps[T Interface] struct{}

func (unknownOps[T]) Ref(t T) T {
	t.AddRef()
	return t
}

func (unknownOps[T]) Unref(t T) {
	t.Release()
}

// Strategy manages a COM pointer through AddRef and Release.
type Strategy[T Interface] = ownership.PlainRefcount[T, unknownOps[T]]

// Ptr owns one reference to a COM object.
type Ptr[T Interface] struct {
	ownership.Handle[T, Strategy[T]]
}

// Attach adopts t, which must already carry a reference for the caller.
func Attach[T Interface](t T) *Ptr[T] {
	p := &Ptr[T]{}
	p.Assign(t, ownership.ModeNone)
	return p
}

// Share takes a new reference on t.
func Share[T Interface](t T) *Ptr[T] {
	p := &Ptr[T]{}
	p.Assign(t, ownership.ModeRef)
	return p
}

// Clone returns a second owner of the same object.
func (p *Ptr[T]) Clone() *Ptr[T] {
	return Share(p.Get())
}

// Move transfers ownership to a new Ptr, leaving p empty.
func (p *Ptr[T]) Move() *Ptr[T] {
	n := &Ptr[T]{}
	n.MoveFrom(&p.Handle)
	return n
}

// Out prepares p to receive a pointer from a creating call. The current
// object is released and the returned slot is filled by the callee with a
// pointer that already carries a reference. A pointer written by a callee
// that then fails is released, so it does not leak.
func (p *Ptr[T]) Out(fill func(*T) error) error {
	var t, zero T
	if err := fill(&t); err != nil {
		if t != zero {
			t.Release()
		}
		p.Release()
		return err
	}
	p.Assign(t, ownership.ModeNone)
	return nil
}
