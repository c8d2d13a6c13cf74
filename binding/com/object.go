package com

import "sync/atomic"

// Object is a pure Go COM-style object with an atomic reference count.
// It starts with one reference, as if returned by a creating call.
type Object struct {
	final func()
	refs  atomic.Int32
	freed atomic.Int32
}

// NewObject returns an object whose final Release runs final.
func NewObject(final func()) *Object {
	o := &Object{final: final}
	o.refs.Store(1)
	return o
}

func (o *Object) AddRef() uint32 {
	return uint32(o.refs.Add(1))
}

func (o *Object) Release() uint32 {
	n := o.refs.Add(-1)
	if n == 0 {
		o.freed.Add(1)
		if o.final != nil {
			o.final()
		}
	}
	if n < 0 {
		return 0
	}
	return uint32(n)
}

// Refs returns the current reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// Frees returns how many times the count reached zero.
func (o *Object) Frees() int32 {
	return o.freed.Load()
}
