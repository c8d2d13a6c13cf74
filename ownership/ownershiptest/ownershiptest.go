// Package ownershiptest provides an instrumented foreign object and
// strategies for testing code built on package ownership.
package ownershiptest

import (
	"sync"
	"sync/atomic"
)

// Journal records strategy calls across objects in call order.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) add(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
}

// Entries returns a copy of the recorded calls, formatted "name:op".
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Object is a mock foreign resource with an integer refcount.
// It starts with one reference, like the result of a "_new" factory.
type Object struct {
	Journal *Journal
	Name    string
	Calls   []string

	Count    int
	Floating bool

	Refs      int
	Unrefs    int
	Sinks     int
	TakeRefs  int
	Teardowns int

	// Frees counts transitions to the destroyed state. Anything above one
	// is a double free.
	Frees int
}

// NewObject returns an owned object with refcount 1.
func NewObject(name string) *Object {
	return &Object{Name: name, Count: 1}
}

// NewFloating returns a floating object with refcount 1.
func NewFloating(name string) *Object {
	return &Object{Name: name, Count: 1, Floating: true}
}

// Freed reports whether the object has been destroyed.
func (o *Object) Freed() bool {
	return o.Frees > 0
}

func (o *Object) record(op string) {
	o.Calls = append(o.Calls, op)
	if o.Journal != nil {
		o.Journal.add(o.Name + ":" + op)
	}
}

func (o *Object) decref() {
	o.Count--
	if o.Count == 0 {
		o.Frees++
	}
}

var nullCalls atomic.Int64

// NullCalls returns how many strategy calls received a nil object since the
// last ResetNullCalls.
func NullCalls() int64 {
	return nullCalls.Load()
}

// ResetNullCalls zeroes the nil call counter.
func ResetNullCalls() {
	nullCalls.Store(0)
}

func isNil(o *Object) bool {
	if o == nil {
		nullCalls.Add(1)
		return true
	}
	return false
}

// Strategy records every call by name without applying floating or sink
// rules, so tests can observe exactly which function a Mode dispatches to.
type Strategy struct{}

func (Strategy) Ref(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.Refs++
	o.Count++
	o.record("ref")
	return o
}

func (Strategy) Unref(o *Object) {
	if isNil(o) {
		return
	}
	o.Unrefs++
	o.record("unref")
	o.decref()
}

func (Strategy) RefSink(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.Sinks++
	o.record("ref-sink")
	o.Floating = false
	return o
}

func (Strategy) TakeRef(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.TakeRefs++
	o.record("take-ref")
	return o
}

func (Strategy) IsFloating(o *Object) bool {
	if o == nil {
		return false
	}
	return o.Floating
}

// Ops supplies raw foreign calls for the canonical strategies. It satisfies
// ownership.Floater and ownership.Teardowner.
type Ops struct{}

func (Ops) Ref(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.Refs++
	o.Count++
	o.record("ref")
	return o
}

func (Ops) Unref(o *Object) {
	if isNil(o) {
		return
	}
	o.Unrefs++
	o.record("unref")
	o.decref()
}

func (Ops) Sink(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.Sinks++
	o.record("sink")
	o.Floating = false
	return o
}

func (Ops) IsFloating(o *Object) bool {
	if o == nil {
		return false
	}
	return o.Floating
}

func (Ops) Teardown(o *Object) {
	if isNil(o) {
		return
	}
	o.Teardowns++
	o.record("teardown")
	o.Count = 0
	o.Frees++
}

// IncrementingOps is Ops whose TakeRef takes a new reference, for bindings
// where take-ref means increment.
type IncrementingOps struct {
	Ops
}

func (IncrementingOps) TakeRef(o *Object) *Object {
	if isNil(o) {
		return o
	}
	o.TakeRefs++
	o.Count++
	o.record("take-ref")
	return o
}
