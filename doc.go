// Package nativeref provides ownership wrappers for handles to objects that
// live outside the Go heap: reference-counted C objects, floating GLib-style
// objects, COM interfaces and resources that are destroyed rather than
// unreferenced.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	nativeref/
//	├── ownership/       Handle, Borrowed, Mode and the canonical strategies
//	│   └── ownershiptest/   Recording strategies and fake objects for tests
//	├── resource/        In-process object heap with refcounts, floating flags and events
//	├── errors/          Structured error types for debugging
//	├── binding/
//	│   ├── gobj/        GLib-style objects on a resource heap
//	│   ├── com/         COM IUnknown pointers
//	│   └── wasm/        wazero runtimes, compiled modules and instances
//	└── cmd/handlectl/   Script runner and interactive heap inspector
//
// # Quick Start
//
// Wrap a floating element, share it and release both owners:
//
//	heap := resource.NewHeap()
//	defer heap.Close()
//
//	elem, err := gobj.NewElement(heap, "src")
//	if err != nil {
//	    return err
//	}
//	defer elem.Release()
//
//	shared := elem.Ref()
//	defer shared.Release()
//
// # Strategies
//
// A strategy is a stateless type that knows how to take and drop a reference
// on one kind of handle. Four are provided:
//
//	Trivial            values that need no lifetime management
//	PlainRefcount      ref and unref
//	FloatingRefcount   ref, unref and ref-sink of a floating reference
//	AlternateTeardown  a destroy call in place of unref
//
// Bindings parameterize the generic strategies with small ops types that
// perform the foreign calls.
//
// # Acquisition Modes
//
// Every wrap names how the handle is acquired:
//
//	ModeNone     adopt the reference the caller already owns
//	ModeRef      take a new reference
//	ModeRefSink  claim a floating reference, or pass through
//	ModeTakeRef  adopt per the strategy's transfer rule
//
// # Logging
//
// Packages log through zap. Each package exposes SetLogger; the default is a
// no-op logger. Acquire and release are traced at debug level.
//
// # Error Handling
//
// Failures reported by the heap and the bindings are *errors.Error values
// that carry a phase and a kind. Use errors.Is with the sentinels in the
// errors package.
package nativeref
