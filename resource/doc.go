// Package resource provides an in-memory foreign object heap.
//
// The heap stands in for a native library's object store. It implements the
// lifetime conventions that package ownership wraps, so bindings and tests
// have a real foreign side to talk to:
//
//	h := resource.NewHeap()
//
//	// Created with one reference, like a "_new" factory
//	arr, _ := h.Create(TypeArray, nil, 0)
//
//	// Created floating, owned by nobody until sunk
//	elem, _ := h.Create(TypeElement, nil, resource.FlagFloating)
//	h.Sink(elem)
//
//	h.Ref(arr)
//	h.Unref(arr)          // (false, nil)
//	h.Unref(arr)          // (true, nil): destroyed
//	h.Teardown(elem)      // destroyed regardless of count
//
// # Errors
//
// Operations on handle 0, on handles never issued, or on destroyed objects
// return a structured error from package errors. Match them with the
// sentinels:
//
//	if errors.Is(err, nrerrors.ErrAlreadyFreed) { ... }
//
// Freed slots are reused by default; WithoutReuse retires them so that a
// stale handle keeps reporting ErrAlreadyFreed.
//
// # Borrows
//
// Borrow and ReturnBorrow track outstanding borrows. The final Unref and any
// Teardown fail with ErrOutstandingBorrow while a borrow is active.
//
// # Observers
//
// Subscribe to lifecycle events:
//
//	cancel := h.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %d refs=%d", e.Type, e.Handle, e.Refs)
//	}))
//	defer cancel()
//
// Values implementing Dropper have Drop called once when their object is
// destroyed, whether by the final Unref, Teardown or Close.
package resource
