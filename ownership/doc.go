// Package ownership provides a uniform owning wrapper over foreign handles.
//
// Native libraries hand out resources under different lifetime conventions.
// Each convention is captured by a stateless Strategy:
//
//	Trivial            - no lifetime management at all
//	PlainRefcount      - ref/unref, including COM AddRef/Release
//	FloatingRefcount   - created floating, claimed once with RefSink
//	AlternateTeardown  - released by an explicit destroy call, not a count
//
// # Acquisition
//
// A Handle takes custody of a raw value under a Mode chosen from the
// producing call's contract:
//
//	arr := ownership.New[*C.GArray, arrayStrategy](C.g_array_new(...), ownership.ModeNone)
//	defer arr.Release()
//
//	shared := arr.Clone()            // ModeRef
//	elem := ownership.New[*C.GstElement, elemStrategy](p, ownership.ModeRefSink)
//
// ModeNone stores the value untouched. ModeRef, ModeRefSink and ModeTakeRef
// call the matching Strategy function first.
//
// # Transfer
//
// Handles are linear. Move and MoveFrom transfer the obligation without any
// strategy call; Detach hands it back to the caller. Assign releases the old
// value before acquiring the new one.
//
// # Borrowing
//
// Accessors that grant no reference produce a Borrowed. Releasing a Borrowed
// detaches it, so Strategy.Unref is never reached through a borrow.
//
// Every release path checks for the null handle first: a moved-from,
// detached or never-filled Handle never reaches the foreign release call.
package ownership
