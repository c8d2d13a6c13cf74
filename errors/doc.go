// Package errors provides structured error types for the foreign-side
// packages of nativeref.
//
// The ownership core never fails. Errors come from the places that talk to
// a foreign library: the resource heap and the bindings. Each error carries
// the Phase (which lifetime operation) and Kind (what went wrong), plus the
// offending handle where there is one.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelease, errors.KindAlreadyFreed).
//		Handle(7).
//		TypeName("gobj.Array").
//		Detail("unref after final release").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AlreadyFreed(errors.PhaseRelease, 7)
//	err := errors.OutstandingBorrow(errors.PhaseTeardown, 7, 2)
//
// The Err* sentinels match on Kind alone:
//
//	if errors.Is(err, nrerrors.ErrAlreadyFreed) { ... }
package errors
