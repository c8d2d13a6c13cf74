package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which lifetime operation produced the error
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // ref, sink, take
	PhaseRelease  Phase = "release"  // unref
	PhaseLookup   Phase = "lookup"   // handle resolution
	PhaseTeardown Phase = "teardown" // explicit destroy
	PhaseBorrow   Phase = "borrow"   // borrow tracking
	PhaseLoad     Phase = "load"     // module loading
	PhaseRuntime  Phase = "runtime"  // runtime operations
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle     Kind = "invalid_handle"
	KindAlreadyFreed      Kind = "already_freed"
	KindOutstandingBorrow Kind = "outstanding_borrow"
	KindClosed            Kind = "closed"
	KindNotFloating       Kind = "not_floating"
	KindTypeMismatch      Kind = "type_mismatch"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInstantiation     Kind = "instantiation"
	KindCallFailed        Kind = "call_failed"
)

// Error is the structured error type used by the foreign-side packages.
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Handle   uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Handle != 0 {
		b.WriteString(" handle ")
		b.WriteString(strconv.FormatUint(e.Handle, 10))
	}

	if e.TypeName != "" {
		b.WriteString(" (")
		b.WriteString(e.TypeName)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Handle sets the offending handle
func (b *Builder) Handle(h uint64) *Builder {
	b.err.Handle = h
	return b
}

// TypeName sets the resource type name
func (b *Builder) TypeName(name string) *Builder {
	b.err.TypeName = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is matching regardless of phase.
var (
	ErrInvalidHandle     = &Error{Kind: KindInvalidHandle}
	ErrAlreadyFreed      = &Error{Kind: KindAlreadyFreed}
	ErrOutstandingBorrow = &Error{Kind: KindOutstandingBorrow}
	ErrClosed            = &Error{Kind: KindClosed}
	ErrNotFloating       = &Error{Kind: KindNotFloating}
	ErrTypeMismatch      = &Error{Kind: KindTypeMismatch}
)

// InvalidHandle creates an error for a handle that was never issued
func InvalidHandle(phase Phase, h uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Handle: h,
	}
}

// AlreadyFreed creates an error for a handle whose resource is gone
func AlreadyFreed(phase Phase, h uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyFreed,
		Handle: h,
	}
}

// OutstandingBorrow creates an error for destroying a borrowed resource
func OutstandingBorrow(phase Phase, h uint64, borrows uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutstandingBorrow,
		Handle: h,
		Detail: fmt.Sprintf("%d active borrows", borrows),
		Value:  borrows,
	}
}

// Closed creates an error for operations on a closed store
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: what + " closed",
	}
}

// NotFloating creates an error for sinking an already claimed handle
func NotFloating(h uint64) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindNotFloating,
		Handle: h,
	}
}

// TypeMismatch creates an error for a handle of an unexpected type
func TypeMismatch(phase Phase, h uint64, want, got string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Handle:   h,
		TypeName: got,
		Detail:   fmt.Sprintf("expected %s", want),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
