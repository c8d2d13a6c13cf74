package ownership

// Strategy is the per-type lifetime policy of a foreign handle.
//
// Implementations must be stateless: Handle only ever calls methods on the
// zero value of the strategy type. The null handle is the zero value of H,
// and every operation on it must be a no-op.
type Strategy[H comparable] interface {
	// Ref takes an additional reference and returns the handle.
	Ref(h H) H

	// Unref drops one reference, possibly destroying the resource.
	Unref(h H)

	// RefSink claims a floating handle. A handle that is not floating is
	// returned unchanged.
	RefSink(h H) H

	// TakeRef adopts a handle the caller already controls.
	TakeRef(h H) H

	// IsFloating reports whether h is unclaimed.
	IsFloating(h H) bool
}

// Refcounter supplies the raw increment and decrement of a refcounted type.
type Refcounter[H comparable] interface {
	Ref(h H) H
	Unref(h H)
}

// Floater supplies the raw calls of a floating-reference type.
type Floater[H comparable] interface {
	Refcounter[H]

	// Sink clears the floating flag without adding a reference.
	Sink(h H) H

	IsFloating(h H) bool
}

// TakeRefer is optionally implemented by Floater ops that define their own
// TakeRef. Without it, FloatingRefcount.TakeRef adopts without incrementing.
type TakeRefer[H comparable] interface {
	TakeRef(h H) H
}

// Teardowner supplies the release call of a resource whose teardown is not a
// refcount decrement.
type Teardowner[H comparable] interface {
	Teardown(h H)
}

func isNull[H comparable](h H) bool {
	var zero H
	return h == zero
}
