package ownership

// Trivial performs no lifetime management. It gives value-like or
// externally managed handles the same shape as owned ones.
type Trivial[H comparable] struct{}

func (Trivial[H]) Ref(h H) H         { return h }
func (Trivial[H]) Unref(H)           {}
func (Trivial[H]) RefSink(h H) H     { return h }
func (Trivial[H]) TakeRef(h H) H     { return h }
func (Trivial[H]) IsFloating(H) bool { return false }

// PlainRefcount manages a plain reference count through O.
// RefSink and TakeRef both degenerate to Ref.
type PlainRefcount[H comparable, O Refcounter[H]] struct{}

func (PlainRefcount[H, O]) Ref(h H) H {
	if isNull(h) {
		return h
	}
	var o O
	return o.Ref(h)
}

func (PlainRefcount[H, O]) Unref(h H) {
	if isNull(h) {
		return
	}
	var o O
	o.Unref(h)
}

func (s PlainRefcount[H, O]) RefSink(h H) H { return s.Ref(h) }

func (s PlainRefcount[H, O]) TakeRef(h H) H { return s.Ref(h) }

func (PlainRefcount[H, O]) IsFloating(H) bool { return false }

// FloatingRefcount manages objects that are created floating: alive with one
// reference that nobody owns until it is sunk. After sinking, Ref and Unref
// behave as in PlainRefcount.
type FloatingRefcount[H comparable, O Floater[H]] struct{}

func (FloatingRefcount[H, O]) Ref(h H) H {
	if isNull(h) {
		return h
	}
	var o O
	return o.Ref(h)
}

func (FloatingRefcount[H, O]) Unref(h H) {
	if isNull(h) {
		return
	}
	var o O
	o.Unref(h)
}

// RefSink claims h when it is floating. A second call sees a non-floating
// handle and does nothing.
func (FloatingRefcount[H, O]) RefSink(h H) H {
	if isNull(h) {
		return h
	}
	var o O
	if !o.IsFloating(h) {
		return h
	}
	return o.Sink(h)
}

// TakeRef defers to O when it implements TakeRefer. Otherwise the existing
// reference is adopted: a floating handle is sunk, anything else passes
// through without an increment.
func (s FloatingRefcount[H, O]) TakeRef(h H) H {
	if isNull(h) {
		return h
	}
	var o O
	if t, ok := any(o).(TakeRefer[H]); ok {
		return t.TakeRef(h)
	}
	return s.RefSink(h)
}

func (FloatingRefcount[H, O]) IsFloating(h H) bool {
	if isNull(h) {
		return false
	}
	var o O
	return o.IsFloating(h)
}

// AlternateTeardown manages resources without a reference count. Unref runs
// O.Teardown, which destroys the resource unconditionally. The acquisition
// calls pass the handle through.
type AlternateTeardown[H comparable, O Teardowner[H]] struct{}

func (AlternateTeardown[H, O]) Ref(h H) H     { return h }
func (AlternateTeardown[H, O]) RefSink(h H) H { return h }
func (AlternateTeardown[H, O]) TakeRef(h H) H { return h }

func (AlternateTeardown[H, O]) Unref(h H) {
	if isNull(h) {
		return
	}
	var o O
	o.Teardown(h)
}

func (AlternateTeardown[H, O]) IsFloating(H) bool { return false }
