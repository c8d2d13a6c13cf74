package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/ownership/ownershiptest"
)

type (
	recHandle   = ownership.Handle[*obj, recording]
	plainHandle = ownership.Handle[*obj, plain]
	floatHandle = ownership.Handle[*obj, floating]
)

func TestNew_ModeDispatch(t *testing.T) {
	tests := []struct {
		mode  ownership.Mode
		calls []string
	}{
		{ownership.ModeNone, nil},
		{ownership.ModeRef, []string{"ref"}},
		{ownership.ModeRefSink, []string{"ref-sink"}},
		{ownership.ModeTakeRef, []string{"take-ref"}},
		{ownership.Mode(42), nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			o := ownershiptest.NewObject("h")

			h := ownership.New[*obj, recording](o, tt.mode)
			require.True(t, h.Valid())
			assert.Equal(t, tt.calls, o.Calls)

			got := h.Detach()
			assert.Same(t, o, got)
			assert.False(t, h.Valid())
			assert.Zero(t, o.Unrefs, "Detach must not release")
			assert.Equal(t, tt.calls, o.Calls)
		})
	}
}

func TestNew_NullIsEmpty(t *testing.T) {
	ownershiptest.ResetNullCalls()

	for _, mode := range []ownership.Mode{ownership.ModeNone, ownership.ModeRef, ownership.ModeRefSink, ownership.ModeTakeRef} {
		h := ownership.New[*obj, recording](nil, mode)
		assert.False(t, h.Valid())
		assert.Nil(t, h.Get())
		h.Release()
		assert.Nil(t, h.Detach())
	}

	assert.Zero(t, ownershiptest.NullCalls())
}

func TestHandle_ZeroValueIsEmpty(t *testing.T) {
	var h recHandle

	assert.False(t, h.Valid())
	assert.Nil(t, h.Get())
	assert.False(t, h.IsFloating())
	assert.Equal(t, "<empty>", h.String())
	assert.NoError(t, h.Close())
}

func TestHandle_ReleaseExactlyOnce(t *testing.T) {
	o := ownershiptest.NewObject("h")
	h := ownership.New[*obj, recording](o, ownership.ModeNone)

	h.Release()
	h.Release()
	require.NoError(t, h.Close())

	assert.Equal(t, 1, o.Unrefs)
	assert.Equal(t, 1, o.Frees)
	assert.False(t, h.Valid())
}

func TestHandle_Move(t *testing.T) {
	o := ownershiptest.NewObject("h")
	a := ownership.New[*obj, recording](o, ownership.ModeNone)

	b := a.Move()

	assert.Nil(t, a.Get())
	assert.False(t, a.Valid())
	assert.Same(t, o, b.Get())
	assert.Empty(t, o.Calls, "move must not call the strategy")

	a.Release()
	assert.Zero(t, o.Unrefs, "moved-from handle must not release")

	b.Release()
	assert.Equal(t, 1, o.Unrefs)
}

func TestHandle_MoveFrom(t *testing.T) {
	j := &ownershiptest.Journal{}
	x := ownershiptest.NewObject("x")
	y := ownershiptest.NewObject("y")
	x.Journal, y.Journal = j, j

	dst := ownership.New[*obj, recording](x, ownership.ModeNone)
	src := ownership.New[*obj, recording](y, ownership.ModeNone)

	dst.MoveFrom(src)

	assert.Same(t, y, dst.Get())
	assert.False(t, src.Valid())
	assert.Equal(t, []string{"x:unref"}, j.Entries())

	dst.MoveFrom(dst)
	assert.Same(t, y, dst.Get())
	assert.Equal(t, []string{"x:unref"}, j.Entries())

	var empty recHandle
	empty.MoveFrom(dst)
	assert.Same(t, y, empty.Get())
	assert.Equal(t, []string{"x:unref"}, j.Entries())

	empty.Release()
	assert.Equal(t, []string{"x:unref", "y:unref"}, j.Entries())
}

func TestHandle_AssignReleasesBeforeAcquire(t *testing.T) {
	j := &ownershiptest.Journal{}
	old := ownershiptest.NewObject("old")
	fresh := ownershiptest.NewObject("new")
	old.Journal, fresh.Journal = j, j

	h := ownership.New[*obj, recording](old, ownership.ModeNone)
	h.Assign(fresh, ownership.ModeRef)

	assert.Equal(t, []string{"old:unref", "new:ref"}, j.Entries())
	assert.Same(t, fresh, h.Get())
}

func TestHandle_AssignSameHandleIsNoop(t *testing.T) {
	o := ownershiptest.NewObject("h")
	h := ownership.New[*obj, recording](o, ownership.ModeNone)

	for _, mode := range []ownership.Mode{ownership.ModeNone, ownership.ModeRef, ownership.ModeRefSink, ownership.ModeTakeRef} {
		h.Assign(o, mode)
	}

	assert.Empty(t, o.Calls)
	assert.Same(t, o, h.Get())
}

func TestHandle_AssignOnEmptyAndToNull(t *testing.T) {
	o := ownershiptest.NewObject("h")

	var h recHandle
	h.Assign(o, ownership.ModeRefSink)
	assert.Equal(t, []string{"ref-sink"}, o.Calls)

	h.Assign(nil, ownership.ModeRef)
	assert.False(t, h.Valid())
	assert.Equal(t, []string{"ref-sink", "unref"}, o.Calls)
}

func TestHandle_Clone(t *testing.T) {
	o := ownershiptest.NewObject("h")
	h := ownership.New[*obj, plain](o, ownership.ModeNone)

	c := h.Clone()
	assert.Same(t, o, c.Get())
	assert.Equal(t, 2, o.Count)

	h.Release()
	assert.False(t, o.Freed())
	c.Release()
	assert.True(t, o.Freed())
	assert.Equal(t, 1, o.Frees)

	var empty plainHandle
	assert.False(t, empty.Clone().Valid())
}

func TestHandle_DetachTransfersObligation(t *testing.T) {
	o := ownershiptest.NewObject("h")
	h := ownership.New[*obj, plain](o, ownership.ModeNone)

	raw := h.Detach()
	h.Release()
	assert.Equal(t, 1, o.Count)

	adopted := ownership.New[*obj, plain](raw, ownership.ModeNone)
	adopted.Release()
	assert.Equal(t, 1, o.Frees)
}

func TestHandle_FloatingLifecycle(t *testing.T) {
	o := ownershiptest.NewFloating("f")

	h := ownership.New[*obj, floating](o, ownership.ModeRefSink)
	assert.False(t, h.IsFloating())
	assert.Equal(t, 1, o.Count)

	h.Assign(o, ownership.ModeRefSink)
	assert.Equal(t, 1, o.Sinks)

	h.Release()
	assert.Equal(t, 1, o.Frees)
}

func TestHandle_TeardownLifecycle(t *testing.T) {
	o := ownershiptest.NewObject("a")

	h := ownership.New[*obj, teardown](o, ownership.ModeRef)
	assert.Empty(t, o.Calls)

	h.Release()
	h.Release()
	assert.Equal(t, 1, o.Teardowns)
}

func TestHandle_String(t *testing.T) {
	h := ownership.New[int, ownership.Trivial[int]](7, ownership.ModeNone)
	assert.Equal(t, "7", h.String())
}

// A resource created by a "_new" factory moves between wrappers and is
// freed exactly once when the last owner goes away.
func TestHandle_EndToEnd(t *testing.T) {
	o := ownershiptest.NewObject("res")

	first := ownership.New[*obj, plain](o, ownership.ModeNone)
	assert.Equal(t, 1, o.Count)
	assert.False(t, o.Freed())

	second := first.Move()
	assert.Equal(t, 1, o.Count)
	assert.False(t, first.Valid())

	second.Release()
	assert.Equal(t, 0, o.Count)
	assert.True(t, o.Freed())

	first.Release()
	second.Release()
	assert.Equal(t, 1, o.Frees)
	assert.Equal(t, 0, o.Count)
}

func TestHandle_MoveAcrossGoroutines(t *testing.T) {
	o := ownershiptest.NewObject("res")
	h := ownership.New[*obj, plain](o, ownership.ModeNone)

	const hops = 8
	ch := make(chan *plainHandle)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < hops; i++ {
			next := <-ch
			if i == hops-1 {
				next.Release()
				return
			}
			go func(n *plainHandle) { ch <- n.Move() }(next)
		}
	}()

	ch <- h.Move()
	<-done

	assert.False(t, h.Valid())
	assert.Equal(t, 1, o.Frees)
	assert.Equal(t, 1, o.Unrefs)
}

func TestHandle_NoStrategyCallOnNullRelease(t *testing.T) {
	ownershiptest.ResetNullCalls()

	var h floatHandle
	h.Release()
	_ = h.Detach()
	h.Assign(nil, ownership.ModeRefSink)
	h.MoveFrom(&floatHandle{})

	assert.Zero(t, ownershiptest.NullCalls())
}
