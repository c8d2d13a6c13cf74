package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/ownership/ownershiptest"
)

type obj = ownershiptest.Object

type (
	trivial   = ownership.Trivial[*obj]
	plain     = ownership.PlainRefcount[*obj, ownershiptest.Ops]
	floating  = ownership.FloatingRefcount[*obj, ownershiptest.Ops]
	floatInc  = ownership.FloatingRefcount[*obj, ownershiptest.IncrementingOps]
	teardown  = ownership.AlternateTeardown[*obj, ownershiptest.Ops]
	recording = ownershiptest.Strategy
)

var (
	_ ownership.Strategy[*obj] = trivial{}
	_ ownership.Strategy[*obj] = plain{}
	_ ownership.Strategy[*obj] = floating{}
	_ ownership.Strategy[*obj] = floatInc{}
	_ ownership.Strategy[*obj] = teardown{}
	_ ownership.Strategy[*obj] = recording{}
)

func TestTrivial(t *testing.T) {
	o := ownershiptest.NewObject("t")
	var s trivial

	assert.Same(t, o, s.Ref(o))
	assert.Same(t, o, s.RefSink(o))
	assert.Same(t, o, s.TakeRef(o))
	s.Unref(o)
	assert.False(t, s.IsFloating(o))

	assert.Empty(t, o.Calls)
	assert.Equal(t, 1, o.Count)
}

func TestPlainRefcount(t *testing.T) {
	o := ownershiptest.NewObject("p")
	var s plain

	s.Ref(o)
	s.RefSink(o)
	s.TakeRef(o)
	assert.Equal(t, 4, o.Count)
	assert.Equal(t, []string{"ref", "ref", "ref"}, o.Calls)
	assert.False(t, s.IsFloating(o))

	for i := 0; i < 4; i++ {
		s.Unref(o)
	}
	assert.Equal(t, 0, o.Count)
	assert.Equal(t, 1, o.Frees)
}

func TestPlainRefcount_RefUnrefKeepsLifetime(t *testing.T) {
	o := ownershiptest.NewObject("p")
	var s plain

	s.Unref(s.Ref(o))

	assert.Equal(t, 1, o.Count)
	assert.False(t, o.Freed())
}

func TestFloatingRefcount_RefSinkIdempotent(t *testing.T) {
	o := ownershiptest.NewFloating("f")
	var s floating

	require.True(t, s.IsFloating(o))

	s.RefSink(o)
	assert.False(t, s.IsFloating(o))
	s.RefSink(o)

	assert.Equal(t, 1, o.Sinks, "second RefSink must not claim again")
	assert.Equal(t, 1, o.Count)
	assert.Equal(t, []string{"sink"}, o.Calls)
}

func TestFloatingRefcount_RefUnrefAfterSink(t *testing.T) {
	o := ownershiptest.NewFloating("f")
	var s floating

	s.RefSink(o)
	s.Ref(o)
	assert.Equal(t, 2, o.Count)

	s.Unref(o)
	s.Unref(o)
	assert.Equal(t, 1, o.Frees)
}

func TestFloatingRefcount_TakeRefAdoptsByDefault(t *testing.T) {
	fl := ownershiptest.NewFloating("floating")
	owned := ownershiptest.NewObject("owned")
	var s floating

	s.TakeRef(fl)
	assert.False(t, fl.Floating)
	assert.Equal(t, 1, fl.Count)
	assert.Equal(t, 0, fl.Refs)

	s.TakeRef(owned)
	assert.Empty(t, owned.Calls)
	assert.Equal(t, 1, owned.Count)
}

func TestFloatingRefcount_TakeRefOverride(t *testing.T) {
	o := ownershiptest.NewObject("inc")
	var s floatInc

	s.TakeRef(o)

	assert.Equal(t, 1, o.TakeRefs)
	assert.Equal(t, 2, o.Count)
}

func TestAlternateTeardown(t *testing.T) {
	o := ownershiptest.NewObject("a")
	var s teardown

	s.Ref(o)
	s.RefSink(o)
	s.TakeRef(o)
	assert.Empty(t, o.Calls)
	assert.False(t, s.IsFloating(o))

	o.Count = 5
	s.Unref(o)
	assert.Equal(t, []string{"teardown"}, o.Calls)
	assert.Equal(t, 0, o.Count)
	assert.Equal(t, 1, o.Frees)
}

func TestStrategies_NullIsNoop(t *testing.T) {
	ownershiptest.ResetNullCalls()

	strategies := []ownership.Strategy[*obj]{trivial{}, plain{}, floating{}, floatInc{}, teardown{}}
	for _, s := range strategies {
		assert.Nil(t, s.Ref(nil))
		assert.Nil(t, s.RefSink(nil))
		assert.Nil(t, s.TakeRef(nil))
		assert.False(t, s.IsFloating(nil))
		s.Unref(nil)
	}

	assert.Zero(t, ownershiptest.NullCalls(), "ops must never see a nil handle")
}
