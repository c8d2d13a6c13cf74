package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/ownership/ownershiptest"
)

func TestBorrow_NeverReleases(t *testing.T) {
	o := ownershiptest.NewObject("default")

	b := ownership.Borrow[*obj, recording](o)
	require.True(t, b.Valid())
	assert.Same(t, o, b.Get())
	assert.Empty(t, o.Calls, "borrowing must not call the strategy")

	b.Release()
	b.Release()
	require.NoError(t, b.Close())

	assert.Zero(t, o.Unrefs)
	assert.False(t, b.Valid())
	assert.Equal(t, 1, o.Count)
}

func TestBorrow_FromOwner(t *testing.T) {
	o := ownershiptest.NewObject("owned")
	owner := ownership.New[*obj, recording](o, ownership.ModeNone)

	b := owner.Borrow()
	assert.Same(t, o, b.Get())
	b.Release()

	assert.True(t, owner.Valid())
	assert.Zero(t, o.Unrefs)

	owner.Release()
	assert.Equal(t, 1, o.Unrefs)
}

func TestBorrow_ResetDoesNotRelease(t *testing.T) {
	a := ownershiptest.NewObject("a")
	c := ownershiptest.NewObject("c")

	b := ownership.Borrow[*obj, recording](a)
	b.Reset(c)
	assert.Same(t, c, b.Get())
	b.Release()

	assert.Empty(t, a.Calls)
	assert.Empty(t, c.Calls)
}

func TestBorrow_Own(t *testing.T) {
	o := ownershiptest.NewObject("default")

	b := ownership.Borrow[*obj, plain](o)
	owned := b.Own()
	assert.Equal(t, 2, o.Count)

	b.Release()
	owned.Release()

	assert.Equal(t, 1, o.Count)
	assert.False(t, o.Freed())
}

func TestBorrow_Floating(t *testing.T) {
	o := ownershiptest.NewFloating("f")

	b := ownership.Borrow[*obj, floating](o)
	assert.True(t, b.IsFloating())
	b.Release()

	assert.True(t, o.Floating)
	assert.Empty(t, o.Calls)
}

func TestBorrow_Null(t *testing.T) {
	b := ownership.Borrow[*obj, recording](nil)

	assert.False(t, b.Valid())
	assert.Equal(t, "borrowed <empty>", b.String())
	assert.False(t, b.Own().Valid())
}

func TestBorrow_Detach(t *testing.T) {
	o := ownershiptest.NewObject("d")

	b := ownership.Borrow[*obj, recording](o)
	assert.Same(t, o, b.Detach())
	assert.False(t, b.Valid())
	assert.Empty(t, o.Calls)
}
