package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_TracesTransitions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	h := New[int, Trivial[int]](3, ModeRef)
	h.Move().Release()

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, []string{"ownership: acquire", "ownership: detach", "ownership: release"}, msgs)

	first := logs.All()[0].ContextMap()
	require.Contains(t, first, "mode")
	assert.Equal(t, "ref", first["mode"])
}

func TestLogger_QuietAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	New[int, Trivial[int]](3, ModeNone).Release()

	assert.Zero(t, logs.Len())
}

func TestSetLogger_NilRestoresNop(t *testing.T) {
	prev := Logger()
	SetLogger(nil)
	defer SetLogger(prev)

	require.NotNil(t, Logger())
	assert.NotPanics(t, func() {
		New[int, Trivial[int]](3, ModeRef).Release()
	})
}
