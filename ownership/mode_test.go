package ownership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wippyai/nativeref/ownership"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode ownership.Mode
		want string
	}{
		{ownership.ModeNone, "none"},
		{ownership.ModeRef, "ref"},
		{ownership.ModeRefSink, "ref-sink"},
		{ownership.ModeTakeRef, "take-ref"},
		{ownership.Mode(9), "mode(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}
