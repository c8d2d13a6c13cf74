package ownership

import "strconv"

// Mode selects which strategy function runs when a handle takes custody of
// a raw foreign value.
type Mode uint8

const (
	// ModeNone stores the value as-is. The caller asserts the value already
	// carries exactly one reference that now belongs to the handle.
	ModeNone Mode = iota
	// ModeRef takes a new reference via Strategy.Ref.
	ModeRef
	// ModeRefSink claims a floating reference via Strategy.RefSink.
	ModeRefSink
	// ModeTakeRef adopts the value via Strategy.TakeRef.
	ModeTakeRef
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRef:
		return "ref"
	case ModeRefSink:
		return "ref-sink"
	case ModeTakeRef:
		return "take-ref"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}
