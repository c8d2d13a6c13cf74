package gobj

import (
	"sync"

	"github.com/wippyai/nativeref/ownership"
)

// Quark identifies an interned string. Quarks are never freed, so the
// wrapper uses the trivial strategy.
type Quark struct {
	ownership.Handle[uint32, ownership.Trivial[uint32]]
}

var quarks = struct {
	ids     map[string]uint32
	strings []string
	mu      sync.RWMutex
}{
	ids:     map[string]uint32{},
	strings: []string{""},
}

// QuarkFromString interns s. The empty string maps to the null quark.
func QuarkFromString(s string) *Quark {
	q := &Quark{}
	if s == "" {
		return q
	}

	quarks.mu.RLock()
	id, ok := quarks.ids[s]
	quarks.mu.RUnlock()

	if !ok {
		quarks.mu.Lock()
		if id, ok = quarks.ids[s]; !ok {
			id = uint32(len(quarks.strings))
			quarks.strings = append(quarks.strings, s)
			quarks.ids[s] = id
		}
		quarks.mu.Unlock()
	}

	q.Assign(id, ownership.ModeNone)
	return q
}

// String returns the interned string.
func (q *Quark) String() string {
	id := q.Get()
	quarks.mu.RLock()
	defer quarks.mu.RUnlock()
	if int(id) >= len(quarks.strings) {
		return ""
	}
	return quarks.strings[id]
}
