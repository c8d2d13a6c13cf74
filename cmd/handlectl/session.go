package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/nativeref/binding/gobj"
	"github.com/wippyai/nativeref/errors"
	"github.com/wippyai/nativeref/ownership"
	"github.com/wippyai/nativeref/resource"
)

// errQuit is returned by Exec for the quit command.
var errQuit = stderrors.New("quit")

// owner is the part of Handle and Borrowed a slot needs.
type owner interface {
	Get() gobj.Ptr
	Valid() bool
	IsFloating() bool
	Release()
	String() string
}

type kind struct {
	name     string
	teardown bool
	create   func(heap *resource.Heap) (p gobj.Ptr, floating bool, err error)
	own      func(p gobj.Ptr, mode ownership.Mode) owner
	borrow   func(p gobj.Ptr) (owner, error)
	move     func(o owner) (owner, bool)
}

func newKind[S ownership.Strategy[gobj.Ptr]](name string, create func(*resource.Heap) (gobj.Ptr, bool, error)) *kind {
	return &kind{
		name:   name,
		create: create,
		own: func(p gobj.Ptr, mode ownership.Mode) owner {
			return ownership.New[gobj.Ptr, S](p, mode)
		},
		borrow: func(p gobj.Ptr) (owner, error) {
			return gobj.Borrow[S](p)
		},
		move: func(o owner) (owner, bool) {
			h, ok := o.(*ownership.Handle[gobj.Ptr, S])
			if !ok {
				return nil, false
			}
			return h.Move(), true
		},
	}
}

func init() {
	kinds["source"].teardown = true
}

var kinds = map[string]*kind{
	"array": newKind[gobj.ArrayStrategy]("array", func(heap *resource.Heap) (gobj.Ptr, bool, error) {
		a, err := gobj.NewArray(heap, 8)
		if err != nil {
			return gobj.Ptr{}, false, err
		}
		return a.Detach(), false, nil
	}),
	"element": newKind[gobj.ElementStrategy]("element", func(heap *resource.Heap) (gobj.Ptr, bool, error) {
		p, err := gobj.NewFloatingElement(heap, "element")
		return p, true, err
	}),
	"bin": newKind[gobj.BinStrategy]("bin", func(heap *resource.Heap) (gobj.Ptr, bool, error) {
		b, err := gobj.NewBin(heap, "bin")
		if err != nil {
			return gobj.Ptr{}, false, err
		}
		return b.Detach(), false, nil
	}),
	"source": newKind[gobj.SourceStrategy]("source", func(heap *resource.Heap) (gobj.Ptr, bool, error) {
		s, err := gobj.NewSource(heap, nil)
		if err != nil {
			return gobj.Ptr{}, false, err
		}
		return s.Detach(), false, nil
	}),
}

type slot struct {
	kind     *kind
	h        owner
	borrowed bool
}

// row is one line of the slot table.
type row struct {
	Index    int
	Kind     string
	Handle   string
	Refs     int32
	Borrows  uint32
	Borrowed bool
	Floating bool
	Empty    bool
}

// session holds ownership handles to objects on a private heap.
type session struct {
	heap   *resource.Heap
	slots  []*slot
	events []resource.Event
	cancel func()
}

func newSession() *session {
	s := &session{heap: resource.NewHeap(resource.WithCapacity(16), resource.WithoutReuse())}
	s.cancel = s.heap.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		s.events = append(s.events, e)
	}))
	return s
}

// Exec runs one command line and returns its message. Events raised on the
// heap while it ran are available from Events until the next call.
func (s *session) Exec(line string) (string, error) {
	s.events = s.events[:0]

	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return "", errQuit
	case "list":
		return "", nil
	case "new":
		if len(args) != 1 {
			return "", errors.InvalidInput(errors.PhaseAcquire, "usage: new array|element|bin|source")
		}
		return s.create(args[0])
	}

	if len(args) != 1 {
		return "", errors.InvalidInput(errors.PhaseLookup, fmt.Sprintf("usage: %s N", cmd))
	}
	i, sl, err := s.lookup(args[0])
	if err != nil {
		return "", err
	}

	switch cmd {
	case "ref":
		return s.acquire(sl, ownership.ModeRef)
	case "sink":
		return s.acquire(sl, ownership.ModeRefSink)
	case "take":
		return s.acquire(sl, ownership.ModeTakeRef)
	case "borrow":
		v, err := sl.kind.borrow(sl.h.Get())
		if err != nil {
			return "", err
		}
		return s.add(&slot{kind: sl.kind, h: v, borrowed: true}), nil
	case "move":
		moved, ok := sl.kind.move(sl.h)
		if !ok {
			return "", errors.New(errors.PhaseBorrow, errors.KindInvalidInput).
				Detail("slot %d is a borrow and cannot be moved", i).Build()
		}
		return s.add(&slot{kind: sl.kind, h: moved}), nil
	case "detach":
		if sl.borrowed {
			return "", errors.New(errors.PhaseBorrow, errors.KindInvalidInput).
				Detail("slot %d is a borrow and holds no reference", i).Build()
		}
		p := sl.h.(interface{ Detach() gobj.Ptr }).Detach()
		return fmt.Sprintf("detached %s, its reference is no longer tracked", p), nil
	case "release":
		if err := s.checkRelease(sl); err != nil {
			return "", err
		}
		sl.h.Release()
		return fmt.Sprintf("released slot %d", i), nil
	case "unref":
		p := sl.h.Get()
		if p.IsNull() {
			return "", errors.InvalidHandle(errors.PhaseRelease, 0)
		}
		freed, err := p.Heap().Unref(p.ID())
		if err != nil {
			return "", err
		}
		if freed {
			return fmt.Sprintf("%s freed behind slot %d", p, i), nil
		}
		return fmt.Sprintf("%s unreferenced behind slot %d", p, i), nil
	}
	return "", errors.InvalidInput(errors.PhaseLookup, fmt.Sprintf("unknown command %q", cmd))
}

func (s *session) create(name string) (string, error) {
	k, ok := kinds[name]
	if !ok {
		return "", errors.NotFound(errors.PhaseAcquire, "kind", name)
	}
	p, floating, err := k.create(s.heap)
	if err != nil {
		return "", err
	}
	// A floating object belongs to nobody yet; hold it as a borrow until a
	// slot sinks it.
	if floating {
		v, err := k.borrow(p)
		if err != nil {
			return "", err
		}
		return s.add(&slot{kind: k, h: v, borrowed: true}), nil
	}
	return s.add(&slot{kind: k, h: k.own(p, ownership.ModeNone)}), nil
}

func (s *session) acquire(sl *slot, mode ownership.Mode) (string, error) {
	p := sl.h.Get()
	if p.IsNull() {
		return "", errors.InvalidHandle(errors.PhaseAcquire, 0)
	}
	return s.add(&slot{kind: sl.kind, h: sl.kind.own(p, mode)}), nil
}

// checkRelease refuses a release the heap would reject: the last reference,
// or any teardown, while views of the object are live. Releasing the handle
// anyway would drop the obligation and leak the object.
func (s *session) checkRelease(sl *slot) error {
	if sl.borrowed {
		return nil
	}
	p := sl.h.Get()
	if p.IsNull() {
		return nil
	}
	n, ok := s.heap.Borrows(p.ID())
	if !ok || n == 0 {
		return nil
	}
	if sl.kind.teardown {
		return errors.OutstandingBorrow(errors.PhaseTeardown, uint64(p.ID()), n)
	}
	if p.RefCount() == 1 {
		return errors.OutstandingBorrow(errors.PhaseRelease, uint64(p.ID()), n)
	}
	return nil
}

func (s *session) add(sl *slot) string {
	s.slots = append(s.slots, sl)
	return fmt.Sprintf("slot %d", len(s.slots)-1)
}

func (s *session) lookup(arg string) (int, *slot, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, nil, errors.InvalidInput(errors.PhaseLookup, fmt.Sprintf("bad slot %q", arg))
	}
	if i < 0 || i >= len(s.slots) {
		return 0, nil, errors.NotFound(errors.PhaseLookup, "slot", arg)
	}
	return i, s.slots[i], nil
}

// Events returns the heap events raised by the last command.
func (s *session) Events() []resource.Event {
	return s.events
}

// Rows describes every slot.
func (s *session) Rows() []row {
	rows := make([]row, 0, len(s.slots))
	for i, sl := range s.slots {
		p := sl.h.Get()
		var borrows uint32
		if !p.IsNull() {
			borrows, _ = s.heap.Borrows(p.ID())
		}
		rows = append(rows, row{
			Index:    i,
			Kind:     sl.kind.name,
			Handle:   sl.h.String(),
			Refs:     p.RefCount(),
			Borrows:  borrows,
			Borrowed: sl.borrowed,
			Floating: sl.h.IsFloating(),
			Empty:    !sl.h.Valid(),
		})
	}
	return rows
}

// WriteTable prints the slot table, the live heap objects and heap totals.
func (s *session) WriteTable(w io.Writer) {
	for _, r := range s.Rows() {
		fmt.Fprintf(w, "  [%d] %-7s %s%s\n", r.Index, r.Kind, r.Handle, r.flags())
	}
	s.heap.Each(func(h resource.Handle, typeID uint32, refs int32, _ any) bool {
		fmt.Fprintf(w, "  obj#%d %s refs=%d\n", h, gobj.TypeName(typeID), refs)
		return true
	})
	st := s.heap.Stats()
	fmt.Fprintf(w, "  heap: live=%d created=%d freed=%d\n", st.Live, st.Created, st.Freed)
}

func (r row) flags() string {
	if r.Empty {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, " refs=%d", r.Refs)
	if r.Borrows > 0 {
		fmt.Fprintf(&b, " borrows=%d", r.Borrows)
	}
	if r.Floating {
		b.WriteString(" floating")
	}
	return b.String()
}

func formatEvent(e resource.Event) string {
	return fmt.Sprintf("%s obj#%d refs=%d", e.Type, e.Handle, e.Refs)
}

// Close ends every borrow, releases the owning slots in order and then
// closes the heap.
func (s *session) Close() error {
	for _, sl := range s.slots {
		if sl.borrowed {
			sl.h.Release()
		}
	}
	for _, sl := range s.slots {
		sl.h.Release()
	}
	s.slots = nil
	s.cancel()
	return s.heap.Close()
}
