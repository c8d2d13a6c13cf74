package resource

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/nativeref/errors"
)

// Heap is an in-memory stand-in for a native library's object store.
// Objects are reference counted, may be created floating, may be torn down
// regardless of their count, and track outstanding borrows.
//
// All methods are safe for concurrent use.
type Heap struct {
	entries   []entry
	freeList  []Handle
	observers []subscription
	nextObs   uint64
	created   uint64
	freed     uint64
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	reuse     bool
	closed    bool
}

type entry struct {
	value       any
	typeID      uint32
	refs        int32
	borrowCount uint32
	floating    bool
	valid       bool
}

type subscription struct {
	o  Observer
	id uint64
}

// Option configures a Heap.
type Option func(*Heap)

// WithCapacity preallocates room for n objects.
func WithCapacity(n int) Option {
	return func(h *Heap) {
		h.entries = make([]entry, 0, n)
	}
}

// WithoutReuse keeps freed slots retired so stale handles always report
// ErrAlreadyFreed instead of aliasing a newer object.
func WithoutReuse() Option {
	return func(h *Heap) {
		h.reuse = false
	}
}

// NewHeap creates an empty heap.
func NewHeap(opts ...Option) *Heap {
	h := &Heap{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
		reuse:    true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var (
	defaultHeap *Heap
	defaultOnce sync.Once
)

// Default returns the process-wide heap, creating it on first use.
func Default() *Heap {
	defaultOnce.Do(func() {
		defaultHeap = NewHeap()
	})
	return defaultHeap
}

// lookup returns the entry for handle. The caller must hold mu.
func (h *Heap) lookup(phase errors.Phase, handle Handle) (*entry, error) {
	if handle == 0 {
		return nil, errors.InvalidHandle(phase, 0)
	}
	idx := int(handle) - 1
	if idx >= len(h.entries) {
		return nil, errors.InvalidHandle(phase, uint64(handle))
	}
	e := &h.entries[idx]
	if !e.valid {
		return nil, errors.AlreadyFreed(phase, uint64(handle))
	}
	return e, nil
}

// Create stores a value with one reference and returns its handle.
func (h *Heap) Create(typeID uint32, value any, flags Flags) (Handle, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0, errors.Closed(errors.PhaseAcquire, "heap")
	}

	e := entry{
		typeID:   typeID,
		value:    value,
		refs:     1,
		floating: flags&FlagFloating != 0,
		valid:    true,
	}

	var handle Handle
	if len(h.freeList) > 0 {
		handle = h.freeList[len(h.freeList)-1]
		h.freeList = h.freeList[:len(h.freeList)-1]
		h.entries[handle-1] = e
	} else {
		h.entries = append(h.entries, e)
		handle = Handle(len(h.entries))
	}
	h.created++
	h.mu.Unlock()

	h.notify(Event{Type: EventCreated, Handle: handle, TypeID: typeID, Refs: 1, Value: value})
	return handle, nil
}

// Get retrieves a value by handle.
func (h *Heap) Get(handle Handle) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(errors.PhaseLookup, handle)
	if err != nil {
		return nil, false
	}
	return e.value, true
}

// TypeID returns the type ID for a handle.
func (h *Heap) TypeID(handle Handle) (uint32, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(errors.PhaseLookup, handle)
	if err != nil {
		return 0, false
	}
	return e.typeID, true
}

// RefCount returns the current reference count of a live object.
func (h *Heap) RefCount(handle Handle) (int32, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(errors.PhaseLookup, handle)
	if err != nil {
		return 0, false
	}
	return e.refs, true
}

// IsFloating reports whether a live object is still floating.
func (h *Heap) IsFloating(handle Handle) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(errors.PhaseLookup, handle)
	if err != nil {
		return false
	}
	return e.floating
}

// Ref adds a reference.
func (h *Heap) Ref(handle Handle) error {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseAcquire, handle)
	if err != nil {
		h.mu.Unlock()
		Logger().Warn("resource: ref failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return err
	}
	e.refs++
	ev := Event{Type: EventRef, Handle: handle, TypeID: e.typeID, Refs: e.refs, Value: e.value}
	h.mu.Unlock()

	h.notify(ev)
	return nil
}

// Sink claims a floating object without adding a reference.
// Sinking an object that is not floating reports ErrNotFloating.
func (h *Heap) Sink(handle Handle) error {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseAcquire, handle)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	if !e.floating {
		h.mu.Unlock()
		return errors.NotFloating(uint64(handle))
	}
	e.floating = false
	ev := Event{Type: EventSunk, Handle: handle, TypeID: e.typeID, Refs: e.refs, Value: e.value}
	h.mu.Unlock()

	h.notify(ev)
	return nil
}

// Unref drops a reference and reports whether the object was destroyed.
// The final reference cannot be dropped while borrows are outstanding.
func (h *Heap) Unref(handle Handle) (bool, error) {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseRelease, handle)
	if err != nil {
		h.mu.Unlock()
		Logger().Warn("resource: unref failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return false, err
	}
	if e.refs == 1 && e.borrowCount > 0 {
		n := e.borrowCount
		h.mu.Unlock()
		err := errors.OutstandingBorrow(errors.PhaseRelease, uint64(handle), n)
		Logger().Warn("resource: unref failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return false, err
	}

	e.refs--
	ev := Event{Type: EventUnref, Handle: handle, TypeID: e.typeID, Refs: e.refs, Value: e.value}
	if e.refs > 0 {
		h.mu.Unlock()
		h.notify(ev)
		return false, nil
	}

	value := h.destroy(handle, e)
	h.mu.Unlock()

	h.notify(ev)
	h.finalize(EventFreed, handle, ev.TypeID, value)
	return true, nil
}

// Teardown destroys an object regardless of its reference count.
func (h *Heap) Teardown(handle Handle) error {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseTeardown, handle)
	if err != nil {
		h.mu.Unlock()
		Logger().Warn("resource: teardown failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return err
	}
	if e.borrowCount > 0 {
		n := e.borrowCount
		h.mu.Unlock()
		err := errors.OutstandingBorrow(errors.PhaseTeardown, uint64(handle), n)
		Logger().Warn("resource: teardown failed", zap.Uint32("handle", uint32(handle)), zap.Error(err))
		return err
	}

	typeID := e.typeID
	value := h.destroy(handle, e)
	h.mu.Unlock()

	h.finalize(EventTornDown, handle, typeID, value)
	return nil
}

// destroy invalidates an entry and returns its value. The caller must hold mu.
func (h *Heap) destroy(handle Handle, e *entry) any {
	value := e.value
	*e = entry{}
	if h.reuse {
		h.freeList = append(h.freeList, handle)
	}
	h.freed++
	return value
}

func (h *Heap) finalize(t EventType, handle Handle, typeID uint32, value any) {
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	if ce := Logger().Check(zap.DebugLevel, "resource: destroyed"); ce != nil {
		ce.Write(zap.Uint32("handle", uint32(handle)), zap.Uint32("type", typeID), zap.Stringer("event", t))
	}
	h.notify(Event{Type: t, Handle: handle, TypeID: typeID, Value: value})
}

// Borrow increments the borrow count for a handle.
func (h *Heap) Borrow(handle Handle) error {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseBorrow, handle)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	e.borrowCount++
	ev := Event{Type: EventBorrowed, Handle: handle, TypeID: e.typeID, Refs: e.refs, Value: e.value}
	h.mu.Unlock()

	h.notify(ev)
	return nil
}

// ReturnBorrow decrements the borrow count for a handle.
func (h *Heap) ReturnBorrow(handle Handle) error {
	h.mu.Lock()
	e, err := h.lookup(errors.PhaseBorrow, handle)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	if e.borrowCount == 0 {
		h.mu.Unlock()
		return errors.InvalidInput(errors.PhaseBorrow, "no active borrows")
	}
	e.borrowCount--
	ev := Event{Type: EventBorrowReturned, Handle: handle, TypeID: e.typeID, Refs: e.refs, Value: e.value}
	h.mu.Unlock()

	h.notify(ev)
	return nil
}

// Borrows returns the number of outstanding borrows of a live object.
func (h *Heap) Borrows(handle Handle) (uint32, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(errors.PhaseLookup, handle)
	if err != nil {
		return 0, false
	}
	return e.borrowCount, true
}

// Len returns the number of live objects.
func (h *Heap) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, e := range h.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Stats returns a snapshot of heap counters.
func (h *Heap) Stats() Stats {
	live := h.Len()

	h.mu.RLock()
	defer h.mu.RUnlock()
	return Stats{Live: live, Created: h.created, Freed: h.freed}
}

// Each iterates over all live objects until fn returns false.
func (h *Heap) Each(fn func(handle Handle, typeID uint32, refs int32, value any) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i, e := range h.entries {
		if e.valid {
			if !fn(Handle(i+1), e.typeID, e.refs, e.value) {
				break
			}
		}
	}
}

// Close destroys every live object and rejects further Create calls.
func (h *Heap) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true

	var values []any
	for i := range h.entries {
		if h.entries[i].valid {
			values = append(values, h.entries[i].value)
			h.freed++
		}
	}
	h.entries = nil
	h.freeList = nil
	h.mu.Unlock()

	for _, v := range values {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

// Subscribe adds an observer for lifecycle events and returns a function
// that removes it.
func (h *Heap) Subscribe(o Observer) (cancel func()) {
	h.obsMu.Lock()
	defer h.obsMu.Unlock()
	h.nextObs++
	id := h.nextObs
	h.observers = append(h.observers, subscription{id: id, o: o})

	return func() {
		h.obsMu.Lock()
		defer h.obsMu.Unlock()
		// Copy so a notify in flight keeps its snapshot intact.
		next := make([]subscription, 0, len(h.observers))
		for _, s := range h.observers {
			if s.id != id {
				next = append(next, s)
			}
		}
		h.observers = next
	}
}

func (h *Heap) notify(e Event) {
	h.obsMu.RLock()
	subs := h.observers
	h.obsMu.RUnlock()

	for _, s := range subs {
		s.o.OnResourceEvent(e)
	}
}
