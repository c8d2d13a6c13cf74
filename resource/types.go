package resource

// Handle is an opaque reference to an object on a Heap.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Flags adjust how Create initializes an object.
type Flags uint8

const (
	// FlagFloating creates the object floating: it carries one reference
	// that belongs to nobody until Sink is called.
	FlagFloating Flags = 1 << iota
)

// Event types for object lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRef
	EventUnref
	EventSunk
	EventFreed
	EventTornDown
	EventBorrowed
	EventBorrowReturned
)

var eventNames = [...]string{
	EventCreated:        "created",
	EventRef:            "ref",
	EventUnref:          "unref",
	EventSunk:           "sunk",
	EventFreed:          "freed",
	EventTornDown:       "torn-down",
	EventBorrowed:       "borrowed",
	EventBorrowReturned: "borrow-returned",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents an object lifecycle event. Refs is the reference count
// after the operation.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Refs   int32
	Type   EventType
}

// Observer receives notifications about object lifecycle events.
// Observers run after the heap lock is released and may call back into it.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup when their
// object is destroyed.
type Dropper interface {
	Drop()
}

// Stats summarizes heap activity.
type Stats struct {
	Live    int
	Created uint64
	Freed   uint64
}
