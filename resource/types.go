package resource

// Handle is an opaque token for a value held in a table.
// The low 32 bits are the slot index plus one and the high 32 bits are the
// slot generation. Handle 0 is reserved and always invalid.
type Handle uint64

func makeHandle(idx, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx+1))
}

func (h Handle) index() (uint32, bool) {
	lo := uint32(h)
	if lo == 0 {
		return 0, false
	}
	return lo - 1, true
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Parent Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
// Observers are called with no table locks held.
type Observer interface {
	OnResourceEvent(Event)
}

// Backend provides the underlying storage mechanism for handles.
type Backend interface {
	// Create stores a value owned by parent and returns a fresh handle.
	Create(typeID uint32, parent Handle, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Drop removes a value and returns (value, true) if the handle was live.
	Drop(handle Handle) (any, bool)

	// Close releases all values held by the backend.
	Close() error
}

// Table manages handles with type information and observer support.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(typeID uint32, parent Handle, value any) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected type.
	GetTyped(handle Handle, typeID uint32) (any, bool)

	// Remove drops a value and returns (value, true) if found.
	Remove(handle Handle) (any, bool)

	// RemoveDescendants drops every handle owned directly or transitively by handle.
	RemoveDescendants(handle Handle) int

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of live handles.
	Len() int

	// Clear drops all handles.
	Clear()

	// Close releases all values and stops accepting inserts.
	Close() error
}

// Dropper is optionally implemented by values that need cleanup when
// their handle is removed.
type Dropper interface {
	Drop()
}
