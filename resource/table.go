package resource

import (
	"sync"
)

// UnifiedTable implements the Table interface on top of a LocalBackend.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

var _ Table = (*UnifiedTable)(nil)

// NewTable creates a new unified table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value owned by parent and returns its handle.
// Returns 0 once the table is closed.
func (t *UnifiedTable) Insert(typeID uint32, parent Handle, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(typeID, parent, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Parent: parent,
		TypeID: typeID,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *UnifiedTable) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// TypeOf returns the type ID recorded for a live handle.
func (t *UnifiedTable) TypeOf(handle Handle) (uint32, bool) {
	return t.backend.TypeID(handle)
}

// Parent returns the owner recorded for a live handle.
func (t *UnifiedTable) Parent(handle Handle) (Handle, bool) {
	return t.backend.Parent(handle)
}

// Remove drops a value and returns (value, true) if found.
// Removing a freed, stale or zero handle is a no-op.
func (t *UnifiedTable) Remove(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	parent, _ := t.backend.Parent(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Parent: parent,
		TypeID: typeID,
		Value:  value,
	})

	return value, true
}

// RemoveDescendants drops every handle owned directly or transitively by
// handle and returns how many were removed. The handle itself stays live.
func (t *UnifiedTable) RemoveDescendants(handle Handle) int {
	n := 0
	for _, h := range t.backend.Descendants(handle) {
		if _, ok := t.Remove(h); ok {
			n++
		}
	}
	return n
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *UnifiedTable) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live handles.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Each iterates over all live handles.
func (t *UnifiedTable) Each(fn func(Handle, uint32, any) bool) {
	t.backend.Each(fn)
}

// Clear drops all handles.
func (t *UnifiedTable) Clear() {
	// Collect handles first to avoid holding the backend lock during Remove
	var handles []Handle
	t.backend.Each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close releases all values and stops accepting inserts.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	obs := make([]Observer, len(t.observers))
	copy(obs, t.observers)
	t.obsMu.RUnlock()
	for _, o := range obs {
		o.OnResourceEvent(e)
	}
}
