package resource

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrClosed = errors.New("resource backend closed")
	ErrFull   = errors.New("resource backend has no free slots")
)

// LocalBackend is an in-memory backend with generation-tagged slots.
// A freed slot bumps its generation before reuse, so stale handles
// never resolve to a later value.
type LocalBackend struct {
	entries  []entry
	freeList []uint32
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value  any
	parent Handle
	root   Handle
	typeID uint32
	gen    uint32
	valid  bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// Create stores a value and returns a handle.
// The root of the new entry is inherited from a live parent, so a whole
// ownership tree can be found even after intermediate handles are freed.
func (b *LocalBackend) Create(typeID uint32, parent Handle, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	root := parent
	if p, ok := b.lookup(parent); ok && p.root != 0 {
		root = p.root
	}

	if len(b.freeList) > 0 {
		idx := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		e := &b.entries[idx]
		e.value = value
		e.parent = parent
		e.root = root
		e.typeID = typeID
		e.valid = true
		return makeHandle(idx, e.gen), nil
	}

	if len(b.entries) >= math.MaxUint32-1 {
		return 0, ErrFull
	}

	b.entries = append(b.entries, entry{
		value:  value,
		parent: parent,
		root:   root,
		typeID: typeID,
		gen:    1,
		valid:  true,
	})
	return makeHandle(uint32(len(b.entries)-1), 1), nil
}

// lookup must be called with b.mu held.
func (b *LocalBackend) lookup(handle Handle) (*entry, bool) {
	idx, ok := handle.index()
	if !ok || int(idx) >= len(b.entries) {
		return nil, false
	}
	e := &b.entries[idx]
	if !e.valid || e.gen != handle.generation() {
		return nil, false
	}
	return e, true
}

// Get retrieves a value by handle.
func (b *LocalBackend) Get(handle Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// TypeID returns the type ID for a handle.
func (b *LocalBackend) TypeID(handle Handle) (uint32, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return 0, false
	}
	return e.typeID, true
}

// Parent returns the handle that owned this one at creation.
func (b *LocalBackend) Parent(handle Handle) (Handle, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return 0, false
	}
	return e.parent, true
}

// Drop removes a value and returns (value, true) if the handle was live.
// Dropping a stale or unknown handle is a no-op.
func (b *LocalBackend) Drop(handle Handle) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	e.parent = 0
	e.root = 0
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	idx, _ := handle.index()
	b.freeList = append(b.freeList, idx)

	return value, true
}

// Descendants returns every live handle whose root is handle or whose
// parent chain reaches handle.
func (b *LocalBackend) Descendants(handle Handle) []Handle {
	if handle == 0 {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Handle
	for i := range b.entries {
		e := &b.entries[i]
		if !e.valid {
			continue
		}
		h := makeHandle(uint32(i), e.gen)
		if h == handle {
			continue
		}
		if e.root == handle || b.reaches(e.parent, handle) {
			out = append(out, h)
		}
	}
	return out
}

// reaches walks the live parent chain from h looking for target.
func (b *LocalBackend) reaches(h, target Handle) bool {
	for depth := 0; h != 0 && depth < len(b.entries); depth++ {
		if h == target {
			return true
		}
		e, ok := b.lookup(h)
		if !ok {
			return false
		}
		h = e.parent
	}
	return false
}

// Close releases all values.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	var dropped []any
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	for i := range b.entries {
		if b.entries[i].valid {
			dropped = append(dropped, b.entries[i].value)
			b.entries[i].valid = false
			b.entries[i].value = nil
		}
	}

	b.entries = nil
	b.freeList = nil
	b.mu.Unlock()

	for _, v := range dropped {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}

// Len returns the number of live handles.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries) - len(b.freeList)
}

// Each iterates over all live handles.
func (b *LocalBackend) Each(fn func(Handle, uint32, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(makeHandle(uint32(i), e.gen), e.typeID, e.value) {
				break
			}
		}
	}
}
