package runtime

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/fault"
)

// slot holds the fault reported on one OS thread during a boundary call.
// Class and payload are set together or not at all.
type slot struct {
	mu      sync.Mutex
	armed   bool
	set     bool
	class   string
	payload string
}

var slots sync.Map // thread id -> *slot

func currentSlot() *slot {
	tid := threadID()
	if s, ok := slots.Load(tid); ok {
		return s.(*slot)
	}
	s, _ := slots.LoadOrStore(tid, &slot{})
	return s.(*slot)
}

// arm clears the slot and starts accepting a fault.
func (s *slot) arm() {
	s.mu.Lock()
	s.armed, s.set = true, false
	s.class, s.payload = "", ""
	s.mu.Unlock()
}

// disarm stops accepting faults and takes the stored one, if any.
func (s *slot) disarm() (class, payload string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	class, payload, ok = s.class, s.payload, s.set
	s.armed, s.set = false, false
	s.class, s.payload = "", ""
	return class, payload, ok
}

// store keeps the first fault of an armed slot. It reports false when the
// slot is not armed.
func (s *slot) store(class, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return false
	}
	if s.set {
		Logger().Warn("second fault in one call dropped", zap.String("class", class))
		return true
	}
	s.class, s.payload, s.set = class, payload, true
	return true
}

// UnhandledFaultHandler receives faults reported outside a boundary call,
// e.g. from engine background work.
type UnhandledFaultHandler func(err error)

var unhandled atomic.Pointer[UnhandledFaultHandler]

// SetUnhandledFaultHandler replaces the handler for faults that arrive
// outside a boundary call. A nil handler restores the default, which logs.
func SetUnhandledFaultHandler(h UnhandledFaultHandler) {
	if h == nil {
		unhandled.Store(nil)
		return
	}
	unhandled.Store(&h)
}

func logUnhandled(err error) {
	Logger().Error("unhandled engine fault", zap.Error(err))
}

// deliver is the callback registered with the engine.
func deliver(class, payload string) {
	if currentSlot().store(class, payload) {
		return
	}
	err := fault.Reconstruct(class, payload)
	h := logUnhandled
	if p := unhandled.Load(); p != nil {
		h = *p
	}
	h(err)
}
