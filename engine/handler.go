package engine

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// Callback receives a fault as a class name and a serialized payload.
// It is invoked synchronously on the goroutine that raised the fault,
// before the faulting call returns.
type Callback func(class, payload string)

// Handler is the engine side of the fault channel. The callback can be
// registered once; later registrations are ignored.
type Handler struct {
	registry *fault.Registry
	cb       Callback
	mu       sync.Mutex
}

// NewHandler creates a handler that classifies errors with registry.
func NewHandler(registry *fault.Registry) *Handler {
	if registry == nil {
		registry = fault.Default()
	}
	return &Handler{registry: registry}
}

// Register installs cb if no callback has been installed yet.
// It reports whether cb was installed.
func (h *Handler) Register(cb Callback) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cb == nil {
		Logger().Warn("nil fault callback ignored")
		return false
	}
	if h.cb != nil {
		Logger().Info("fault callback already registered, ignoring")
		return false
	}
	h.cb = cb
	Logger().Info("fault callback registered")
	return true
}

// Registered reports whether a callback is installed.
func (h *Handler) Registered() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cb != nil
}

// OnException reports err, raised while serving caller on token, through
// the callback. Without a callback the fault is only logged. A panic in
// the callback is recovered and logged.
func (h *Handler) OnException(token resource.Handle, caller string, err error) {
	f := h.registry.Classify(err)
	if f == nil {
		return
	}
	id := uuid.NewString()
	f.Base().SetData("FaultID", id)

	Logger().Info("engine fault",
		zap.String("caller", caller),
		zap.Uint64("handle", uint64(token)),
		zap.String("class", f.ClassName()),
		zap.String("fault_id", id),
		zap.Error(f))

	h.mu.Lock()
	cb := h.cb
	h.mu.Unlock()
	if cb == nil {
		return
	}

	class := f.ClassName()
	var payload string
	if b, encErr := h.registry.Encode(f); encErr != nil {
		Logger().Error("fault encoding failed, sending raw message",
			zap.String("caller", caller), zap.Error(encErr))
		payload = f.Error()
	} else {
		payload = string(b)
	}

	defer func() {
		if v := recover(); v != nil {
			Logger().Error("fault callback panicked",
				zap.String("caller", caller),
				zap.Any("panic", v),
				zap.Stack("stack"))
		}
	}()
	cb(class, payload)
}

// Go runs fn in the background. Its error or panic is reported through
// the callback with a zero originating handle.
func (h *Handler) Go(caller string, fn func() error) {
	go func() {
		defer func() {
			if v := recover(); v != nil {
				h.OnException(0, caller, h.registry.Recovered(v))
			}
		}()
		if err := fn(); err != nil {
			h.OnException(0, caller, err)
		}
	}()
}
