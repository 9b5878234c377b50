package runtime

import (
	goruntime "runtime"
	"sync"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

var serialMu sync.Mutex

// invoke runs fn with the calling thread's slot armed and returns the
// fault fn reported, rebuilt as an error.
func invoke(fn func()) error {
	if !IsOpen() {
		return errors.NotInitialized(errors.PhaseCall, "library")
	}
	if serialCalls {
		serialMu.Lock()
		defer serialMu.Unlock()
	}

	goruntime.LockOSThread()
	defer goruntime.UnlockOSThread()

	s := currentSlot()
	s.arm()
	armed := true
	defer func() {
		if armed {
			s.disarm()
		}
	}()

	fn()

	armed = false
	class, payload, ok := s.disarm()
	if !ok {
		return nil
	}
	return fault.Reconstruct(class, payload)
}

// Exec runs fn on h's token and returns the fault it reported, if any.
// A disposed handle fails with errors.ErrDisposed before fn runs.
func Exec(h *SafeHandle, fn func(tok resource.Handle)) error {
	g, err := h.BeginUse()
	if err != nil {
		return err
	}
	defer g.Release()
	return invoke(func() { fn(g.Token()) })
}

// Call is Exec for operations that return a value.
func Call[T any](h *SafeHandle, fn func(tok resource.Handle) T) (T, error) {
	var out T
	err := Exec(h, func(tok resource.Handle) { out = fn(tok) })
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// CallHandle is Call for operations that return a new token. A zero token
// without a reported fault is a bridge failure.
func CallHandle(h *SafeHandle, fn func(tok resource.Handle) resource.Handle) (resource.Handle, error) {
	tok, err := Call(h, fn)
	if err != nil {
		return 0, err
	}
	return checkToken(tok)
}

// Static runs an operation that takes no handle.
func Static[T any](fn func() T) (T, error) {
	var out T
	if err := invoke(func() { out = fn() }); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// StaticHandle is Static for operations that return a new token.
func StaticHandle(fn func() resource.Handle) (resource.Handle, error) {
	tok, err := Static(fn)
	if err != nil {
		return 0, err
	}
	return checkToken(tok)
}

func checkToken(tok resource.Handle) (resource.Handle, error) {
	if tok == 0 {
		return 0, errors.BridgeFailure("", "engine produced no handle and reported no fault", nil)
	}
	return tok, nil
}
