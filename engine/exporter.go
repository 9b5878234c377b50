package engine

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/fault"
	"github.com/wippyai/xlsx-bridge/resource"
)

// LibraryName is the name the engine is loaded and resolved under.
const LibraryName = "xlbridge"

// Exporter is the flat call surface of the engine. Every exported method
// is one boundary operation: objects go in and out as resource.Handle
// tokens, and no method panics or returns an error. Faults are reported
// through the handler and the method returns the zero value instead.
type Exporter struct {
	table   *resource.UnifiedTable
	handler *Handler
	stats   *handleStats
	freeMu  sync.Mutex
}

// NewExporter creates an exporter with its own handle table and fault handler.
func NewExporter(registry *fault.Registry) *Exporter {
	e := &Exporter{
		table:   resource.NewTable(),
		handler: NewHandler(registry),
		stats:   newHandleStats(),
	}
	e.table.Subscribe(e.stats)
	return e
}

var (
	exports     *Exporter
	exportsOnce sync.Once
)

// Exports returns the process-wide exporter used by InitLibrary and the
// shared library surface.
func Exports() *Exporter {
	exportsOnce.Do(func() {
		exports = NewExporter(fault.Default())
	})
	return exports
}

// Namespace names the library the exporter's operations are resolved from.
func (e *Exporter) Namespace() string { return LibraryName }

// Handler returns the exporter's fault handler.
func (e *Exporter) Handler() *Handler {
	return e.handler
}

// InitLibrary initializes the process-wide library. On an exporter other
// than Exports it only registers cb. It reports whether cb is the
// installed fault callback.
func (e *Exporter) InitLibrary(cb Callback) bool {
	if e == Exports() {
		return InitLibrary(cb)
	}
	return e.handler.Register(cb)
}

// LibraryMemoryRelease returns unused memory to the operating system.
func (e *Exporter) LibraryMemoryRelease() {
	LibraryMemoryRelease()
}

// FreeHandle removes a token from the table. Freeing a zero, unknown or
// already freed token does nothing. Failures are logged, never reported.
func (e *Exporter) FreeHandle(h resource.Handle) {
	e.freeMu.Lock()
	defer e.freeMu.Unlock()

	defer func() {
		if v := recover(); v != nil {
			Logger().Error("free handle failed",
				zap.Uint64("handle", uint64(h)),
				zap.Any("panic", v),
				zap.Stack("stack"))
		}
	}()

	if _, ok := e.table.Remove(h); ok {
		debugf("freed handle 0x%x", uint64(h))
	}
}

// LiveHandles returns the number of tokens currently held by the table.
func (e *Exporter) LiveHandles() int32 {
	return int32(e.table.Len())
}

// RaiseForTest reports a fault of the named class carrying message, as if
// an operation had raised it. Unregistered classes are raised as Exception.
func (e *Exporter) RaiseForTest(class, message string) {
	f, ok := e.handler.registry.New(class, message)
	if !ok {
		f = fault.NewException("%s", message)
	}
	e.handler.OnException(0, "RaiseForTest", f)
}

// object is implemented by every value the exporter hands out.
type object interface {
	kind() objectKind
	owner() *Package
}

// export runs fn as one boundary call. Errors and panics are reported
// through the handler and turned into the zero value of T.
func export[T any](e *Exporter, h resource.Handle, op string, fn func() (T, error)) (out T) {
	defer func() {
		if v := recover(); v != nil {
			e.handler.OnException(h, op, e.handler.registry.Recovered(v))
			var zero T
			out = zero
		}
	}()
	prev := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(prev)

	v, err := fn()
	if err != nil {
		e.handler.OnException(h, op, err)
		var zero T
		return zero
	}
	return v
}

// deref resolves h to an object of type T. A zero or dead token is a null
// reference; a live token of another kind is an invalid cast.
func deref[T object](e *Exporter, h resource.Handle) (T, error) {
	var zero T
	if h == 0 {
		return zero, fault.NewNullReference("handle is zero")
	}

	// Interface-typed T accepts any kind.
	var (
		v  any
		ok bool
	)
	if any(zero) == nil {
		v, ok = e.table.Get(h)
	} else {
		v, ok = e.table.GetTyped(h, uint32(zero.kind()))
	}
	if !ok {
		got, live := e.table.TypeOf(h)
		if !live {
			return zero, fault.NewNullReference("handle 0x%x does not refer to a live object", uint64(h))
		}
		return zero, fault.NewInvalidCast("handle 0x%x refers to %s, not %s",
			uint64(h), objectKind(got), zero.kind())
	}
	obj, ok := v.(T)
	if !ok {
		return zero, fault.NewInvalidCast("handle 0x%x refers to %T, not %T", uint64(h), v, zero)
	}
	return obj, nil
}

// alloc stores obj as a child of parent and returns its token.
func (e *Exporter) alloc(parent resource.Handle, obj object) (resource.Handle, error) {
	obj.owner().retain()
	h := e.table.Insert(uint32(obj.kind()), parent, obj)
	if h == 0 {
		obj.owner().release()
		return 0, fault.NewInvalidOperation("handle table is closed")
	}
	return h, nil
}

// call resolves h, locks its package and runs fn on the object.
func call[T object, R any](e *Exporter, h resource.Handle, op string, fn func(T) (R, error)) R {
	return export(e, h, op, func() (R, error) {
		obj, err := deref[T](e, h)
		if err != nil {
			var zero R
			return zero, err
		}
		p := obj.owner()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			var zero R
			return zero, fault.NewObjectDisposed(obj.kind().String())
		}
		return fn(obj)
	})
}

// child is call for operations that return a new object.
func child[T object](e *Exporter, h resource.Handle, op string, fn func(T) (object, error)) resource.Handle {
	return call(e, h, op, func(obj T) (resource.Handle, error) {
		c, err := fn(obj)
		if err != nil {
			return 0, err
		}
		return e.alloc(h, c)
	})
}

// do is call for operations without a result.
func do[T object](e *Exporter, h resource.Handle, op string, fn func(T) error) {
	call(e, h, op, func(obj T) (struct{}, error) {
		return struct{}{}, fn(obj)
	})
}
