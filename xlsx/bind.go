package xlsx

import (
	"image/color"
	"math"
	goruntime "runtime"
	"sync"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/resource"
	bridge "github.com/wippyai/xlsx-bridge/runtime"
)

var (
	entryPoints []bridge.Binding
	bindOnce    sync.Once
	bindErr     error
)

// entries adds the entry points of one object type. Called from init.
func entries(b ...bridge.Binding) {
	entryPoints = append(entryPoints, b...)
}

// bind opens the engine library and resolves every entry point once.
func bind() error {
	bindOnce.Do(func() {
		bindErr = bridge.Bind(entryPoints)
	})
	return bindErr
}

// handle is embedded by every host object.
type handle struct {
	h *bridge.SafeHandle
}

func (o *handle) base() *handle { return o }

// Close releases the object's engine token. Objects obtained from this
// one stay usable. Closing twice is a no-op.
func (o *handle) Close() error {
	o.h.Dispose()
	return nil
}

// IsClosed reports whether Close has been called.
func (o *handle) IsClosed() bool { return o.h.IsClosed() }

type hostObject[T any] interface {
	*T
	base() *handle
}

// wrap puts tok under a safe handle owned by a new host object. The token
// is freed by Close or, failing that, once the object is unreachable.
func wrap[T any, PT hostObject[T]](name string, tok resource.Handle) *T {
	obj := PT(new(T))
	h := bridge.Acquire(name, tok, nil)
	obj.base().h = h
	goruntime.AddCleanup((*T)(obj), func(h *bridge.SafeHandle) { h.Dispose() }, h)
	return (*T)(obj)
}

// child runs an operation on parent that returns a new object.
func child[T any, PT hostObject[T]](parent *handle, name string, fn func(resource.Handle) resource.Handle) (*T, error) {
	tok, err := bridge.CallHandle(parent.h, fn)
	if err != nil {
		return nil, err
	}
	return wrap[T, PT](name, tok), nil
}

func exec(o *handle, fn func(resource.Handle)) error {
	return bridge.Exec(o.h, fn)
}

func get[T any](o *handle, fn func(resource.Handle) T) (T, error) {
	return bridge.Call(o.h, fn)
}

// argb packs c as 0xAARRGGBB.
func argb(c color.Color) (int32, error) {
	if c == nil {
		return 0, errors.InvalidInput(errors.PhaseCall, "color is nil")
	}
	r, g, b, a := c.RGBA()
	v := (a>>8)<<24 | (r>>8)<<16 | (g>>8)<<8 | b>>8
	return int32(v), nil
}

// narrow converts host ints to the engine's int32. A value out of range is
// rejected here; the engine would see it wrapped.
func narrow(names []string, vs ...int) ([]int32, error) {
	out := make([]int32, len(vs))
	for i, v := range vs {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
				Path(names[i]).
				Value(v).
				Detail("%d does not fit in int32", v).
				Build()
		}
		out[i] = int32(v)
	}
	return out, nil
}
