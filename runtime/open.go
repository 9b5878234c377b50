package runtime

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/engine"
	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/resource"
)

var (
	openOnce sync.Once
	opened   atomic.Bool
	lib      *Library
	openErr  error

	host hostEntries
)

// hostEntries are the entry points this package calls itself.
type hostEntries struct {
	initLibrary          func(engine.Callback) bool
	freeHandle           func(resource.Handle)
	libraryMemoryRelease func()
	liveHandles          func() int32
	raiseForTest         func(class, message string)
}

// Open loads the engine library, resolves the library entry points and
// registers the fault callback. Only the first call does any work; later
// calls return the same result.
func Open() (*Library, error) {
	openOnce.Do(func() {
		lib, host, openErr = openHost(engine.Exports())
		if openErr != nil {
			Logger().Error("engine library not opened", zap.Error(openErr))
			return
		}
		opened.Store(true)
		Logger().Info("engine library opened",
			zap.String("library", lib.Namespace()),
			zap.Int("entry_points", len(lib.Names())))
	})
	return lib, openErr
}

// openHost registers h, resolves the entry points this package calls
// itself and installs deliver as the fault callback.
func openHost(h Host) (*Library, hostEntries, error) {
	var ep hostEntries
	l := NewLibrary()
	if err := l.RegisterHost(h); err != nil {
		return nil, ep, errors.Registration(errors.PhaseInit, h.Namespace(), err)
	}

	err := l.ResolveAll([]Binding{
		{"init-library", &ep.initLibrary},
		{"free-handle", &ep.freeHandle},
		{"library-memory-release", &ep.libraryMemoryRelease},
		{"live-handles", &ep.liveHandles},
		{"raise-for-test", &ep.raiseForTest},
	})
	if err != nil {
		return nil, ep, errors.Registration(errors.PhaseInit, l.Namespace(), err)
	}

	// Another callback holding the engine's slot would receive every fault
	// meant for this side.
	if !ep.initLibrary(deliver) {
		return nil, ep, errors.Registration(errors.PhaseInit, l.Namespace(),
			errors.BridgeFailure("", "engine fault callback is held by another owner", nil))
	}
	return l, ep, nil
}

// MustOpen is Open for callers that cannot continue without the engine.
func MustOpen() *Library {
	l, err := Open()
	if err != nil {
		panic(err)
	}
	return l
}

// IsOpen reports whether Open has succeeded.
func IsOpen() bool {
	return opened.Load()
}

// Bind resolves entry points into function variables after opening the
// library.
func Bind(bindings []Binding) error {
	l, err := Open()
	if err != nil {
		return err
	}
	return l.ResolveAll(bindings)
}

func freeToken(tok resource.Handle) error {
	if !IsOpen() {
		return errors.NotInitialized(errors.PhaseRelease, "library")
	}
	host.freeHandle(tok)
	return nil
}

// MemoryRelease asks the engine to return unused memory to the OS.
func MemoryRelease() error {
	_, err := Static(func() struct{} {
		host.libraryMemoryRelease()
		return struct{}{}
	})
	return err
}

// LiveHandles returns the number of live engine tokens.
func LiveHandles() (int32, error) {
	return Static(func() int32 { return host.liveHandles() })
}

// RaiseForTest makes the engine report a fault of class carrying message
// and returns it as rebuilt on this side.
func RaiseForTest(class, message string) error {
	_, err := Static(func() struct{} {
		host.raiseForTest(class, message)
		return struct{}{}
	})
	return err
}
