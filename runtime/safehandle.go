package runtime

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/resource"
)

// closedBit marks the state word of a disposed handle. The low bits count
// guards in use.
const closedBit = uint64(1) << 63

// ReleaseFunc frees an engine token.
type ReleaseFunc func(resource.Handle) error

// SafeHandle owns one engine token. The token is freed exactly once, after
// Dispose and after the last guard is released.
type SafeHandle struct {
	name    string
	token   atomic.Uint64
	state   atomic.Uint64
	release ReleaseFunc
}

// Acquire wraps token. A nil release frees through the opened library.
func Acquire(name string, token resource.Handle, release ReleaseFunc) *SafeHandle {
	if release == nil {
		release = freeToken
	}
	s := &SafeHandle{name: name, release: release}
	s.token.Store(uint64(token))
	return s
}

// Name is the object type the handle was acquired for.
func (s *SafeHandle) Name() string { return s.name }

// IsClosed reports whether Dispose has been called.
func (s *SafeHandle) IsClosed() bool {
	return s.state.Load()&closedBit != 0
}

// Guard keeps a handle's token alive for the duration of one call.
type Guard struct {
	s        *SafeHandle
	released atomic.Bool
}

// BeginUse fails with errors.ErrDisposed once the handle is disposed.
// Otherwise the token stays valid until the returned guard is released.
func (s *SafeHandle) BeginUse() (*Guard, error) {
	if s == nil {
		return nil, errors.InvalidHandle(errors.PhaseCall, 0)
	}
	for {
		st := s.state.Load()
		if st&closedBit != 0 {
			return nil, errors.Disposed(s.name)
		}
		if s.state.CompareAndSwap(st, st+1) {
			return &Guard{s: s}, nil
		}
	}
}

// Token returns the guarded token.
func (g *Guard) Token() resource.Handle {
	return resource.Handle(g.s.token.Load())
}

// Release ends the use. It frees the token when the handle was disposed
// while the guard was held. Releasing twice is a no-op.
func (g *Guard) Release() {
	if g == nil || !g.released.CompareAndSwap(false, true) {
		return
	}
	if g.s.state.Add(^uint64(0)) == closedBit {
		g.s.free()
	}
}

// Dispose closes the handle. The token is freed now, or by the last guard
// still in use. Only the first call has an effect.
func (s *SafeHandle) Dispose() {
	if s == nil {
		return
	}
	for {
		st := s.state.Load()
		if st&closedBit != 0 {
			return
		}
		if s.state.CompareAndSwap(st, st|closedBit) {
			if st == 0 {
				s.free()
			}
			return
		}
	}
}

// free swaps the token out and releases it. Whoever swaps a non-zero token
// owns the release; failures are logged and dropped.
func (s *SafeHandle) free() {
	tok := resource.Handle(s.token.Swap(0))
	if tok == 0 {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			s.logReleaseFailure(tok, fmt.Errorf("panic: %v", v))
		}
	}()
	if err := s.release(tok); err != nil {
		s.logReleaseFailure(tok, err)
	}
}

func (s *SafeHandle) logReleaseFailure(tok resource.Handle, cause error) {
	Logger().Error("handle release failed",
		zap.String("object", s.name),
		zap.Error(errors.ReleaseFailure(uint64(tok), cause)))
}
