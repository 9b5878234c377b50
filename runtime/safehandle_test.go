package runtime

import (
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/xlsx-bridge/errors"
	"github.com/wippyai/xlsx-bridge/resource"
)

type countingRelease struct {
	calls atomic.Int32
	last  atomic.Uint64
}

func (c *countingRelease) release(tok resource.Handle) error {
	c.calls.Add(1)
	c.last.Store(uint64(tok))
	return nil
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.ErrorLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestSafeHandle_UseAfterDispose(t *testing.T) {
	rel := &countingRelease{}
	h := Acquire("Worksheet", 7, rel.release)

	h.Dispose()
	assert.True(t, h.IsClosed())
	assert.Equal(t, int32(1), rel.calls.Load())
	assert.Equal(t, uint64(7), rel.last.Load())

	called := false
	err := Exec(h, func(resource.Handle) { called = true })
	assert.False(t, called)
	assert.True(t, stderrors.Is(err, errors.ErrDisposed))
}

func TestSafeHandle_DisposeTwice(t *testing.T) {
	rel := &countingRelease{}
	h := Acquire("Range", 9, rel.release)
	h.Dispose()
	h.Dispose()
	assert.Equal(t, int32(1), rel.calls.Load())
}

func TestSafeHandle_ConcurrentDispose(t *testing.T) {
	for round := 0; round < 100; round++ {
		rel := &countingRelease{}
		h := Acquire("Package", resource.Handle(round+1), rel.release)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				h.Dispose()
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), rel.calls.Load(), "round %d", round)
	}
}

func TestSafeHandle_DisposeWaitsForGuard(t *testing.T) {
	rel := &countingRelease{}
	h := Acquire("Style", 11, rel.release)

	g, err := h.BeginUse()
	require.NoError(t, err)

	h.Dispose()
	assert.Zero(t, rel.calls.Load(), "token freed while in use")
	assert.Equal(t, resource.Handle(11), g.Token())

	_, err = h.BeginUse()
	assert.True(t, stderrors.Is(err, errors.ErrDisposed))

	g.Release()
	g.Release()
	assert.Equal(t, int32(1), rel.calls.Load())
}

func TestSafeHandle_ConcurrentUseAndDispose(t *testing.T) {
	for round := 0; round < 50; round++ {
		var freed atomic.Bool
		var useAfterFree atomic.Bool
		var frees atomic.Int32
		h := Acquire("Range", 5, func(resource.Handle) error {
			frees.Add(1)
			freed.Store(true)
			return nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					g, err := h.BeginUse()
					if err != nil {
						return
					}
					if freed.Load() {
						useAfterFree.Store(true)
					}
					g.Release()
				}
			}()
		}
		h.Dispose()
		wg.Wait()

		require.False(t, useAfterFree.Load(), "round %d", round)
		require.Equal(t, int32(1), frees.Load(), "round %d", round)
	}
}

func TestSafeHandle_ReleaseFailureIsLogged(t *testing.T) {
	logs := observeLogs(t)

	h := Acquire("Font", 3, func(resource.Handle) error {
		return stderrors.New("engine gone")
	})
	assert.NotPanics(t, h.Dispose)

	p := Acquire("Fill", 4, func(resource.Handle) error {
		panic("boom")
	})
	assert.NotPanics(t, p.Dispose)

	entries := logs.FilterMessage("handle release failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Font", entries[0].ContextMap()["object"])
	assert.Equal(t, "Fill", entries[1].ContextMap()["object"])
}

func TestSafeHandle_NilHandle(t *testing.T) {
	var h *SafeHandle
	_, err := h.BeginUse()
	assert.True(t, stderrors.Is(err, errors.ErrInvalidHandle))
	assert.NotPanics(t, h.Dispose)
}
