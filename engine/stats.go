package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/xlsx-bridge/resource"
)

// handleStats counts live tokens per object kind.
type handleStats struct {
	mu   sync.Mutex
	live map[objectKind]int
}

func newHandleStats() *handleStats {
	return &handleStats{live: make(map[objectKind]int)}
}

func (s *handleStats) OnResourceEvent(ev resource.Event) {
	k := objectKind(ev.TypeID)
	s.mu.Lock()
	switch ev.Type {
	case resource.EventCreated:
		s.live[k]++
	case resource.EventDropped:
		if s.live[k]--; s.live[k] <= 0 {
			delete(s.live, k)
		}
	}
	n := s.live[k]
	s.mu.Unlock()

	if ce := Logger().Check(zap.DebugLevel, "handle "+ev.Type.String()); ce != nil {
		ce.Write(
			zap.Uint64("handle", uint64(ev.Handle)),
			zap.Uint64("parent", uint64(ev.Parent)),
			zap.Stringer("kind", k),
			zap.Int("live", n))
	}
}

// Live returns the number of live tokens of each kind, keyed by kind name.
func (s *handleStats) Live() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.live))
	for k, n := range s.live {
		out[k.String()] = n
	}
	return out
}

// LiveByKind returns live token counts per object kind name.
func (e *Exporter) LiveByKind() map[string]int {
	return e.stats.Live()
}
