package engine

import (
	"fmt"
	"math"
	"runtime"
	"runtime/debug"

	"go.uber.org/zap"
)

// applyMemoryLimit sets the soft memory limit to percent of physical memory.
// Failures are logged; the engine keeps running with the runtime default.
func applyMemoryLimit(percent int) {
	if percent <= 0 {
		Logger().Info("memory limit disabled")
		return
	}

	total, err := physicalMemory()
	if err != nil {
		Logger().Warn("memory limit not applied", zap.Error(err))
		return
	}

	limit := total / 100 * uint64(percent)
	if limit > math.MaxInt64 {
		limit = math.MaxInt64
	}
	prev := debug.SetMemoryLimit(int64(limit))
	Logger().Info("memory limit applied",
		zap.String("physical", humanBytes(total)),
		zap.String("limit", humanBytes(limit)),
		zap.Int64("previous", prev))
}

// LibraryMemoryRelease forces a collection, returns freed memory to the OS
// and logs the heap before and after.
func LibraryMemoryRelease() {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	debug.FreeOSMemory()
	runtime.ReadMemStats(&after)

	Logger().Info("memory released",
		zap.String("heap_before", humanBytes(before.HeapInuse)),
		zap.String("heap_after", humanBytes(after.HeapInuse)),
		zap.String("sys", humanBytes(after.Sys)),
		zap.Int("live_handles", Exports().table.Len()))
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 4; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTP"[exp])
}
