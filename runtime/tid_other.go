//go:build !linux && !windows

package runtime

// Without a portable thread id every call shares one slot, so calls are
// serialized.
const serialCalls = true

func threadID() int { return 0 }
