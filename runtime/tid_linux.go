//go:build linux

package runtime

import "golang.org/x/sys/unix"

const serialCalls = false

func threadID() int { return unix.Gettid() }
