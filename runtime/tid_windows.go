//go:build windows

package runtime

import "golang.org/x/sys/windows"

const serialCalls = false

func threadID() int { return int(windows.GetCurrentThreadId()) }
