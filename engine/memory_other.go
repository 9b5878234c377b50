//go:build !linux

package engine

import (
	"github.com/wippyai/xlsx-bridge/errors"
)

func physicalMemory() (uint64, error) {
	return 0, errors.InvalidInput(errors.PhaseInit, "physical memory size is not available on this platform")
}
