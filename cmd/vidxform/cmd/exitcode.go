package cmd

import (
	"context"
	"errors"

	"github.com/jmylchreest/vidxform/internal/transform"
)

// Process exit codes. Each error kind gets its own code so scripts can tell
// a malformed container from a bad argument.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitUsage           = 2
	ExitIO              = 3
	ExitHeaderTooShort  = 4
	ExitLimitsExceeded  = 5
	ExitAllocation      = 6
	ExitInvalidArgument = 7
	ExitInterrupted     = 130
)

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, transform.ErrHeaderTooShort):
		return ExitHeaderTooShort
	case errors.Is(err, transform.ErrLimitsExceeded):
		return ExitLimitsExceeded
	case errors.Is(err, transform.ErrAllocationFailure):
		return ExitAllocation
	case errors.Is(err, transform.ErrInvalidChannelIndex),
		errors.Is(err, transform.ErrInvalidRange),
		errors.Is(err, transform.ErrInvalidFactor),
		errors.Is(err, transform.ErrSameFile):
		return ExitInvalidArgument
	case errors.Is(err, transform.ErrIO):
		return ExitIO
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
