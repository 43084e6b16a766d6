package transform

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
)

// Transform errors. Container and frame store errors are re-exported so
// callers only need this package to classify a failure.
var (
	ErrIO                = framestore.ErrIO
	ErrAllocationFailure = framestore.ErrAllocationFailure
	ErrHeaderTooShort    = container.ErrHeaderTooShort
	ErrLimitsExceeded    = container.ErrLimitsExceeded

	// ErrInvalidChannelIndex indicates a channel index >= the container's channel count.
	ErrInvalidChannelIndex = errors.New("invalid channel index")

	// ErrInvalidRange indicates a clip range with min > max.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidFactor indicates a scale factor that is not a number.
	ErrInvalidFactor = errors.New("invalid scale factor")

	// ErrSameFile indicates input and output name the same file without atomic output.
	ErrSameFile = errors.New("input and output are the same file")

	// ErrUnknownStrategy indicates an unrecognised strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// OpError records the operation and file that failed.
type OpError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

func newOpError(op, path string, err error) *OpError {
	return &OpError{Op: op, Path: path, Err: err}
}
