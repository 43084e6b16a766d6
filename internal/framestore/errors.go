package framestore

import "errors"

// Frame store errors.
var (
	// ErrIO indicates a read, write or seek failure on the container.
	ErrIO = errors.New("i/o error")

	// ErrAllocationFailure indicates the payload cannot be held in memory.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrFrameSize indicates a frame buffer of the wrong length was written.
	ErrFrameSize = errors.New("frame size mismatch")
)
