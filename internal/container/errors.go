package container

import "errors"

// Container errors.
var (
	// ErrHeaderTooShort indicates the input ended before a full header was read.
	ErrHeaderTooShort = errors.New("header too short")

	// ErrLimitsExceeded indicates a header field is outside the supported range.
	ErrLimitsExceeded = errors.New("header exceeds container limits")

	// ErrFrameIndex indicates a frame index outside [0, FrameCount).
	ErrFrameIndex = errors.New("frame index out of range")

	// ErrChannelIndex indicates a channel index outside [0, Channels).
	ErrChannelIndex = errors.New("channel index out of range")
)
