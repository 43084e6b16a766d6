// Package container implements the raw multi-channel video container format.
//
// A container is an 11-byte header followed by FrameCount fixed-size frames:
//
//	offset 0:  frame_count   int64, little-endian
//	offset 8:  channel_count uint8
//	offset 9:  height        uint8
//	offset 10: width         uint8
//	offset 11: payload
//
// The payload is frame-major, then channel-major, then row-major. There is no
// magic number; the byte order above is the wire contract.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Container limits.
const (
	MaxChannels = 3
	MaxHeight   = 128
	MaxWidth    = 128

	// HeaderSize is the encoded size of a Header in bytes.
	HeaderSize = 8 + 1 + 1 + 1
)

// Header describes the layout of a container payload.
type Header struct {
	FrameCount int64 `json:"frame_count"`
	Channels   uint8 `json:"channels"`
	Height     uint8 `json:"height"`
	Width      uint8 `json:"width"`
}

// Validate checks the header against the container limits.
func (h Header) Validate() error {
	switch {
	case h.FrameCount < 0:
		return fmt.Errorf("%w: frame count %d is negative", ErrLimitsExceeded, h.FrameCount)
	case h.Channels > MaxChannels:
		return fmt.Errorf("%w: %d channels (max %d)", ErrLimitsExceeded, h.Channels, MaxChannels)
	case h.Height > MaxHeight:
		return fmt.Errorf("%w: height %d (max %d)", ErrLimitsExceeded, h.Height, MaxHeight)
	case h.Width > MaxWidth:
		return fmt.Errorf("%w: width %d (max %d)", ErrLimitsExceeded, h.Width, MaxWidth)
	}

	// The file size must be representable as an int64 byte offset.
	frameSize := int64(h.Channels) * int64(h.Height) * int64(h.Width)
	if frameSize > 0 && h.FrameCount > MaxFrameCount(frameSize) {
		return fmt.Errorf("%w: %d frames of %d bytes overflow the addressable file size",
			ErrLimitsExceeded, h.FrameCount, frameSize)
	}
	return nil
}

// MaxFrameCount returns the largest frame count whose payload, plus the
// header, fits in an int64 for frames of frameSize bytes.
func MaxFrameCount(frameSize int64) int64 {
	if frameSize <= 0 {
		return math.MaxInt64
	}
	return (math.MaxInt64 - HeaderSize) / frameSize
}

// Geometry returns the derived sizes for this header.
// The header must be valid.
func (h Header) Geometry() Geometry {
	channelSize := int(h.Height) * int(h.Width)
	frameSize := int(h.Channels) * channelSize
	return Geometry{
		header:      h,
		channelSize: channelSize,
		frameSize:   frameSize,
		payloadSize: h.FrameCount * int64(frameSize),
	}
}

// String implements fmt.Stringer.
func (h Header) String() string {
	return fmt.Sprintf("%d frames, %d channels, %dx%d", h.FrameCount, h.Channels, h.Width, h.Height)
}

// ReadHeader reads and validates a header from r.
// Limits are checked before the caller can size any allocation from the fields.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrHeaderTooShort
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	h := Decode(buf)
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// WriteHeader encodes h to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := Encode(h)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// Encode returns the wire form of h.
func Encode(h Header) [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(h.FrameCount))
	buf[8] = h.Channels
	buf[9] = h.Height
	buf[10] = h.Width
	return buf
}

// Decode parses the wire form of a header without validating it.
func Decode(buf [HeaderSize]byte) Header {
	return Header{
		FrameCount: int64(binary.LittleEndian.Uint64(buf[0:8])),
		Channels:   buf[8],
		Height:     buf[9],
		Width:      buf[10],
	}
}
