// Package framestore provides access to container frames, either one frame
// at a time (Streaming) or as a fully materialized payload (Bulk).
package framestore

import (
	"fmt"
	"io"

	"github.com/jmylchreest/vidxform/internal/container"
)

// Stats counts the I/O performed by a store.
type Stats struct {
	Reads        int   `json:"reads"`
	Writes       int   `json:"writes"`
	Seeks        int   `json:"seeks"`
	BytesRead    int64 `json:"bytes_read"`
	BytesWritten int64 `json:"bytes_written"`
}

// Store is implemented by every frame store.
type Store interface {
	Geometry() container.Geometry
	Stats() Stats
}

var (
	_ Store = (*Streaming)(nil)
	_ Store = (*Bulk)(nil)
)

// Streaming is a bounded-memory cursor over a container. It owns exactly one
// frame buffer, reused by every ReadFrame call.
//
// Reads are random access: each ReadFrame seeks to the frame's offset.
// Writes always append, so output frame order is WriteFrame call order.
type Streaming struct {
	geo   container.Geometry
	in    io.ReadSeeker
	out   io.Writer
	frame []byte
	stats Stats
}

// NewStreaming creates a streaming store. in must be positioned anywhere in a
// container described by geo; out must be positioned just after the header.
func NewStreaming(geo container.Geometry, in io.ReadSeeker, out io.Writer) *Streaming {
	return &Streaming{
		geo:   geo,
		in:    in,
		out:   out,
		frame: make([]byte, geo.FrameSize()),
	}
}

// Geometry returns the store's geometry.
func (s *Streaming) Geometry() container.Geometry {
	return s.geo
}

// ReadFrame seeks to frame i and reads it into the store's buffer.
// The returned slice is only valid until the next ReadFrame.
func (s *Streaming) ReadFrame(i int64) ([]byte, error) {
	off, err := s.geo.FrameOffset(i)
	if err != nil {
		return nil, err
	}

	if _, err := s.in.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to frame %d: %w", ErrIO, i, err)
	}
	s.stats.Seeks++

	n, err := io.ReadFull(s.in, s.frame)
	s.stats.BytesRead += int64(n)
	if err != nil {
		return nil, fmt.Errorf("%w: reading frame %d: %w", ErrIO, i, err)
	}
	s.stats.Reads++

	return s.frame, nil
}

// WriteFrame appends one frame to the output.
func (s *Streaming) WriteFrame(frame []byte) error {
	if len(frame) != s.geo.FrameSize() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(frame), s.geo.FrameSize())
	}

	n, err := s.out.Write(frame)
	s.stats.BytesWritten += int64(n)
	if err != nil {
		return fmt.Errorf("%w: writing frame: %w", ErrIO, err)
	}
	s.stats.Writes++

	return nil
}

// Stats returns the I/O counters.
func (s *Streaming) Stats() Stats {
	return s.stats
}
