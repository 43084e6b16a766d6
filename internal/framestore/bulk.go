package framestore

import (
	"fmt"
	"io"
	"math"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/pkg/bytesize"
)

// Bulk owns the whole payload of a container.
//
// Frame and Plane hand out capacity-limited sub-slices, so appending to one
// can never spill into its neighbour. Callers running concurrently must touch
// disjoint frame indices.
type Bulk struct {
	geo     container.Geometry
	payload []byte
	stats   Stats
}

// NewBulk allocates a payload buffer for geo. A limit of zero or less
// disables the size check; the payload must still be addressable.
func NewBulk(geo container.Geometry, limit int64) (*Bulk, error) {
	size := geo.PayloadSize()
	if size < 0 || geo.FrameCount() > container.MaxFrameCount(int64(geo.FrameSize())) {
		return nil, fmt.Errorf("%w: %d frames of %d bytes overflow the payload size",
			ErrAllocationFailure, geo.FrameCount(), geo.FrameSize())
	}
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: payload of %s exceeds limit of %s",
			ErrAllocationFailure, bytesize.Format(bytesize.Size(size)), bytesize.Format(bytesize.Size(limit)))
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("%w: payload of %d bytes is not addressable", ErrAllocationFailure, size)
	}

	return &Bulk{
		geo:     geo,
		payload: make([]byte, size),
	}, nil
}

// Geometry returns the store's geometry.
func (b *Bulk) Geometry() container.Geometry {
	return b.geo
}

// LoadAll fills the payload with a single read.
func (b *Bulk) LoadAll(r io.Reader) error {
	n, err := io.ReadFull(r, b.payload)
	b.stats.BytesRead += int64(n)
	if err != nil {
		return fmt.Errorf("%w: reading payload (%d of %d bytes): %w", ErrIO, n, len(b.payload), err)
	}
	b.stats.Reads++
	return nil
}

// StoreAll writes the payload with a single write.
func (b *Bulk) StoreAll(w io.Writer) error {
	n, err := w.Write(b.payload)
	b.stats.BytesWritten += int64(n)
	if err != nil {
		return fmt.Errorf("%w: writing payload: %w", ErrIO, err)
	}
	b.stats.Writes++
	return nil
}

// Frame returns the mutable bytes of frame i.
func (b *Bulk) Frame(i int64) ([]byte, error) {
	span, err := b.geo.FrameSpan(i)
	if err != nil {
		return nil, err
	}
	return b.payload[span.Start:span.End:span.End], nil
}

// Plane returns the mutable bytes of channel c in frame i.
func (b *Bulk) Plane(i int64, c int) ([]byte, error) {
	frame, err := b.Frame(i)
	if err != nil {
		return nil, err
	}
	return Plane(b.geo, frame, c)
}

// Payload exposes the underlying buffer.
func (b *Bulk) Payload() []byte {
	return b.payload
}

// Stats returns the I/O counters.
func (b *Bulk) Stats() Stats {
	return b.stats
}

// Plane slices channel c out of a single frame buffer.
func Plane(geo container.Geometry, frame []byte, c int) ([]byte, error) {
	if len(frame) != geo.FrameSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(frame), geo.FrameSize())
	}
	span, err := geo.ChannelSpan(c)
	if err != nil {
		return nil, err
	}
	return frame[span.Start:span.End:span.End], nil
}
