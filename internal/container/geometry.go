package container

import "fmt"

// Geometry holds the sizes derived from a Header. It is computed once per
// operation and every offset in the repo goes through it.
type Geometry struct {
	header      Header
	channelSize int
	frameSize   int
	payloadSize int64
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Start
}

// Header returns the header the geometry was derived from.
func (g Geometry) Header() Header { return g.header }

// FrameCount returns the number of frames.
func (g Geometry) FrameCount() int64 { return g.header.FrameCount }

// Channels returns the number of channel planes per frame.
func (g Geometry) Channels() int { return int(g.header.Channels) }

// ChannelSize is Height × Width bytes.
func (g Geometry) ChannelSize() int { return g.channelSize }

// FrameSize is Channels × ChannelSize bytes.
func (g Geometry) FrameSize() int { return g.frameSize }

// PayloadSize is FrameCount × FrameSize bytes.
func (g Geometry) PayloadSize() int64 { return g.payloadSize }

// FileSize is the total container size including the header.
func (g Geometry) FileSize() int64 { return HeaderSize + g.payloadSize }

// FrameOffset returns the absolute file offset of frame i.
func (g Geometry) FrameOffset(i int64) (int64, error) {
	if err := g.CheckFrame(i); err != nil {
		return 0, err
	}
	return HeaderSize + i*int64(g.frameSize), nil
}

// FrameSpan returns the byte range of frame i within the payload.
func (g Geometry) FrameSpan(i int64) (Span, error) {
	if err := g.CheckFrame(i); err != nil {
		return Span{}, err
	}
	start := int(i) * g.frameSize
	return Span{Start: start, End: start + g.frameSize}, nil
}

// ChannelOffset returns the offset of channel c within a frame.
func (g Geometry) ChannelOffset(c int) (int, error) {
	if err := g.CheckChannel(c); err != nil {
		return 0, err
	}
	return c * g.channelSize, nil
}

// ChannelSpan returns the byte range of channel c within a frame.
func (g Geometry) ChannelSpan(c int) (Span, error) {
	off, err := g.ChannelOffset(c)
	if err != nil {
		return Span{}, err
	}
	return Span{Start: off, End: off + g.channelSize}, nil
}

// CheckFrame reports whether i addresses an existing frame.
func (g Geometry) CheckFrame(i int64) error {
	if i < 0 || i >= g.header.FrameCount {
		return fmt.Errorf("%w: %d (frames=%d)", ErrFrameIndex, i, g.header.FrameCount)
	}
	return nil
}

// CheckChannel reports whether c addresses an existing channel. The bound is
// exclusive: c == Channels is out of range.
func (g Geometry) CheckChannel(c int) error {
	if c < 0 || c >= int(g.header.Channels) {
		return fmt.Errorf("%w: %d (channels=%d)", ErrChannelIndex, c, g.header.Channels)
	}
	return nil
}
