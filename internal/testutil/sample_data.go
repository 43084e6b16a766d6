// Package testutil provides test utilities including sample video generation.
package testutil

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/stretchr/testify/require"
)

// Video is an in-memory container: a header plus its payload.
type Video struct {
	Header  container.Header
	Payload []byte
}

// Geometry returns the derived sizes of the video.
func (v *Video) Geometry() container.Geometry {
	return v.Header.Geometry()
}

// Frame returns the bytes of frame i.
func (v *Video) Frame(i int) []byte {
	size := v.Geometry().FrameSize()
	return v.Payload[i*size : (i+1)*size]
}

// Plane returns the bytes of channel c in frame i.
func (v *Video) Plane(i, c int) []byte {
	size := v.Geometry().ChannelSize()
	frame := v.Frame(i)
	return frame[c*size : (c+1)*size]
}

// Bytes encodes the video in container format.
func (v *Video) Bytes() []byte {
	var buf bytes.Buffer
	hdr := container.Encode(v.Header)
	buf.Write(hdr[:])
	buf.Write(v.Payload)
	return buf.Bytes()
}

// Clone returns a deep copy.
func (v *Video) Clone() *Video {
	return &Video{Header: v.Header, Payload: bytes.Clone(v.Payload)}
}

// SampleVideoGenerator builds synthetic videos for tests.
type SampleVideoGenerator struct {
	rng *rand.Rand
}

// NewSampleVideoGenerator creates a generator with a random seed.
func NewSampleVideoGenerator() *SampleVideoGenerator {
	return &SampleVideoGenerator{
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewSampleVideoGeneratorWithSeed creates a generator with a fixed seed for
// reproducible output.
func NewSampleVideoGeneratorWithSeed(seed int64) *SampleVideoGenerator {
	return &SampleVideoGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Random returns a video with the given header and random pixels.
func (g *SampleVideoGenerator) Random(h container.Header) *Video {
	payload := make([]byte, h.Geometry().PayloadSize())
	g.rng.Read(payload)
	return &Video{Header: h, Payload: payload}
}

// RandomHeader returns a valid header with at most maxFrames frames and at
// least one channel, row and column.
func (g *SampleVideoGenerator) RandomHeader(maxFrames int) container.Header {
	return container.Header{
		FrameCount: int64(g.rng.Intn(maxFrames + 1)),
		Channels:   uint8(1 + g.rng.Intn(container.MaxChannels)),
		Height:     uint8(1 + g.rng.Intn(16)),
		Width:      uint8(1 + g.rng.Intn(16)),
	}
}

// ConstantFrames returns a video whose frame i is filled with values[i].
func ConstantFrames(channels, height, width uint8, values ...byte) *Video {
	h := container.Header{
		FrameCount: int64(len(values)),
		Channels:   channels,
		Height:     height,
		Width:      width,
	}
	frameSize := h.Geometry().FrameSize()
	payload := make([]byte, 0, len(values)*frameSize)
	for _, v := range values {
		payload = append(payload, bytes.Repeat([]byte{v}, frameSize)...)
	}
	return &Video{Header: h, Payload: payload}
}

// WriteFile writes v into dir under name and returns the path.
func WriteFile(t testing.TB, dir, name string, v *Video) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, v.Bytes(), 0o644))
	return path
}

// ReadFile parses a container file written by a transform.
func ReadFile(t testing.TB, path string) *Video {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	h, err := container.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	return &Video{Header: h, Payload: data[container.HeaderSize:]}
}
