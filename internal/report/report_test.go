package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
	"github.com/jmylchreest/vidxform/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Peak(t *testing.T) {
	assert.Equal(t, uint64(10), Memory{ProcessRSS: 5, ProcessPeakRSS: 10}.Peak())
	assert.Equal(t, uint64(5), Memory{ProcessRSS: 5}.Peak())
}

func TestSampleMemory(t *testing.T) {
	m := SampleMemory(context.Background())
	// Availability depends on the platform; the call itself must not fail or panic.
	assert.GreaterOrEqual(t, m.SystemTotal, m.SystemAvailable)
}

func TestBulkEstimate(t *testing.T) {
	h := container.Header{FrameCount: 10, Channels: 3, Height: 128, Width: 128}

	need, fits := BulkEstimate(h, Memory{})
	assert.Equal(t, int64(491520), need)
	assert.True(t, fits)

	_, fits = BulkEstimate(h, Memory{SystemAvailable: 1024})
	assert.False(t, fits)

	_, fits = BulkEstimate(h, Memory{SystemAvailable: 1 << 30})
	assert.True(t, fits)
}

func TestWriteResult(t *testing.T) {
	res := &transform.Result{
		Operation: "reverse",
		Input:     "in.vid",
		Output:    "out.vid",
		Header:    container.Header{FrameCount: 4, Channels: 2, Height: 2, Width: 2},
		Strategy:  "parallel",
		Workers:   4,
		Frames:    4,
		IO:        framestore.Stats{Reads: 1, Writes: 1, BytesRead: 32, BytesWritten: 32},
		Duration:  1500 * time.Microsecond,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, res, Memory{ProcessRSS: 2048, ProcessPeakRSS: 3 << 20}))

	out := buf.String()
	assert.Contains(t, out, "reverse: in.vid -> out.vid")
	assert.Contains(t, out, "4 frames, 2 channels, 2x2")
	assert.Contains(t, out, "parallel (workers: 4)")
	assert.Contains(t, out, "1.5ms")
	assert.Contains(t, out, "32B read, 32B written")
	assert.Contains(t, out, "3MB peak RSS")
}

func TestWriteHeader(t *testing.T) {
	h := container.Header{FrameCount: 2, Channels: 3, Height: 128, Width: 128}

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "clip.vid", h, Memory{}))

	out := buf.String()
	assert.Contains(t, out, "clip.vid")
	assert.Contains(t, out, "channel size: 16KB")
	assert.Contains(t, out, "frame size:   48KB")
	assert.Contains(t, out, "payload size: 96KB")
	assert.Contains(t, out, "fits available memory: true")
}
