// Package transform applies frame-buffer transforms to raw video containers.
//
// Every transform has a streaming implementation, which holds one frame in
// memory, and a bulk implementation, which loads the payload with one read,
// transforms it sequentially or on a worker pool, and writes it with one
// write. Output is byte-identical across strategies.
//
// Channel indices are 0-based.
package transform

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/jmylchreest/vidxform/internal/container"
)

// Reverse writes the frames of input to output in reverse order.
func Reverse(ctx context.Context, input, output string, opts Options) (*Result, error) {
	return execute(ctx, reverseOp{}, input, output, opts)
}

// SwapChannels exchanges channel planes ch1 and ch2 in every frame.
// Swapping a channel with itself copies the video unchanged.
func SwapChannels(ctx context.Context, input, output string, ch1, ch2 uint8, opts Options) (*Result, error) {
	return execute(ctx, swapOp{ch1: ch1, ch2: ch2}, input, output, opts)
}

// ClipChannel clamps every pixel of channel into [lo, hi].
func ClipChannel(ctx context.Context, input, output string, channel, lo, hi uint8, opts Options) (*Result, error) {
	const op = "clip_channel"
	if lo > hi {
		return nil, newOpError(op, input, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, lo, hi))
	}
	return execute(ctx, planeOp{op: op, channel: channel, table: clipTable(lo, hi)}, input, output, opts)
}

// ScaleChannel multiplies every pixel of channel by factor, truncating toward
// zero and saturating to [0, 255].
func ScaleChannel(ctx context.Context, input, output string, channel uint8, factor float32, opts Options) (*Result, error) {
	const op = "scale_channel"
	if math.IsNaN(float64(factor)) {
		return nil, newOpError(op, input, fmt.Errorf("%w: %v", ErrInvalidFactor, factor))
	}
	return execute(ctx, planeOp{op: op, channel: channel, table: scaleTable(factor)}, input, output, opts)
}

// Inspect reads and validates the header of input.
func Inspect(input string) (container.Header, error) {
	f, err := os.Open(input)
	if err != nil {
		return container.Header{}, newOpError("inspect", input, fmt.Errorf("%w: opening input: %w", ErrIO, err))
	}
	defer f.Close()

	h, err := container.ReadHeader(f)
	if err != nil {
		return container.Header{}, newOpError("inspect", input, err)
	}
	if err := checkPayload(f, h.Geometry()); err != nil {
		return h, newOpError("inspect", input, err)
	}
	return h, nil
}
