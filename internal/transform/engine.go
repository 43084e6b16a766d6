package transform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jmylchreest/vidxform/internal/container"
	"github.com/jmylchreest/vidxform/internal/framestore"
	"github.com/jmylchreest/vidxform/internal/observability"
)

// operation is one transform, implemented once per strategy.
type operation interface {
	name() string
	validate(geo container.Geometry) error
	stream(ctx context.Context, s *framestore.Streaming, obs Observer) error
	bulk(ctx context.Context, b *framestore.Bulk, p policy, obs Observer) error
}

// execute runs op from input to output:
// open input, parse header, validate, open output, write header, body, close.
// Any failure aborts the operation; every file handle is released on return.
func execute(ctx context.Context, op operation, input, output string, opts Options) (res *Result, err error) {
	logger := observability.WithComponent(observability.LoggerFromContext(ctx), "transform")
	logger = observability.WithOperation(logger, op.name())
	done := observability.TimedOperationWithError(ctx, logger, op.name(), &err)
	defer done()

	start := time.Now()

	switch opts.Strategy {
	case Streaming, BulkSequential, BulkParallel:
	default:
		return nil, newOpError(op.name(), input, fmt.Errorf("%w: %v", ErrUnknownStrategy, opts.Strategy))
	}
	if !opts.Atomic && sameFile(input, output) {
		return nil, newOpError(op.name(), output, ErrSameFile)
	}

	in, err := os.Open(input)
	if err != nil {
		return nil, newOpError(op.name(), input, fmt.Errorf("%w: opening input: %w", ErrIO, err))
	}
	defer in.Close()

	h, err := container.ReadHeader(in)
	if err != nil {
		return nil, newOpError(op.name(), input, err)
	}
	geo := h.Geometry()
	logger.DebugContext(ctx, "header parsed",
		slog.Int64("frames", h.FrameCount),
		slog.Int("channels", int(h.Channels)),
		slog.Int("height", int(h.Height)),
		slog.Int("width", int(h.Width)),
		slog.Int("frame_size", geo.FrameSize()),
		slog.String("strategy", opts.Strategy.String()))

	if err := checkPayload(in, geo); err != nil {
		return nil, newOpError(op.name(), input, err)
	}
	if err := op.validate(geo); err != nil {
		return nil, newOpError(op.name(), input, err)
	}

	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	// The payload buffer is allocated before the output exists so a refused
	// allocation leaves nothing behind.
	var bulk *framestore.Bulk
	if opts.Strategy.IsBulk() {
		bulk, err = framestore.NewBulk(geo, opts.MaxPayloadSize)
		if err != nil {
			return nil, newOpError(op.name(), input, err)
		}
	}

	out, err := createOutput(output, opts.Atomic)
	if err != nil {
		return nil, newOpError(op.name(), output, err)
	}
	defer out.abort()

	if err := container.WriteHeader(out, h); err != nil {
		return nil, newOpError(op.name(), output, fmt.Errorf("%w: %w", ErrIO, err))
	}

	obs.Begin(h, opts.Strategy)

	res = &Result{
		Operation: op.name(),
		Input:     input,
		Output:    output,
		Header:    h,
		Strategy:  opts.Strategy.String(),
		Workers:   1,
		Frames:    h.FrameCount,
	}

	var store framestore.Store
	if bulk == nil {
		s := framestore.NewStreaming(geo, in, out)
		store = s
		if err := op.stream(ctx, s, obs); err != nil {
			return nil, newOpError(op.name(), input, err)
		}
	} else {
		store = bulk
		if err := bulk.LoadAll(in); err != nil {
			return nil, newOpError(op.name(), input, err)
		}
		p := policyFor(opts)
		res.Workers = p.workers()
		if err := op.bulk(ctx, bulk, p, obs); err != nil {
			return nil, newOpError(op.name(), input, err)
		}
		if err := bulk.StoreAll(out); err != nil {
			return nil, newOpError(op.name(), output, err)
		}
	}
	res.IO = store.Stats()

	if err := out.commit(); err != nil {
		return nil, newOpError(op.name(), output, err)
	}

	res.Duration = time.Since(start)
	logger.InfoContext(ctx, "video saved",
		slog.String("output", output),
		slog.Int64("frames", res.Frames),
		slog.Int("workers", res.Workers))

	return res, nil
}

// checkPayload rejects a regular file shorter than its header declares before
// any output is created.
func checkPayload(f *os.File, geo container.Geometry) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat input: %w", ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	if info.Size() < geo.FileSize() {
		return fmt.Errorf("%w: payload truncated, file has %d bytes, header declares %d: %w",
			ErrIO, info.Size(), geo.FileSize(), io.ErrUnexpectedEOF)
	}
	return nil
}

// checkChannel maps an out-of-range channel to ErrInvalidChannelIndex.
func checkChannel(geo container.Geometry, ch uint8) error {
	if err := geo.CheckChannel(int(ch)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChannelIndex, err)
	}
	return nil
}
