package cmd

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/vidxform/internal/observability"
	"github.com/jmylchreest/vidxform/internal/report"
	"github.com/jmylchreest/vidxform/internal/transform"
)

// transformFunc runs one transform with the resolved options.
type transformFunc func(ctx context.Context, opts transform.Options) (*transform.Result, error)

// runTransform resolves settings, attaches a correlated logger and optional
// progress bar, runs fn and prints the report.
func runTransform(cmd *cobra.Command, fn transformFunc) error {
	settings, err := resolveSettings(cmd.Flags(), appConfig)
	if err != nil {
		return err
	}

	logger := observability.WithCorrelationID(slog.Default(), uuid.NewString())
	ctx := observability.ContextWithLogger(cmd.Context(), logger)

	var progress *progressObserver
	if settings.progress {
		progress = newProgressObserver(cmd.ErrOrStderr())
		settings.options.Observer = progress
	}

	res, err := fn(ctx, settings.options)
	if progress != nil {
		progress.finish()
	}
	if err != nil {
		return err
	}

	if settings.report {
		return report.WriteResult(cmd.OutOrStdout(), res, report.SampleMemory(ctx))
	}
	return nil
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// parseChannel converts a 1-based channel argument to a 0-based index.
func parseChannel(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil || n == 0 {
		return 0, usageErrorf("%w: %q is not a channel number (channels start at 1)", transform.ErrInvalidChannelIndex, s)
	}
	return uint8(n - 1), nil
}

// parseRange parses a "min,max" clip range. Surrounding brackets are allowed.
func parseRange(s string) (lo, hi uint8, err error) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "["), "]")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return 0, 0, usageErrorf("%w: %q must be min,max", transform.ErrInvalidRange, s)
	}

	bounds := make([]uint8, 2)
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return 0, 0, usageErrorf("%w: %q is not a pixel value in 0-255", transform.ErrInvalidRange, part)
		}
		bounds[i] = uint8(v)
	}
	return bounds[0], bounds[1], nil
}

// parseFactor parses a scale factor. Infinities are accepted and saturate.
func parseFactor(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil && !isRangeError(err) {
		return 0, usageErrorf("%w: %q", transform.ErrInvalidFactor, s)
	}
	if math.IsNaN(f) {
		return 0, usageErrorf("%w: %q", transform.ErrInvalidFactor, s)
	}
	return float32(f), nil
}

// isRangeError reports whether err is an out-of-range numeric error, for
// which ParseFloat still returns a usable ±Inf.
func isRangeError(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
}
