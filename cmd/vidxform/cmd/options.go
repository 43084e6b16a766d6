package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/vidxform/internal/config"
	"github.com/jmylchreest/vidxform/internal/transform"
)

// runSettings are the effective per-run settings after flags are applied
// over configuration.
type runSettings struct {
	options  transform.Options
	progress bool
	report   bool
}

// resolveSettings merges explicitly set flags over cfg.
func resolveSettings(flags *pflag.FlagSet, cfg *config.Config) (runSettings, error) {
	strategy, err := resolveStrategy(flags, cfg.Transform.Strategy)
	if err != nil {
		return runSettings{}, err
	}

	s := runSettings{
		options: transform.Options{
			Strategy:       strategy,
			Workers:        cfg.Transform.Workers,
			MaxPayloadSize: cfg.Transform.MaxPayloadSize.Bytes(),
			Atomic:         cfg.Output.Atomic,
		},
		progress: cfg.Output.Progress,
		report:   cfg.Output.Report,
	}

	if flags.Changed("workers") {
		s.options.Workers, _ = flags.GetInt("workers")
		if s.options.Workers < 0 {
			return runSettings{}, usageErrorf("--workers must not be negative")
		}
	}
	if flags.Changed("max-payload-size") {
		raw, _ := flags.GetString("max-payload-size")
		size, err := config.ParseByteSize(raw)
		if err != nil {
			return runSettings{}, usageErrorf("--max-payload-size: %w", err)
		}
		s.options.MaxPayloadSize = size.Bytes()
	}
	if flags.Changed("atomic") {
		s.options.Atomic, _ = flags.GetBool("atomic")
	}
	if flags.Changed("progress") {
		s.progress, _ = flags.GetBool("progress")
	}
	if flags.Changed("report") {
		s.report, _ = flags.GetBool("report")
	}

	return s, nil
}

// resolveStrategy applies -S, -M, --parallel and --strategy over the
// configured strategy. -S and -M are mutually exclusive, and neither may be
// combined with --strategy.
func resolveStrategy(flags *pflag.FlagSet, configured string) (transform.Strategy, error) {
	speed, _ := flags.GetBool("speed")
	memory, _ := flags.GetBool("memory")
	parallel, _ := flags.GetBool("parallel")

	if speed && memory {
		return 0, usageErrorf("-S and -M are mutually exclusive")
	}
	if (speed || memory) && flags.Changed("strategy") {
		return 0, usageErrorf("-S/-M cannot be combined with --strategy")
	}
	if memory && parallel {
		return 0, usageErrorf("--parallel requires a bulk strategy, not -M")
	}

	name := configured
	if flags.Changed("strategy") {
		name, _ = flags.GetString("strategy")
	}

	var strategy transform.Strategy
	switch {
	case speed:
		strategy = transform.BulkSequential
	case memory:
		strategy = transform.Streaming
	default:
		parsed, err := transform.ParseStrategy(name)
		if err != nil {
			return 0, usageErrorf("%w", err)
		}
		strategy = parsed
	}

	if parallel {
		if strategy == transform.Streaming && flags.Changed("strategy") {
			return 0, usageErrorf("--parallel requires a bulk strategy, not %q", name)
		}
		strategy = transform.BulkParallel
	}

	return strategy, nil
}

// usageError marks an error caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
