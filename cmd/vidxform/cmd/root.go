// Package cmd implements the CLI commands for vidxform.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/jmylchreest/vidxform/internal/config"
	"github.com/jmylchreest/vidxform/internal/observability"
	"github.com/jmylchreest/vidxform/internal/version"
	"github.com/spf13/cobra"
)

// cfgFile holds the config file path from CLI flag.
var cfgFile string

// appConfig is loaded once per invocation in PersistentPreRunE.
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "vidxform",
	Short:   "Frame-buffer transforms for raw video containers",
	Version: version.Short(),
	Long: `vidxform applies frame-level transforms to raw video containers: an
11-byte header (frame count, channels, height, width) followed by
uncompressed 8-bit frames.

Every transform runs under one of three strategies:
  streaming  one frame in memory, one seek per frame (-M)
  bulk       whole payload in memory, one read and one write (-S)
  parallel   bulk, with frames transformed on a worker pool

Output is byte-identical across strategies. Channel arguments are 1-based.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// PersistentPreRunE is set in init() to avoid initialization cycle
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running transform; partial output is removed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	// Set PersistentPreRunE here to avoid initialization cycle
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return usageErrorf("%w", err)
		}
		appConfig = cfg
		if err := initLogging(cmd, cfg); err != nil {
			return err
		}
		if cfg.File != "" {
			slog.Debug("using config file", slog.String("path", cfg.File))
		}
		return nil
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	// These flags are NOT bound to viper. They override config/env values only
	// when Changed(), so the priority stays: CLI flag > env var > config > default.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .vidxform.yaml in ., $HOME or /etc/vidxform)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	flags.String("strategy", "streaming", "execution strategy (streaming, bulk, parallel)")
	flags.BoolP("speed", "S", false, "optimize for speed: load the whole payload (bulk strategy)")
	flags.BoolP("memory", "M", false, "optimize for memory: one frame at a time (streaming strategy)")
	flags.BoolP("parallel", "P", false, "transform frames on a worker pool (implies bulk)")
	flags.IntP("workers", "w", 0, "worker pool size for the parallel strategy (0 = GOMAXPROCS)")
	flags.String("max-payload-size", "1GB", "largest payload the bulk strategies will allocate (0 = unlimited)")
	flags.Bool("atomic", true, "write to a temporary file and rename it into place on success")
	flags.Bool("progress", false, "show a progress bar on stderr")
	flags.Bool("report", true, "print timing, I/O and memory usage after each run")
}

// initLogging configures the slog logger.
//
// Priority order (highest to lowest):
//  1. CLI flags (--log-level, --log-format) - only if explicitly provided
//  2. Environment variables (VIDXFORM_LOGGING_LEVEL, VIDXFORM_LOGGING_FORMAT)
//  3. Config file values
//  4. Built-in defaults (info, text)
func initLogging(cmd *cobra.Command, cfg *config.Config) error {
	logCfg := cfg.Logging

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		logCfg.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		logCfg.Format, _ = flags.GetString("log-format")
	}

	logCfg.Level = strings.ToLower(logCfg.Level)
	logCfg.Format = strings.ToLower(logCfg.Format)

	logger := observability.NewLoggerWithWriter(logCfg, cmd.ErrOrStderr())
	logger = observability.WithApp(logger, version.ApplicationName)
	observability.SetDefault(logger)

	return nil
}
