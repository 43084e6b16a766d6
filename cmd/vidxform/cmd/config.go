package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/vidxform/internal/config"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing vidxform configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the effective configuration",
	Long: `Dump the configuration in YAML format.

By default this is the effective configuration: defaults, overlaid with the
config file and environment. Use --defaults to print the built-in defaults,
which makes a good starting template:

  vidxform config dump --defaults > .vidxform.yaml

Environment variables use the VIDXFORM_ prefix and underscores for nesting.
Example: transform.strategy -> VIDXFORM_TRANSFORM_STRATEGY`,
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print built-in defaults only")
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if configDefaults {
		v := viper.New()
		config.SetDefaults(v)

		var err error
		if cfg, err = config.FromViper(v); err != nil {
			return fmt.Errorf("loading defaults: %w", err)
		}
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# vidxform configuration")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Size format: 512MB, 1GB (0 disables the bulk payload cap)")
	fmt.Fprintln(out, "# Strategies: streaming, bulk, parallel")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Environment variable overrides:")
	fmt.Fprintln(out, "#   VIDXFORM_LOGGING_LEVEL, VIDXFORM_LOGGING_FORMAT")
	fmt.Fprintln(out, "#   VIDXFORM_TRANSFORM_STRATEGY, VIDXFORM_TRANSFORM_WORKERS")
	fmt.Fprintln(out, "#   VIDXFORM_OUTPUT_ATOMIC, VIDXFORM_OUTPUT_PROGRESS")
	fmt.Fprintln(out, "")
	fmt.Fprint(out, string(yamlData))

	return nil
}
