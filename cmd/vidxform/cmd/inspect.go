package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/vidxform/internal/report"
	"github.com/jmylchreest/vidxform/internal/transform"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Print the container header",
	Long: `Validate the header of input and print it with the derived frame and
payload sizes. The file is only read.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := transform.Inspect(args[0])
		if err != nil {
			return err
		}
		return report.WriteHeader(cmd.OutOrStdout(), args[0], h, report.SampleMemory(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
