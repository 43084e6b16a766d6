package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/vidxform/internal/transform"
)

var reverseCmd = &cobra.Command{
	Use:   "reverse <input> <output>",
	Short: "Reverse the frame order",
	Long: `Write the frames of input to output in reverse order. Reversing twice
restores the original file.`,
	Example: `  vidxform reverse in.vid out.vid
  vidxform -S reverse in.vid out.vid`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, func(ctx context.Context, opts transform.Options) (*transform.Result, error) {
			return transform.Reverse(ctx, args[0], args[1], opts)
		})
	},
}

var swapCmd = &cobra.Command{
	Use:     "swap-channel <input> <output> <ch1> <ch2>",
	Aliases: []string{"swap_channel", "swap"},
	Short:   "Swap two channels in every frame",
	Long: `Exchange the planes of channels ch1 and ch2 (1-based) in every frame.
Swapping a channel with itself copies the video unchanged.`,
	Example: `  vidxform swap-channel in.vid out.vid 1 3`,
	Args:    usageArgs(cobra.ExactArgs(4)),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch1, err := parseChannel(args[2])
		if err != nil {
			return err
		}
		ch2, err := parseChannel(args[3])
		if err != nil {
			return err
		}
		return runTransform(cmd, func(ctx context.Context, opts transform.Options) (*transform.Result, error) {
			return transform.SwapChannels(ctx, args[0], args[1], ch1, ch2, opts)
		})
	},
}

var clipCmd = &cobra.Command{
	Use:     "clip-channel <input> <output> <channel> <min,max>",
	Aliases: []string{"clip_channel", "clip"},
	Short:   "Clamp one channel into a range",
	Long: `Clamp every pixel of channel (1-based) into the inclusive range
[min, max]. Other channels are copied unchanged.`,
	Example: `  vidxform clip-channel in.vid out.vid 2 10,200`,
	Args:    usageArgs(cobra.ExactArgs(4)),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, err := parseChannel(args[2])
		if err != nil {
			return err
		}
		lo, hi, err := parseRange(args[3])
		if err != nil {
			return err
		}
		return runTransform(cmd, func(ctx context.Context, opts transform.Options) (*transform.Result, error) {
			return transform.ClipChannel(ctx, args[0], args[1], channel, lo, hi, opts)
		})
	},
}

var scaleCmd = &cobra.Command{
	Use:     "scale-channel <input> <output> <channel> <factor>",
	Aliases: []string{"scale_channel", "scale"},
	Short:   "Scale one channel by a factor",
	Long: `Multiply every pixel of channel (1-based) by factor. Results are
truncated toward zero and saturated to 0-255.`,
	Example: `  vidxform scale-channel in.vid out.vid 1 1.5`,
	Args:    usageArgs(cobra.ExactArgs(4)),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, err := parseChannel(args[2])
		if err != nil {
			return err
		}
		factor, err := parseFactor(args[3])
		if err != nil {
			return err
		}
		return runTransform(cmd, func(ctx context.Context, opts transform.Options) (*transform.Result, error) {
			return transform.ScaleChannel(ctx, args[0], args[1], channel, factor, opts)
		})
	},
}

func init() {
	rootCmd.AddCommand(reverseCmd, swapCmd, clipCmd, scaleCmd)
}
