package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a machine and print the tape",
	Long: `Loads the machine description, runs it from the start state until it reaches
the final state and prints the visited tape cells, leftmost first, as one line.

The format is picked by extension: .yaml/.yml and .json are definitions,
anything else is the line-oriented text format.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)

		opts := cli.RunOptions{
			Path:     args[0],
			MaxSteps: maxSteps(cmd, cfg),
			Redis:    redisConfig(cmd, cfg),
		}
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Info, _ = cmd.Flags().GetBool("info")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Summary, _ = cmd.Flags().GetBool("summary")
		opts.Trace, _ = cmd.Flags().GetBool("trace")
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.Run(ctx, opts, logger, os.Stdout, os.Stderr); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Initial tape, one character per symbol (overrides the file's input)")
	runCmd.Flags().IntP("max-steps", "n", 0, "Stop after this many steps (0 = unbounded)")
	runCmd.Flags().Bool("info", false, "Print the machine configuration before running")
	runCmd.Flags().Bool("json", false, "Print the result as JSON")
	runCmd.Flags().Bool("summary", false, "Print a status line on stderr")
	runCmd.Flags().Bool("trace", false, "Print a Mermaid graph of the visited states after the tape")
	addRedisFlags(runCmd)
}
