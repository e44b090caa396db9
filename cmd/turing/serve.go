package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Exposes machine execution as a JSON API over HTTP. Every request carries its
own machine description; nothing is kept between requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)

		opts := cli.ServeOptions{
			Addr:     cfg.Addr,
			MaxSteps: maxSteps(cmd, cfg),
			Redis:    redisConfig(cmd, cfg),
		}
		if cmd.Flags().Changed("addr") || opts.Addr == "" {
			opts.Addr, _ = cmd.Flags().GetString("addr")
		}
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(cmd.ErrOrStderr())
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.Serve(ctx, opts, logger); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().IntP("max-steps", "n", 0, "Per-request step cap (default 1000000)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	addRedisFlags(serveCmd)
}
