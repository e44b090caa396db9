package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes machine execution as MCP tools (run_machine, describe_machine,
render_graph), so agents can run machines they write.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		opts := cli.ServeOptions{
			MaxSteps: maxSteps(cmd, cfg),
			Redis:    redisConfig(cmd, cfg),
		}
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.ServeMCP(ctx, transport, port, opts, logger); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().IntP("max-steps", "n", 0, "Per-call step cap (default 1000000)")
	addRedisFlags(mcpCmd)
}
