package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the state diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR) of the machine's states and transitions.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Graph(args[0], os.Stdout); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
