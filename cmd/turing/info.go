package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the machine configuration",
	Long:  `Prints the alphabet, states, start and final states and the transition table.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if err := cli.Info(args[0], plain, os.Stdout); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	infoCmd.Flags().Bool("plain", false, "Print a plain table instead of markdown")
	rootCmd.AddCommand(infoCmd)
}
