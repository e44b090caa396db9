package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic single-tape Turing machine simulator",
	Long: `Turing loads a machine description (line-oriented text, YAML or JSON),
runs it on a bi-infinite tape and prints the visited cells.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+cli.DefaultConfigPath+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// setup loads the config file and builds the logger. It exits on failure.
func setup(cmd *cobra.Command) (*cli.Config, *slog.Logger) {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if !required {
		path = cli.DefaultConfigPath
	}

	cfg, err := cli.LoadConfig(path, required)
	if err != nil {
		exitWithError(err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(debug, cfg)
	if err != nil {
		exitWithError(err)
	}
	return cfg, logger
}

// redisConfig merges the --redis flag over the config file.
func redisConfig(cmd *cobra.Command, cfg *cli.Config) cli.RedisConfig {
	rc := cfg.Redis
	if cmd.Flags().Changed("redis") {
		rc.Addr, _ = cmd.Flags().GetString("redis")
	}
	if cmd.Flags().Changed("redis-prefix") {
		rc.Prefix, _ = cmd.Flags().GetString("redis-prefix")
	}
	if cmd.Flags().Changed("redis-steps") {
		rc.Steps, _ = cmd.Flags().GetBool("redis-steps")
	}
	return rc
}

// maxSteps merges the --max-steps flag over the config file.
func maxSteps(cmd *cobra.Command, cfg *cli.Config) int {
	if cmd.Flags().Changed("max-steps") {
		n, _ := cmd.Flags().GetInt("max-steps")
		return n
	}
	return cfg.MaxSteps
}

func addRedisFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis", "", "Redis address to publish halt events to (e.g. localhost:6379)")
	cmd.Flags().String("redis-prefix", "", "Channel prefix for published events (default \"turing:\")")
	cmd.Flags().Bool("redis-steps", false, "Also publish every step event on <prefix>steps")
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
