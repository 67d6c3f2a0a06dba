package main

import (
	"fmt"
	"os"

	"workorders/cmd"
	"workorders/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "workorders",
		Short:        "Work order lifecycle service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

// bootstrap loads the configuration and builds the logger every command runs with.
func bootstrap() (cmd.Config, *zap.Logger, error) {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: "stdout"})
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
