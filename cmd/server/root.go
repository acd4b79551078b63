package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/mockinterview/pkg/config"
	"github.com/artem13815/mockinterview/pkg/logger"
)

const appName = "mock-interview"

var (
	jsonLogs  bool
	debugLogs bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "mock-interview runs the interview practice API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// serve is the default action
		RunE: runServe,
	}
)

// Execute executes the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging (overrides LOG_JSON)")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup loads configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("json") {
		cfg.LogJSON = jsonLogs
	}
	if cmd.Flags().Changed("debug") {
		cfg.LogDebug = debugLogs
	}
	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
