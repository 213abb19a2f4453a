package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/synthetic-datalake-go/internal/config"
	"github.com/AntonStoeckl/synthetic-datalake-go/internal/logging"
)

// app carries what PersistentPreRunE resolved for the executed command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "datalake",
		Short: "Synthetic data lake generator for an investment platform",
		Long: `datalake produces clients, products, transactions, interactions and daily market data
as CSV files whose references and timestamps are mutually consistent.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configFile, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			a.cfg = cfg
			a.logger = logger

			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file path (YAML)")
	rootCmd.PersistentFlags().String("output-dir", "datalake_poc", "directory holding the CSV files")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newLoadCmd(a))

	return rootCmd
}
