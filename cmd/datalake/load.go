package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/csvsink"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/postgresloader"
)

func newLoadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the CSV files into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Context())
		},
	}

	cmd.Flags().String("db-driver", postgresloader.DriverPGX, "connection type (pgx, sql, sqlx)")
	cmd.Flags().String("dsn", "", "PostgreSQL connection string")
	cmd.Flags().Int("batch-size", 1000, "rows per INSERT statement")
	cmd.Flags().Bool("truncate", false, "empty the tables before loading")

	return cmd
}

func (a *app) load(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := a.cfg.ValidateDatabase(); err != nil {
		return err
	}

	dataset, err := csvsink.ReadDataset(a.cfg.OutputDir)
	if err != nil {
		return err
	}

	loader, closeDB, err := postgresloader.Open(ctx, a.cfg.Database.Driver, a.cfg.Database.DSN,
		postgresloader.WithLogger(a.logger),
		postgresloader.WithBatchSize(a.cfg.Database.BatchSize),
		postgresloader.WithTruncate(a.cfg.Database.Truncate),
	)
	if err != nil {
		return err
	}
	defer closeDB()

	report, err := loader.Load(ctx, dataset)
	if err != nil {
		return err
	}

	counts, err := loader.Count(ctx)
	if err != nil {
		return err
	}

	for set, rows := range counts {
		a.logger.Info("table rows", "set", string(set), "rows", rows, "inserted", report.Sets[set].Inserted)
	}

	a.logger.Info("data lake loaded", "duration_ms", float64(report.Duration.Microseconds())/1000.0)

	return nil
}
