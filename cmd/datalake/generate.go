package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/csvsink"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/generator"
)

func newGenerateCmd(a *app) *cobra.Command {
	counts := generator.DefaultCounts()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the data lake CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generate()
		},
	}

	cmd.Flags().Int64("seed", 0, "seed for reproducible attribute values (0 = random)")
	cmd.Flags().String("id-strategy", string(generator.IDStrategySequential), "identifier strategy (sequential, uuid)")
	cmd.Flags().Int("clients", counts.Clients, "number of clients")
	cmd.Flags().Int("products", counts.Products, "number of products")
	cmd.Flags().Int("transactions", counts.Transactions, "number of transactions")
	cmd.Flags().Int("interactions", counts.Interactions, "number of interactions")
	cmd.Flags().Bool("market-data", true, "generate the daily market data series")
	cmd.Flags().String("market-data-start", "2020-01-01", "first day of the market data series")
	cmd.Flags().String("market-data-end", "", "last day of the market data series (default today)")
	cmd.Flags().String("index-name", "Ibovespa", "name of the market index")

	return cmd
}

func (a *app) generate() error {
	start := time.Now()

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	options, err := a.cfg.GeneratorOptions()
	if err != nil {
		return err
	}

	gen, err := generator.NewGenerator(append(options, generator.WithLogger(a.logger))...)
	if err != nil {
		return err
	}

	dataset, err := gen.Generate(a.cfg.GeneratorCounts())
	if err != nil {
		return err
	}

	if err = datalake.Verify(dataset).Err(); err != nil {
		return fmt.Errorf("generated dataset is inconsistent: %w", err)
	}

	sink, err := csvsink.NewSink(a.cfg.OutputDir,
		csvsink.WithLogger(a.logger),
		csvsink.WithMetadata("seed", strconv.FormatInt(a.cfg.Seed, 10)),
		csvsink.WithMetadata("id_strategy", a.cfg.IDStrategy),
	)
	if err != nil {
		return err
	}

	if _, err = sink.Write(dataset); err != nil {
		return err
	}

	a.logger.Info("data lake generated",
		"output_dir", a.cfg.OutputDir,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	return nil
}
