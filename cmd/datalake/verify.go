package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/csvsink"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the CSV files for referential and temporal consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.verify(); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: consistent\n", a.cfg.OutputDir)

			return err
		},
	}
}

func (a *app) verify() error {
	dataset, err := csvsink.ReadDataset(a.cfg.OutputDir)
	if err != nil {
		return err
	}

	manifest, err := csvsink.ReadManifest(a.cfg.OutputDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.logger.Warn("manifest missing, row counts not compared", "output_dir", a.cfg.OutputDir)
	case err != nil:
		return err
	default:
		if err = csvsink.CompareRowCounts(manifest, dataset); err != nil {
			return err
		}
	}

	report := datalake.Verify(dataset)
	for _, violation := range report.Violations {
		a.logger.Error("consistency violation",
			"set", string(violation.Set),
			"id", violation.ID,
			"reason", violation.Reason,
		)
	}

	if err = report.Err(); err != nil {
		return fmt.Errorf("%w: %d violations", datalake.ErrConsistencyViolated, len(report.Violations))
	}

	for set, rows := range dataset.RowCounts() {
		a.logger.Debug("entity set verified", "set", string(set), "rows", rows)
	}

	return nil
}
