// Package csvsink persists a datalake.Dataset as one CSV file per entity set and reads it back.
//
// Every file starts with a header row naming all columns in a fixed order. Timestamps are rendered with
// datalake.TimestampLayout, dates with datalake.DateLayout, money with two decimals, and absent optional
// fields as empty cells. A manifest.json next to the CSV files records the row count of every written set.
//
// Usage:
//
//	sink, err := csvsink.NewSink("datalake_poc", csvsink.WithLogger(logger))
//	manifest, err := sink.Write(dataset)
//
//	dataset, err := csvsink.ReadDataset("datalake_poc")
//	manifest, err := csvsink.ReadManifest("datalake_poc")
package csvsink
