// Package datalake provides the entity model of the synthetic data lake together with
// the category rules and consistency checks shared by its producers and consumers.
//
// The data lake consists of five entity sets:
//   - Client: registered investors with demographic and financial attributes
//   - Product: investment products whose risk and returns correlate with the product type
//   - Transaction: deposits and withdrawals of one client into one product
//   - Interaction: digital touch points of one client, optionally about one product
//   - MarketDataPoint: one row per calendar day of index, rate and exchange values
//
// Key types:
//   - Dataset: all entity sets of a single run
//   - ProductRule, InteractionRule: table-driven rules for category-conditional fields
//   - Report: the result of a post-hoc consistency scan
//
// Common usage pattern:
//
//	dataset, err := gen.Generate(generator.DefaultCounts())
//	if err != nil {
//		// handle error
//	}
//
//	report := datalake.Verify(dataset)
//	if !report.OK() {
//		return report.Err()
//	}
package datalake
