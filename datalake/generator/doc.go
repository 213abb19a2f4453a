// Package generator produces synthetic, mutually consistent data lake entity sets.
//
// A Generator draws every attribute from configurable value pools and numeric ranges, or through
// the category rules of the datalake package, while keeping two kinds of consistency:
//   - Referential: transactions and interactions only reference clients and products of the same run
//   - Temporal: a dependent record never predates the records it references
//
// Temporal lower bounds are combined with LatestOf and the dependent timestamp is drawn uniformly
// between that bound and the generator's clock. A bound that lies after the clock is rejected with
// datalake.ErrTimeWindowInverted instead of being clamped, because clamping would produce a record
// that predates its references.
//
// Usage examples:
//
//	// Proof-of-concept defaults: 1000 clients, 50 products, 5000 transactions,
//	// 10000 interactions and daily market data since 2020-01-01
//	gen, _ := generator.NewGenerator()
//	dataset, err := gen.Generate(generator.DefaultCounts())
//
//	// Reproducible attribute values and structured logging
//	gen, _ := generator.NewGenerator(
//		generator.WithSeed(42),
//		generator.WithClock(func() time.Time { return fixedNow }),
//		generator.WithLogger(slog.Default()),
//	)
//
//	// UUIDv7 identifiers instead of prefixed sequence numbers
//	gen, _ := generator.NewGenerator(generator.WithIDStrategy(generator.IDStrategyUUID))
package generator
