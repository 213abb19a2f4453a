// Package postgresloader loads a datalake.Dataset into PostgreSQL.
//
// The loader creates the data lake tables if they are missing, optionally truncates them, and inserts
// every entity set in foreign key order: clients, products, transactions, interactions, market data.
// Inserts are batched multi-row statements built with goqu and carry ON CONFLICT DO NOTHING, so loading
// the same dataset twice leaves the tables unchanged.
//
// Loaders can be created from a pgxpool.Pool, a sql.DB (lib/pq) or a sqlx.DB:
//
//	loader, err := postgresloader.NewLoaderFromPGXPool(pool, postgresloader.WithBatchSize(500))
//	report, err := loader.Load(ctx, dataset)
//
// Open builds the connection from a driver name and a DSN and returns a close function with the loader.
package postgresloader
