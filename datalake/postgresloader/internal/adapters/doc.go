// Package adapters let the data lake loader run on any of the supported PostgreSQL client libraries:
// pgxpool.Pool, sql.DB (lib/pq) and sqlx.DB.
//
// All adapters expose the same DBAdapter interface, so the loader builds its statements once
// and executes them through whichever connection type the caller configured.
package adapters
