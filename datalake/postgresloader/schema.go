package postgresloader

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

type column struct {
	name    string
	sqlType string
}

type tableSchema struct {
	set        datalake.EntitySet
	columns    []column
	primaryKey []string
	references []string
}

// tables lists the data lake tables in foreign key order.
var tables = []tableSchema{
	{
		set: datalake.EntitySetClients,
		columns: []column{
			{colClientID, "TEXT NOT NULL"},
			{"name", "TEXT NOT NULL"},
			{"registered_at", "TIMESTAMPTZ NOT NULL"},
			{"age", "INTEGER NOT NULL"},
			{"gender", "TEXT NOT NULL"},
			{"monthly_income", "NUMERIC(14,2) NOT NULL"},
			{"net_worth", "NUMERIC(16,2) NOT NULL"},
			{"risk_profile", "TEXT NOT NULL"},
			{"investment_objective", "TEXT NOT NULL"},
			{"last_interaction_at", "TIMESTAMPTZ NOT NULL"},
		},
		primaryKey: []string{colClientID},
	},
	{
		set: datalake.EntitySetProducts,
		columns: []column{
			{colProductID, "TEXT NOT NULL"},
			{"name", "TEXT NOT NULL"},
			{"product_type", "TEXT NOT NULL"},
			{"risk_level", "TEXT NOT NULL"},
			{"return_12m", "DOUBLE PRECISION NOT NULL"},
			{"return_36m", "DOUBLE PRECISION NOT NULL"},
			{"administration_fee", "DOUBLE PRECISION NOT NULL"},
			{"minimum_investment", "NUMERIC(14,2) NOT NULL"},
			{"liquidity", "TEXT NOT NULL"},
			{"benchmark_index", "TEXT NOT NULL"},
			{"economic_sector", "TEXT NOT NULL"},
			{"strategy", "TEXT NOT NULL"},
			{"launched_at", "TIMESTAMPTZ NOT NULL"},
			{"status", "TEXT NOT NULL"},
		},
		primaryKey: []string{colProductID},
	},
	{
		set: datalake.EntitySetTransactions,
		columns: []column{
			{"transaction_id", "TEXT NOT NULL"},
			{colClientID, "TEXT NOT NULL"},
			{colProductID, "TEXT NOT NULL"},
			{"transaction_type", "TEXT NOT NULL"},
			{"amount", "NUMERIC(14,2) NOT NULL"},
			{"occurred_at", "TIMESTAMPTZ NOT NULL"},
			{"status", "TEXT NOT NULL"},
		},
		primaryKey: []string{"transaction_id"},
		references: []string{
			fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", colClientID, datalake.EntitySetClients, colClientID),
			fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", colProductID, datalake.EntitySetProducts, colProductID),
		},
	},
	{
		set: datalake.EntitySetInteractions,
		columns: []column{
			{"interaction_id", "TEXT NOT NULL"},
			{colClientID, "TEXT NOT NULL"},
			{colProductID, "TEXT"},
			{"interaction_type", "TEXT NOT NULL"},
			{"occurred_at", "TIMESTAMPTZ NOT NULL"},
			{"duration_seconds", "INTEGER"},
			{"search_term", "TEXT"},
		},
		primaryKey: []string{"interaction_id"},
		references: []string{
			fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", colClientID, datalake.EntitySetClients, colClientID),
			fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", colProductID, datalake.EntitySetProducts, colProductID),
		},
	},
	{
		set: datalake.EntitySetMarketData,
		columns: []column{
			{"date", "DATE NOT NULL"},
			{"index_name", "TEXT NOT NULL"},
			{"index_value", "DOUBLE PRECISION NOT NULL"},
			{"benchmark_rate", "DOUBLE PRECISION NOT NULL"},
			{"exchange_rate", "DOUBLE PRECISION NOT NULL"},
		},
		primaryKey: []string{"date", "index_name"},
	},
}

func (t tableSchema) columnNames() []any {
	names := make([]any, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.name)
	}

	return names
}

// createStatement renders CREATE TABLE IF NOT EXISTS for the table.
// goqu has no DDL support, so the statement is assembled from the column list.
func (t tableSchema) createStatement() string {
	definitions := make([]string, 0, len(t.columns)+1+len(t.references))
	for _, c := range t.columns {
		definitions = append(definitions, fmt.Sprintf("%s %s", c.name, c.sqlType))
	}

	definitions = append(definitions, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(t.primaryKey, ", ")))
	definitions = append(definitions, t.references...)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.set, strings.Join(definitions, ",\n\t"))
}

// truncateStatement empties all data lake tables in one statement, which satisfies the foreign keys.
func truncateStatement() string {
	names := make([]string, 0, len(tables))
	for i := len(tables) - 1; i >= 0; i-- {
		names = append(names, string(tables[i].set))
	}

	return "TRUNCATE TABLE " + strings.Join(names, ", ")
}
