package postgresloader

import (
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

// rowsFor returns the values of one entity set in the column order of its table.
func rowsFor(set datalake.EntitySet, dataset datalake.Dataset) [][]any {
	switch set {
	case datalake.EntitySetClients:
		return mapRows(dataset.Clients, clientRow)
	case datalake.EntitySetProducts:
		return mapRows(dataset.Products, productRow)
	case datalake.EntitySetTransactions:
		return mapRows(dataset.Transactions, transactionRow)
	case datalake.EntitySetInteractions:
		return mapRows(dataset.Interactions, interactionRow)
	case datalake.EntitySetMarketData:
		return mapRows(dataset.MarketData, marketDataRow)
	default:
		return nil
	}
}

func mapRows[T any](records []T, toRow func(T) []any) [][]any {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, toRow(record))
	}

	return rows
}

func clientRow(c datalake.Client) []any {
	return []any{
		c.ID, c.Name, c.RegisteredAt.UTC(), c.Age, c.Gender, c.MonthlyIncome, c.NetWorth,
		string(c.RiskProfile), c.InvestmentObjective, c.LastInteractionAt.UTC(),
	}
}

func productRow(p datalake.Product) []any {
	return []any{
		p.ID, p.Name, string(p.Type), string(p.RiskLevel), p.Return12M, p.Return36M, p.AdministrationFee,
		p.MinimumInvestment, p.Liquidity, p.BenchmarkIndex, p.EconomicSector, p.Strategy, p.LaunchedAt.UTC(), p.Status,
	}
}

func transactionRow(t datalake.Transaction) []any {
	return []any{
		t.ID, t.ClientID, t.ProductID, string(t.Type), t.Amount, t.OccurredAt.UTC(), string(t.Status),
	}
}

func interactionRow(in datalake.Interaction) []any {
	return []any{
		in.ID, in.ClientID, nullable(in.ProductID), string(in.Type), in.OccurredAt.UTC(),
		nullable(in.DurationSeconds), nullable(in.SearchTerm),
	}
}

func marketDataRow(m datalake.MarketDataPoint) []any {
	return []any{
		m.Date.UTC().Format(datalake.DateLayout), m.IndexName, m.IndexValue, m.BenchmarkRate, m.ExchangeRate,
	}
}

// nullable turns an absent optional into SQL NULL.
func nullable[T any](value *T) any {
	if value == nil {
		return nil
	}

	return *value
}
