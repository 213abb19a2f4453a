package csvsink

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

// table binds an entity set to its file layout.
type table[T any] struct {
	set    datalake.EntitySet
	header []string
	encode func(T) []string
	decode func(record []string) (T, error)
}

// FileName returns the name of the CSV file holding the given entity set.
func FileName(set datalake.EntitySet) string {
	return string(set) + ".csv"
}

// Header returns the column names of the given entity set in file order.
func Header(set datalake.EntitySet) []string {
	switch set {
	case datalake.EntitySetClients:
		return clientsTable.header
	case datalake.EntitySetProducts:
		return productsTable.header
	case datalake.EntitySetTransactions:
		return transactionsTable.header
	case datalake.EntitySetInteractions:
		return interactionsTable.header
	case datalake.EntitySetMarketData:
		return marketDataTable.header
	default:
		return nil
	}
}

var clientsTable = table[datalake.Client]{
	set: datalake.EntitySetClients,
	header: []string{
		"client_id", "name", "registered_at", "age", "gender", "monthly_income", "net_worth",
		"risk_profile", "investment_objective", "last_interaction_at",
	},
	encode: func(c datalake.Client) []string {
		return []string{
			c.ID,
			c.Name,
			formatTimestamp(c.RegisteredAt),
			strconv.Itoa(c.Age),
			c.Gender,
			formatMoney(c.MonthlyIncome),
			formatMoney(c.NetWorth),
			string(c.RiskProfile),
			c.InvestmentObjective,
			formatTimestamp(c.LastInteractionAt),
		}
	},
	decode: func(r []string) (datalake.Client, error) {
		p := &fieldParser{record: r}
		c := datalake.Client{
			ID:                  p.text(0),
			Name:                p.text(1),
			RegisteredAt:        p.timestamp(2, "registered_at"),
			Age:                 p.integer(3, "age"),
			Gender:              p.text(4),
			MonthlyIncome:       p.money(5, "monthly_income"),
			NetWorth:            p.money(6, "net_worth"),
			RiskProfile:         datalake.RiskProfile(p.text(7)),
			InvestmentObjective: p.text(8),
			LastInteractionAt:   p.timestamp(9, "last_interaction_at"),
		}

		return c, p.err
	},
}

var productsTable = table[datalake.Product]{
	set: datalake.EntitySetProducts,
	header: []string{
		"product_id", "name", "product_type", "risk_level", "return_12m", "return_36m", "administration_fee",
		"minimum_investment", "liquidity", "benchmark_index", "economic_sector", "strategy", "launched_at", "status",
	},
	encode: func(p datalake.Product) []string {
		return []string{
			p.ID,
			p.Name,
			string(p.Type),
			string(p.RiskLevel),
			formatRatio(p.Return12M),
			formatRatio(p.Return36M),
			formatRatio(p.AdministrationFee),
			formatMoney(p.MinimumInvestment),
			p.Liquidity,
			p.BenchmarkIndex,
			p.EconomicSector,
			p.Strategy,
			formatTimestamp(p.LaunchedAt),
			p.Status,
		}
	},
	decode: func(r []string) (datalake.Product, error) {
		fp := &fieldParser{record: r}
		p := datalake.Product{
			ID:                fp.text(0),
			Name:              fp.text(1),
			Type:              datalake.ProductType(fp.text(2)),
			RiskLevel:         datalake.RiskLevel(fp.text(3)),
			Return12M:         fp.ratio(4, "return_12m"),
			Return36M:         fp.ratio(5, "return_36m"),
			AdministrationFee: fp.ratio(6, "administration_fee"),
			MinimumInvestment: fp.money(7, "minimum_investment"),
			Liquidity:         fp.text(8),
			BenchmarkIndex:    fp.text(9),
			EconomicSector:    fp.text(10),
			Strategy:          fp.text(11),
			LaunchedAt:        fp.timestamp(12, "launched_at"),
			Status:            fp.text(13),
		}

		return p, fp.err
	},
}

var transactionsTable = table[datalake.Transaction]{
	set: datalake.EntitySetTransactions,
	header: []string{
		"transaction_id", "client_id", "product_id", "transaction_type", "amount", "occurred_at", "status",
	},
	encode: func(t datalake.Transaction) []string {
		return []string{
			t.ID,
			t.ClientID,
			t.ProductID,
			string(t.Type),
			formatMoney(t.Amount),
			formatTimestamp(t.OccurredAt),
			string(t.Status),
		}
	},
	decode: func(r []string) (datalake.Transaction, error) {
		p := &fieldParser{record: r}
		t := datalake.Transaction{
			ID:         p.text(0),
			ClientID:   p.text(1),
			ProductID:  p.text(2),
			Type:       datalake.TransactionType(p.text(3)),
			Amount:     p.money(4, "amount"),
			OccurredAt: p.timestamp(5, "occurred_at"),
			Status:     datalake.TransactionStatus(p.text(6)),
		}

		return t, p.err
	},
}

var interactionsTable = table[datalake.Interaction]{
	set: datalake.EntitySetInteractions,
	header: []string{
		"interaction_id", "client_id", "product_id", "interaction_type", "occurred_at", "duration_seconds", "search_term",
	},
	encode: func(in datalake.Interaction) []string {
		duration := ""
		if in.DurationSeconds != nil {
			duration = strconv.Itoa(*in.DurationSeconds)
		}

		return []string{
			in.ID,
			in.ClientID,
			optional(in.ProductID),
			string(in.Type),
			formatTimestamp(in.OccurredAt),
			duration,
			optional(in.SearchTerm),
		}
	},
	decode: func(r []string) (datalake.Interaction, error) {
		p := &fieldParser{record: r}
		in := datalake.Interaction{
			ID:              p.text(0),
			ClientID:        p.text(1),
			ProductID:       p.optionalText(2),
			Type:            datalake.InteractionType(p.text(3)),
			OccurredAt:      p.timestamp(4, "occurred_at"),
			DurationSeconds: p.optionalInteger(5, "duration_seconds"),
			SearchTerm:      p.optionalText(6),
		}

		return in, p.err
	},
}

var marketDataTable = table[datalake.MarketDataPoint]{
	set:    datalake.EntitySetMarketData,
	header: []string{"date", "index_name", "index_value", "benchmark_rate", "exchange_rate"},
	encode: func(m datalake.MarketDataPoint) []string {
		return []string{
			m.Date.UTC().Format(datalake.DateLayout),
			m.IndexName,
			strconv.FormatFloat(m.IndexValue, 'f', 2, 64),
			strconv.FormatFloat(m.BenchmarkRate, 'f', 2, 64),
			strconv.FormatFloat(m.ExchangeRate, 'f', 2, 64),
		}
	},
	decode: func(r []string) (datalake.MarketDataPoint, error) {
		p := &fieldParser{record: r}
		m := datalake.MarketDataPoint{
			Date:          p.date(0, "date"),
			IndexName:     p.text(1),
			IndexValue:    p.ratio(2, "index_value"),
			BenchmarkRate: p.ratio(3, "benchmark_rate"),
			ExchangeRate:  p.ratio(4, "exchange_rate"),
		}

		return m, p.err
	},
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(datalake.TimestampLayout)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatRatio renders the shortest representation that parses back to the same float64.
func formatRatio(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// fieldParser decodes the cells of one record and keeps the first error.
type fieldParser struct {
	record []string
	err    error
}

func (p *fieldParser) fail(column string, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: column %s value %q: %v", ErrMalformedRecord, column, value, err)
	}
}

func (p *fieldParser) text(i int) string {
	return p.record[i]
}

func (p *fieldParser) optionalText(i int) *string {
	if p.record[i] == "" {
		return nil
	}

	value := p.record[i]

	return &value
}

func (p *fieldParser) integer(i int, column string) int {
	value, err := strconv.Atoi(p.record[i])
	if err != nil {
		p.fail(column, p.record[i], err)
	}

	return value
}

func (p *fieldParser) optionalInteger(i int, column string) *int {
	if p.record[i] == "" {
		return nil
	}

	value := p.integer(i, column)

	return &value
}

func (p *fieldParser) ratio(i int, column string) float64 {
	value, err := strconv.ParseFloat(p.record[i], 64)
	if err != nil {
		p.fail(column, p.record[i], err)
	}

	return value
}

func (p *fieldParser) money(i int, column string) decimal.Decimal {
	value, err := decimal.NewFromString(p.record[i])
	if err != nil {
		p.fail(column, p.record[i], err)
	}

	return value
}

func (p *fieldParser) timestamp(i int, column string) time.Time {
	value, err := time.ParseInLocation(datalake.TimestampLayout, p.record[i], time.UTC)
	if err != nil {
		p.fail(column, p.record[i], err)
	}

	return value
}

func (p *fieldParser) date(i int, column string) time.Time {
	value, err := time.ParseInLocation(datalake.DateLayout, p.record[i], time.UTC)
	if err != nil {
		p.fail(column, p.record[i], err)
	}

	return value
}
