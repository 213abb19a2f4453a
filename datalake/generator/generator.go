package generator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

const (
	defaultIndexName         = "Ibovespa"
	logMsgEntitySetGenerated = "entity set generated"
	logMsgGenerationStarted  = "generation started"
	logMsgGenerationFailed   = "generation failed"
	logAttrSet               = "set"
	logAttrCount             = "count"
	logAttrDurationMS        = "duration_ms"
	logAttrError             = "error"
	logAttrIDStrategy        = "id_strategy"
	logAttrSeed              = "seed"
	logAttrMarketData        = "market_data"
)

var defaultMarketDataStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Counts holds the requested number of records per entity set.
type Counts struct {
	Clients      int
	Products     int
	Transactions int
	Interactions int
}

// DefaultCounts returns the record counts of the proof-of-concept data lake.
func DefaultCounts() Counts {
	return Counts{
		Clients:      1000,
		Products:     50,
		Transactions: 5000,
		Interactions: 10000,
	}
}

// Validate rejects negative counts and runs without clients or products to reference.
func (c Counts) Validate() error {
	switch {
	case c.Clients < 1:
		return fmt.Errorf("%w: clients must be at least 1, got %d", datalake.ErrInvalidCount, c.Clients)
	case c.Products < 1:
		return fmt.Errorf("%w: products must be at least 1, got %d", datalake.ErrInvalidCount, c.Products)
	case c.Transactions < 0:
		return fmt.Errorf("%w: transactions must not be negative, got %d", datalake.ErrInvalidCount, c.Transactions)
	case c.Interactions < 0:
		return fmt.Errorf("%w: interactions must not be negative, got %d", datalake.ErrInvalidCount, c.Interactions)
	}

	return nil
}

type marketDataSpan struct {
	enabled   bool
	start     time.Time
	end       time.Time
	indexName string
}

// Generator produces consistent data lake entity sets.
// It is not safe for concurrent use.
type Generator struct {
	faker      *gofakeit.Faker
	seed       int64
	clock      func() time.Time
	idStrategy IDStrategy
	pools      ValuePools
	ranges     ValueRanges
	marketData marketDataSpan
	logger     Logger
}

// NewGenerator creates a Generator with the proof-of-concept defaults and applies the options.
func NewGenerator(options ...Option) (*Generator, error) {
	g := &Generator{
		clock:      time.Now,
		idStrategy: IDStrategySequential,
		pools:      DefaultValuePools(),
		ranges:     DefaultValueRanges(),
		marketData: marketDataSpan{enabled: true, start: defaultMarketDataStart, indexName: defaultIndexName},
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	g.faker = gofakeit.New(g.seed)

	return g, nil
}

// Generate produces a complete Dataset: clients, then products, then transactions and interactions
// referencing them, then the market data series if enabled.
// Any failure aborts the run; no partially generated Dataset is returned.
func (g *Generator) Generate(counts Counts) (datalake.Dataset, error) {
	if err := counts.Validate(); err != nil {
		return datalake.Dataset{}, err
	}

	g.logDebug(logMsgGenerationStarted,
		logAttrIDStrategy, string(g.idStrategy),
		logAttrSeed, g.seed,
		logAttrMarketData, g.marketData.enabled,
	)

	clients, err := g.GenerateClients(counts.Clients)
	if err != nil {
		return datalake.Dataset{}, g.failed(datalake.EntitySetClients, err)
	}

	products, err := g.GenerateProducts(counts.Products)
	if err != nil {
		return datalake.Dataset{}, g.failed(datalake.EntitySetProducts, err)
	}

	transactions, err := g.GenerateTransactions(counts.Transactions, clients, products)
	if err != nil {
		return datalake.Dataset{}, g.failed(datalake.EntitySetTransactions, err)
	}

	interactions, err := g.GenerateInteractions(counts.Interactions, clients, products)
	if err != nil {
		return datalake.Dataset{}, g.failed(datalake.EntitySetInteractions, err)
	}

	var marketData datalake.MarketData
	if g.marketData.enabled {
		marketData, err = g.GenerateMarketData()
		if err != nil {
			return datalake.Dataset{}, g.failed(datalake.EntitySetMarketData, err)
		}
	}

	return datalake.Dataset{
		Clients:      clients,
		Products:     products,
		Transactions: transactions,
		Interactions: interactions,
		MarketData:   marketData,
	}, nil
}

// GenerateClients produces n clients registered within the configured window.
func (g *Generator) GenerateClients(n int) (datalake.Clients, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: clients must not be negative, got %d", datalake.ErrInvalidCount, n)
	}

	start := time.Now()
	now := g.now()
	earliest, latest := g.ranges.RegistrationYearsAgo.yearsAgo(now)
	ids := newIDSequence(g.idStrategy, clientIDFormat, n)
	clients := make(datalake.Clients, 0, n)

	for i := 0; i < n; i++ {
		id, err := ids.Next()
		if err != nil {
			return nil, err
		}

		registeredAt, err := timestampBetween(g.faker, earliest, latest)
		if err != nil {
			return nil, fmt.Errorf("failed to draw registration of client %s: %w", id, err)
		}

		lastInteractionAt, err := timestampBetween(g.faker, registeredAt, now)
		if err != nil {
			return nil, fmt.Errorf("failed to draw last interaction of client %s: %w", id, err)
		}

		clients = append(clients, datalake.Client{
			ID:                  id,
			Name:                g.faker.Name(),
			RegisteredAt:        registeredAt,
			Age:                 g.intIn(g.ranges.Age),
			Gender:              pick(g.faker, g.pools.Genders),
			MonthlyIncome:       g.moneyIn(g.ranges.MonthlyIncome),
			NetWorth:            g.moneyIn(g.ranges.NetWorth),
			RiskProfile:         pick(g.faker, g.pools.RiskProfiles),
			InvestmentObjective: pick(g.faker, g.pools.InvestmentObjectives),
			LastInteractionAt:   lastInteractionAt,
		})
	}

	g.logGenerated(datalake.EntitySetClients, len(clients), start)

	return clients, nil
}

// GenerateProducts produces n products whose risk, returns and optional attributes follow
// datalake.ProductRuleFor of their type.
func (g *Generator) GenerateProducts(n int) (datalake.Products, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: products must not be negative, got %d", datalake.ErrInvalidCount, n)
	}

	start := time.Now()
	earliest, latest := g.ranges.ProductLaunchYearsAgo.yearsAgo(g.now())
	ids := newIDSequence(g.idStrategy, productIDFormat, n)
	products := make(datalake.Products, 0, n)

	for i := 0; i < n; i++ {
		id, err := ids.Next()
		if err != nil {
			return nil, err
		}

		launchedAt, err := timestampBetween(g.faker, earliest, latest)
		if err != nil {
			return nil, fmt.Errorf("failed to draw launch of product %s: %w", id, err)
		}

		productType := pick(g.faker, g.pools.ProductTypes)
		rule := datalake.ProductRuleFor(productType)
		return12M := roundTo(g.faker.Float64Range(rule.Return12M.Min, rule.Return12M.Max), 4)

		products = append(products, datalake.Product{
			ID:                id,
			Name:              g.productName(productType),
			Type:              productType,
			RiskLevel:         pick(g.faker, rule.RiskLevels),
			Return12M:         return12M,
			Return36M:         roundTo(return12M*g.floatIn(g.ranges.Return36MMultiplier), 4),
			AdministrationFee: roundTo(g.floatIn(g.ranges.AdministrationFee), 2),
			MinimumInvestment: decimal.NewFromInt(pick(g.faker, g.pools.MinimumInvestments)),
			Liquidity:         pick(g.faker, g.pools.Liquidities),
			BenchmarkIndex:    licensed(g.faker, rule.LicensesBenchmark, g.pools.BenchmarkIndexes),
			EconomicSector:    licensed(g.faker, rule.LicensesSector, g.pools.EconomicSectors),
			Strategy:          licensed(g.faker, rule.LicensesStrategy, g.pools.Strategies),
			LaunchedAt:        launchedAt,
			Status:            datalake.ProductStatusActive,
		})
	}

	g.logGenerated(datalake.EntitySetProducts, len(products), start)

	return products, nil
}

// GenerateTransactions produces n transactions between the given clients and products.
// Each transaction occurs between the later of its client's registration and its product's launch, and now.
func (g *Generator) GenerateTransactions(
	n int,
	clients datalake.Clients,
	products datalake.Products,
) (datalake.Transactions, error) {

	if n < 0 {
		return nil, fmt.Errorf("%w: transactions must not be negative, got %d", datalake.ErrInvalidCount, n)
	}

	if n > 0 && (len(clients) == 0 || len(products) == 0) {
		return nil, fmt.Errorf("%w: transactions need at least one client and one product", datalake.ErrInvalidCount)
	}

	start := time.Now()
	now := g.now()
	ids := newIDSequence(g.idStrategy, transactionIDFormat, n)
	transactions := make(datalake.Transactions, 0, n)

	for i := 0; i < n; i++ {
		id, err := ids.Next()
		if err != nil {
			return nil, err
		}

		client := pick(g.faker, clients)
		product := pick(g.faker, products)

		occurredAt, err := timestampBetween(g.faker, LatestOf(client.RegisteredAt, product.LaunchedAt), now)
		if err != nil {
			return nil, fmt.Errorf("failed to draw timestamp of transaction %s (client %s, product %s): %w",
				id, client.ID, product.ID, err)
		}

		transactions = append(transactions, datalake.Transaction{
			ID:         id,
			ClientID:   client.ID,
			ProductID:  product.ID,
			Type:       pick(g.faker, g.pools.TransactionTypes),
			Amount:     g.moneyIn(g.ranges.TransactionAmount),
			OccurredAt: occurredAt,
			Status:     pick(g.faker, g.pools.TransactionStatuses),
		})
	}

	g.logGenerated(datalake.EntitySetTransactions, len(transactions), start)

	return transactions, nil
}

// GenerateInteractions produces n interactions of the given clients.
// Product reference, duration and search term are set only when datalake.InteractionRuleFor licenses them.
func (g *Generator) GenerateInteractions(
	n int,
	clients datalake.Clients,
	products datalake.Products,
) (datalake.Interactions, error) {

	if n < 0 {
		return nil, fmt.Errorf("%w: interactions must not be negative, got %d", datalake.ErrInvalidCount, n)
	}

	if n > 0 && len(clients) == 0 {
		return nil, fmt.Errorf("%w: interactions need at least one client", datalake.ErrInvalidCount)
	}

	start := time.Now()
	now := g.now()
	ids := newIDSequence(g.idStrategy, interactionIDFormat, n)
	interactions := make(datalake.Interactions, 0, n)

	for i := 0; i < n; i++ {
		id, err := ids.Next()
		if err != nil {
			return nil, err
		}

		client := pick(g.faker, clients)
		interactionType := pick(g.faker, g.pools.InteractionTypes)
		rule := datalake.InteractionRuleFor(interactionType)

		occurredAt, err := timestampBetween(g.faker, client.RegisteredAt, now)
		if err != nil {
			return nil, fmt.Errorf("failed to draw timestamp of interaction %s (client %s): %w", id, client.ID, err)
		}

		interaction := datalake.Interaction{
			ID:         id,
			ClientID:   client.ID,
			Type:       interactionType,
			OccurredAt: occurredAt,
		}

		if rule.LinksProduct {
			if len(products) == 0 {
				return nil, fmt.Errorf("%w: interaction type %q needs at least one product",
					datalake.ErrInvalidCount, interactionType)
			}

			productID := pick(g.faker, products).ID
			interaction.ProductID = &productID
		}

		if rule.HasDuration {
			duration := g.intIn(g.ranges.ViewDurationSeconds)
			interaction.DurationSeconds = &duration
		}

		if rule.HasSearch {
			term := g.faker.Word()
			interaction.SearchTerm = &term
		}

		interactions = append(interactions, interaction)
	}

	g.logGenerated(datalake.EntitySetInteractions, len(interactions), start)

	return interactions, nil
}

// GenerateMarketData produces one MarketDataPoint per calendar day of the configured range, both ends included.
func (g *Generator) GenerateMarketData() (datalake.MarketData, error) {
	start := time.Now()

	first := dateOf(g.marketData.start)
	last := dateOf(g.now())
	if !g.marketData.end.IsZero() {
		last = dateOf(g.marketData.end)
	}

	if first.After(last) {
		return nil, fmt.Errorf("%w: market data %s..%s",
			datalake.ErrInvalidRange, first.Format(datalake.DateLayout), last.Format(datalake.DateLayout))
	}

	days := int(last.Sub(first).Hours()/24) + 1
	marketData := make(datalake.MarketData, 0, days)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		marketData = append(marketData, datalake.MarketDataPoint{
			Date:          day,
			IndexName:     g.marketData.indexName,
			IndexValue:    roundTo(g.floatIn(g.ranges.IndexValue), 2),
			BenchmarkRate: roundTo(g.floatIn(g.ranges.BenchmarkRate), 2),
			ExchangeRate:  roundTo(g.floatIn(g.ranges.ExchangeRate), 2),
		})
	}

	g.logGenerated(datalake.EntitySetMarketData, len(marketData), start)

	return marketData, nil
}

func (g *Generator) now() time.Time {
	return g.clock().UTC().Truncate(time.Second)
}

func (g *Generator) productName(productType datalake.ProductType) string {
	return fmt.Sprintf("%s %s %s", capitalize(g.faker.Word()), capitalize(g.faker.Word()), productType)
}

func (g *Generator) intIn(r IntRange) int {
	return g.faker.Number(r.Min, r.Max)
}

func (g *Generator) floatIn(r FloatRange) float64 {
	return g.faker.Float64Range(r.Min, r.Max)
}

func (g *Generator) moneyIn(r FloatRange) decimal.Decimal {
	return decimal.NewFromFloat(g.floatIn(r)).Round(2)
}

func (g *Generator) logGenerated(set datalake.EntitySet, count int, start time.Time) {
	if g.logger != nil {
		g.logger.Info(logMsgEntitySetGenerated,
			logAttrSet, string(set),
			logAttrCount, count,
			logAttrDurationMS, float64(time.Since(start).Microseconds())/1000.0,
		)
	}
}

func (g *Generator) logDebug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *Generator) failed(set datalake.EntitySet, err error) error {
	if g.logger != nil {
		g.logger.Error(logMsgGenerationFailed, logAttrSet, string(set), logAttrError, err.Error())
	}

	return fmt.Errorf("failed to generate %s: %w", set, err)
}

// pick returns a uniformly drawn element of a non-empty pool.
func pick[T any](faker *gofakeit.Faker, pool []T) T {
	return pool[faker.Number(0, len(pool)-1)]
}

// licensed draws from pool if the field is licensed, otherwise it returns datalake.NotApplicable.
func licensed(faker *gofakeit.Faker, isLicensed bool, pool []string) string {
	if !isLicensed {
		return datalake.NotApplicable
	}

	return pick(faker, pool)
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func capitalize(word string) string {
	if word == "" {
		return word
	}

	return strings.ToUpper(word[:1]) + word[1:]
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
