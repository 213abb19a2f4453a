package generator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	. "github.com/AntonStoeckl/synthetic-datalake-go/datalake/generator"
	"github.com/AntonStoeckl/synthetic-datalake-go/testutil/helper"
)

var fixedNow = time.Date(2025, time.July, 9, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func givenGenerator(t testing.TB, options ...Option) *Generator {
	defaults := []Option{
		WithSeed(20250709),
		WithClock(fixedClock),
		WithMarketData(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), time.Time{}, "Ibovespa"),
	}

	gen, err := NewGenerator(append(defaults, options...)...)
	require.NoError(t, err, "error in arranging the generator")

	return gen
}

func givenLargeDataset(t testing.TB) datalake.Dataset {
	dataset, err := givenGenerator(t).Generate(Counts{Clients: 200, Products: 60, Transactions: 2000, Interactions: 3000})
	require.NoError(t, err, "error in arranging test data")

	return dataset
}

func Test_Generate_Produces_The_Requested_Counts(t *testing.T) {
	// arrange
	gen := givenGenerator(t)

	// act
	dataset, err := gen.Generate(Counts{Clients: 10, Products: 5, Transactions: 20, Interactions: 30})

	// assert
	require.NoError(t, err)
	assert.Len(t, dataset.Clients, 10)
	assert.Len(t, dataset.Products, 5)
	assert.Len(t, dataset.Transactions, 20)
	assert.Len(t, dataset.Interactions, 30)
	assert.Len(t, dataset.MarketData, 39, "June 1st to July 9th, both included")

	report := datalake.Verify(dataset)
	assert.True(t, report.OK(), "unexpected violations: %v", report.Violations)
}

func Test_Generate_Keeps_Referential_Integrity(t *testing.T) {
	dataset := givenLargeDataset(t)
	clients := dataset.ClientIndex()
	products := dataset.ProductIndex()

	for _, tx := range dataset.Transactions {
		assert.Contains(t, clients, tx.ClientID, "transaction %s", tx.ID)
		assert.Contains(t, products, tx.ProductID, "transaction %s", tx.ID)
	}

	for _, in := range dataset.Interactions {
		assert.Contains(t, clients, in.ClientID, "interaction %s", in.ID)
		if in.ProductID != nil {
			assert.Contains(t, products, *in.ProductID, "interaction %s", in.ID)
		}
	}
}

func Test_Generate_Transactions_Never_Predate_Client_Or_Product(t *testing.T) {
	dataset := givenLargeDataset(t)
	clients := dataset.ClientIndex()
	products := dataset.ProductIndex()

	for _, tx := range dataset.Transactions {
		client := dataset.Clients[clients[tx.ClientID]]
		product := dataset.Products[products[tx.ProductID]]
		lowerBound := LatestOf(client.RegisteredAt, product.LaunchedAt)

		assert.False(t, tx.OccurredAt.Before(lowerBound), "transaction %s at %s before %s", tx.ID, tx.OccurredAt, lowerBound)
		assert.False(t, tx.OccurredAt.After(fixedNow), "transaction %s in the future", tx.ID)
	}
}

func Test_Generate_Interactions_Never_Predate_Client_Registration(t *testing.T) {
	dataset := givenLargeDataset(t)
	clients := dataset.ClientIndex()

	for _, in := range dataset.Interactions {
		client := dataset.Clients[clients[in.ClientID]]

		assert.False(t, in.OccurredAt.Before(client.RegisteredAt), "interaction %s", in.ID)
		assert.False(t, in.OccurredAt.After(fixedNow), "interaction %s in the future", in.ID)
	}
}

func Test_Generate_Clients_Stay_Within_Their_Windows(t *testing.T) {
	dataset := givenLargeDataset(t)
	earliestRegistration := fixedNow.AddDate(-5, 0, 0)

	for _, c := range dataset.Clients {
		assert.False(t, c.RegisteredAt.Before(earliestRegistration), "client %s", c.ID)
		assert.False(t, c.LastInteractionAt.Before(c.RegisteredAt), "client %s", c.ID)
		assert.GreaterOrEqual(t, c.Age, 20)
		assert.LessOrEqual(t, c.Age, 70)
		assert.Equal(t, int32(-2), c.MonthlyIncome.Exponent(), "money is rounded to cents")
	}
}

func Test_Generate_Products_Follow_Their_Type_Rules(t *testing.T) {
	dataset := givenLargeDataset(t)
	launchEarliest := fixedNow.AddDate(-10, 0, 0)
	launchLatest := fixedNow.AddDate(-1, 0, 0)

	for _, p := range dataset.Products {
		rule := datalake.ProductRuleFor(p.Type)

		if rule.FixedIncome() {
			assert.Equal(t, datalake.RiskLevelLow, p.RiskLevel, "product %s of type %s", p.ID, p.Type)
		}

		assert.Contains(t, rule.RiskLevels, p.RiskLevel)
		assert.True(t, rule.Return12M.Contains(p.Return12M), "product %s return %f", p.ID, p.Return12M)
		assert.GreaterOrEqual(t, p.Return36M, p.Return12M*2.5-0.0001)
		assert.LessOrEqual(t, p.Return36M, p.Return12M*3.2+0.0001)
		assert.False(t, p.LaunchedAt.Before(launchEarliest), "product %s", p.ID)
		assert.False(t, p.LaunchedAt.After(launchLatest), "product %s", p.ID)
		assert.Equal(t, datalake.ProductStatusActive, p.Status)
		assert.Contains(t, p.Name, string(p.Type))
	}
}

func Test_Generate_CDB_Is_Always_Low_Risk_Within_The_Fixed_Income_Band(t *testing.T) {
	// arrange
	pools := DefaultValuePools()
	pools.ProductTypes = []datalake.ProductType{datalake.ProductTypeCDB}
	gen := givenGenerator(t, WithValuePools(pools))

	// act
	products, err := gen.GenerateProducts(200)

	// assert
	require.NoError(t, err)
	for _, p := range products {
		assert.Equal(t, datalake.RiskLevelLow, p.RiskLevel)
		assert.GreaterOrEqual(t, p.Return12M, 0.08)
		assert.LessOrEqual(t, p.Return12M, 0.13)
		assert.Contains(t, pools.BenchmarkIndexes, p.BenchmarkIndex)
		assert.Equal(t, datalake.NotApplicable, p.EconomicSector)
		assert.Equal(t, datalake.NotApplicable, p.Strategy)
	}
}

func Test_Generate_Equity_Funds_License_Sector_And_Strategy(t *testing.T) {
	// arrange
	pools := DefaultValuePools()
	pools.ProductTypes = []datalake.ProductType{datalake.ProductTypeEquityFund}
	gen := givenGenerator(t, WithValuePools(pools))

	// act
	products, err := gen.GenerateProducts(100)

	// assert
	require.NoError(t, err)
	for _, p := range products {
		assert.Contains(t, []datalake.RiskLevel{datalake.RiskLevelMedium, datalake.RiskLevelHigh}, p.RiskLevel)
		assert.Equal(t, datalake.NotApplicable, p.BenchmarkIndex)
		assert.Contains(t, pools.EconomicSectors, p.EconomicSector)
		assert.Contains(t, pools.Strategies, p.Strategy)
	}
}

func Test_Generate_Interactions_Populate_Optional_Fields_By_Type(t *testing.T) {
	dataset := givenLargeDataset(t)
	seenTypes := make(map[datalake.InteractionType]bool)

	for _, in := range dataset.Interactions {
		seenTypes[in.Type] = true
		rule := datalake.InteractionRuleFor(in.Type)

		assert.Equal(t, rule.LinksProduct, in.ProductID != nil, "interaction %s of type %s", in.ID, in.Type)
		assert.Equal(t, rule.HasDuration, in.DurationSeconds != nil, "interaction %s of type %s", in.ID, in.Type)
		assert.Equal(t, rule.HasSearch, in.SearchTerm != nil, "interaction %s of type %s", in.ID, in.Type)

		if in.DurationSeconds != nil {
			assert.GreaterOrEqual(t, *in.DurationSeconds, 10)
			assert.LessOrEqual(t, *in.DurationSeconds, 600)
		}
	}

	assert.Len(t, seenTypes, len(DefaultValuePools().InteractionTypes), "every interaction type was drawn")
}

func Test_Generate_Issues_Unique_Identifiers(t *testing.T) {
	for _, strategy := range []IDStrategy{IDStrategySequential, IDStrategyUUID} {
		t.Run(string(strategy), func(t *testing.T) {
			dataset, err := givenGenerator(t, WithIDStrategy(strategy)).
				Generate(Counts{Clients: 300, Products: 40, Transactions: 1000, Interactions: 1000})
			require.NoError(t, err)

			assertUnique(t, len(dataset.Clients), func(i int) string { return dataset.Clients[i].ID })
			assertUnique(t, len(dataset.Products), func(i int) string { return dataset.Products[i].ID })
			assertUnique(t, len(dataset.Transactions), func(i int) string { return dataset.Transactions[i].ID })
			assertUnique(t, len(dataset.Interactions), func(i int) string { return dataset.Interactions[i].ID })
		})
	}
}

func assertUnique(t *testing.T, n int, idAt func(int) string) {
	t.Helper()

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		_, dup := seen[idAt(i)]
		assert.False(t, dup, "duplicate identifier %s", idAt(i))
		seen[idAt(i)] = struct{}{}
	}
}

func Test_Generate_Uses_Prefixed_Sequential_Identifiers_By_Default(t *testing.T) {
	dataset, err := givenGenerator(t).Generate(Counts{Clients: 2, Products: 2, Transactions: 2, Interactions: 2})
	require.NoError(t, err)

	assert.Equal(t, "CLI00000", dataset.Clients[0].ID)
	assert.Equal(t, "CLI00001", dataset.Clients[1].ID)
	assert.Equal(t, "PROD001", dataset.Products[1].ID)
	assert.Equal(t, "TRA000000", dataset.Transactions[0].ID)
	assert.Equal(t, "INT0000001", dataset.Interactions[1].ID)
}

func Test_Generate_Is_Reproducible_With_A_Seed(t *testing.T) {
	counts := Counts{Clients: 20, Products: 10, Transactions: 50, Interactions: 50}

	first, err := givenGenerator(t, WithSeed(7)).Generate(counts)
	require.NoError(t, err)

	second, err := givenGenerator(t, WithSeed(7)).Generate(counts)
	require.NoError(t, err)

	other, err := givenGenerator(t, WithSeed(8)).Generate(counts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first.Clients, other.Clients)
}

func Test_Generate_Market_Data_Has_One_Point_Per_Day(t *testing.T) {
	// arrange
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 29, 18, 0, 0, 0, time.UTC)
	gen := givenGenerator(t, WithMarketData(start, end, "Ibovespa"))

	// act
	marketData, err := gen.GenerateMarketData()

	// assert
	require.NoError(t, err)
	require.Len(t, marketData, 29)
	assert.Equal(t, start, marketData[0].Date)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), marketData[28].Date)

	for i, point := range marketData {
		if i > 0 {
			assert.Equal(t, marketData[i-1].Date.AddDate(0, 0, 1), point.Date)
		}
		assert.Equal(t, "Ibovespa", point.IndexName)
		assert.GreaterOrEqual(t, point.IndexValue, 80000.0)
		assert.LessOrEqual(t, point.IndexValue, 150000.0)
		assert.GreaterOrEqual(t, point.BenchmarkRate, 2.0)
		assert.LessOrEqual(t, point.BenchmarkRate, 15.0)
		assert.GreaterOrEqual(t, point.ExchangeRate, 4.5)
		assert.LessOrEqual(t, point.ExchangeRate, 6.0)
	}
}

func Test_Generate_Without_Market_Data(t *testing.T) {
	dataset, err := givenGenerator(t, WithoutMarketData()).Generate(Counts{Clients: 1, Products: 1})

	require.NoError(t, err)
	assert.Empty(t, dataset.MarketData)
	assert.Empty(t, dataset.Transactions)
	assert.Empty(t, dataset.Interactions)
}

func Test_GenerateTransactions_Rejects_A_Product_Launched_After_Now(t *testing.T) {
	// arrange
	gen := givenGenerator(t)
	clients, err := gen.GenerateClients(1)
	require.NoError(t, err)

	products := datalake.Products{{ID: "PROD000", Type: datalake.ProductTypeCDB, LaunchedAt: fixedNow.Add(24 * time.Hour)}}

	// act
	_, err = gen.GenerateTransactions(1, clients, products)

	// assert
	assert.ErrorIs(t, err, datalake.ErrTimeWindowInverted)
	assert.ErrorContains(t, err, "PROD000")
}

func Test_GenerateInteractions_Needs_Products_For_Product_Related_Types(t *testing.T) {
	// arrange
	pools := DefaultValuePools()
	pools.InteractionTypes = []datalake.InteractionType{datalake.InteractionTypeProductSearch}
	gen := givenGenerator(t, WithValuePools(pools))
	clients, err := gen.GenerateClients(1)
	require.NoError(t, err)

	// act
	_, err = gen.GenerateInteractions(1, clients, nil)

	// assert
	assert.ErrorIs(t, err, datalake.ErrInvalidCount)
}

func Test_GenerateInteractions_Without_Product_Related_Types_Needs_No_Products(t *testing.T) {
	// arrange
	pools := DefaultValuePools()
	pools.InteractionTypes = []datalake.InteractionType{datalake.InteractionTypeSupportContact}
	gen := givenGenerator(t, WithValuePools(pools))
	clients, err := gen.GenerateClients(3)
	require.NoError(t, err)

	// act
	interactions, err := gen.GenerateInteractions(10, clients, nil)

	// assert
	require.NoError(t, err)
	for _, in := range interactions {
		assert.Nil(t, in.ProductID)
		assert.Nil(t, in.DurationSeconds)
		assert.Nil(t, in.SearchTerm)
	}
}

//nolint:funlen
func Test_NewGenerator_Fails_Fast_On_Configuration_Errors(t *testing.T) {
	emptyObjectives := DefaultValuePools()
	emptyObjectives.InvestmentObjectives = nil

	emptySectors := DefaultValuePools()
	emptySectors.EconomicSectors = nil

	invertedAge := DefaultValueRanges()
	invertedAge.Age = IntRange{Min: 70, Max: 20}

	futureLaunch := DefaultValueRanges()
	futureLaunch.ProductLaunchYearsAgo = IntRange{Min: -1, Max: 3}

	tests := []struct {
		name        string
		option      Option
		expectedErr error
	}{
		{"empty objective pool", WithValuePools(emptyObjectives), datalake.ErrEmptyValuePool},
		{"empty sector pool with equity funds", WithValuePools(emptySectors), datalake.ErrEmptyValuePool},
		{"inverted age range", WithValueRanges(invertedAge), datalake.ErrInvalidRange},
		{"launch window reaching into the future", WithValueRanges(futureLaunch), datalake.ErrInvalidRange},
		{"nil clock", WithClock(nil), ErrNilClock},
		{"unknown id strategy", WithIDStrategy("random"), ErrUnknownIDStrategy},
		{"empty index name", WithMarketData(fixedNow, time.Time{}, ""), ErrEmptyIndexName},
		{"market data ending before it starts", WithMarketData(fixedNow, fixedNow.AddDate(0, 0, -1), "Ibovespa"), datalake.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.option)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, gen)
		})
	}
}

func Test_Generate_Rejects_Invalid_Counts(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
	}{
		{"no clients", Counts{Clients: 0, Products: 5}},
		{"no products", Counts{Clients: 5, Products: 0}},
		{"negative transactions", Counts{Clients: 5, Products: 5, Transactions: -1}},
		{"negative interactions", Counts{Clients: 5, Products: 5, Interactions: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := givenGenerator(t).Generate(tt.counts)

			assert.ErrorIs(t, err, datalake.ErrInvalidCount)
		})
	}
}

func Test_Generate_Logs_Each_Entity_Set(t *testing.T) {
	// arrange
	logger, logHandler := helper.NewTestLogger(false)
	gen := givenGenerator(t, WithLogger(logger))

	// act
	_, err := gen.Generate(Counts{Clients: 3, Products: 2, Transactions: 4, Interactions: 5})

	// assert
	require.NoError(t, err)
	assert.True(t, logHandler.HasDebugLogWithMessage("generation started").WithString("id_strategy", "sequential").Assert())
	assert.Equal(t, 5, logHandler.HasInfoLogWithMessage("entity set generated").WithDurationMS().Count())
	assert.True(t, logHandler.HasInfoLogWithMessage("entity set generated").
		WithString("set", "transactions").
		WithInt("count", 4).
		Assert())
}

func Test_Generate_Does_Not_Log_Rejected_Runs(t *testing.T) {
	// arrange
	logger, logHandler := helper.NewTestLogger(false)
	gen := givenGenerator(t, WithLogger(logger))

	// act
	_, err := gen.Generate(Counts{Clients: 0, Products: 1})

	// assert
	assert.ErrorIs(t, err, datalake.ErrInvalidCount)
	assert.Zero(t, logHandler.GetRecordCount())
}
