package generator

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

// ValuePools holds the enumerated values categorical fields are sampled from.
type ValuePools struct {
	Genders              []string
	RiskProfiles         []datalake.RiskProfile
	InvestmentObjectives []string
	ProductTypes         []datalake.ProductType
	Liquidities          []string
	MinimumInvestments   []int64
	BenchmarkIndexes     []string
	EconomicSectors      []string
	Strategies           []string
	TransactionTypes     []datalake.TransactionType
	TransactionStatuses  []datalake.TransactionStatus
	InteractionTypes     []datalake.InteractionType
}

// DefaultValuePools returns the catalog of the proof-of-concept data lake.
func DefaultValuePools() ValuePools {
	return ValuePools{
		Genders: []string{"Male", "Female", "Other", "Not Informed"},
		RiskProfiles: []datalake.RiskProfile{
			datalake.RiskProfileConservative,
			datalake.RiskProfileModerate,
			datalake.RiskProfileAggressive,
		},
		InvestmentObjectives: []string{
			"Retirement",
			"Buy Property",
			"Emergency Reserve",
			"Wealth Growth",
			"Children's Education",
			"Travel",
			"Financial Independence",
		},
		ProductTypes: []datalake.ProductType{
			datalake.ProductTypeEquityFund,
			datalake.ProductTypeMultiStrategyFund,
			datalake.ProductTypeFixedIncomeFund,
			datalake.ProductTypeCDB,
			datalake.ProductTypeLCILCA,
			datalake.ProductTypePrivatePension,
		},
		Liquidities:        []string{"D+0", "D+1", "D+2", "D+30", "D+90"},
		MinimumInvestments: []int64{100, 500, 1000, 5000, 10000},
		BenchmarkIndexes:   []string{"CDI", "IPCA", "Ibovespa"},
		EconomicSectors: []string{
			"Technology", "Banking", "Energy", "Consumer", "Healthcare", "Real Estate", "Agribusiness", "Diversified",
		},
		Strategies: []string{"Long Only", "Macro", "Quantitative", "Value", "Growth"},
		TransactionTypes: []datalake.TransactionType{
			datalake.TransactionTypeDeposit,
			datalake.TransactionTypeWithdrawal,
		},
		TransactionStatuses: []datalake.TransactionStatus{
			datalake.TransactionStatusCompleted,
			datalake.TransactionStatusPending,
		},
		InteractionTypes: []datalake.InteractionType{
			datalake.InteractionTypeProductView,
			datalake.InteractionTypeInvestCTAClick,
			datalake.InteractionTypeProductSearch,
			datalake.InteractionTypeMaterialDownload,
			datalake.InteractionTypeSupportContact,
			datalake.InteractionTypeLoggedAreaAccess,
		},
	}
}

// Validate fails with datalake.ErrEmptyValuePool for the first pool a generation run would sample from
// while it is empty. The benchmark, sector and strategy pools are only required if a configured
// product type licenses the field.
func (p ValuePools) Validate() error {
	required := []struct {
		name string
		size int
	}{
		{"genders", len(p.Genders)},
		{"risk_profiles", len(p.RiskProfiles)},
		{"investment_objectives", len(p.InvestmentObjectives)},
		{"product_types", len(p.ProductTypes)},
		{"liquidities", len(p.Liquidities)},
		{"minimum_investments", len(p.MinimumInvestments)},
		{"transaction_types", len(p.TransactionTypes)},
		{"transaction_statuses", len(p.TransactionStatuses)},
		{"interaction_types", len(p.InteractionTypes)},
	}

	for _, pool := range required {
		if pool.size == 0 {
			return fmt.Errorf("%w: %s", datalake.ErrEmptyValuePool, pool.name)
		}
	}

	for _, productType := range p.ProductTypes {
		rule := datalake.ProductRuleFor(productType)

		if rule.LicensesBenchmark && len(p.BenchmarkIndexes) == 0 {
			return fmt.Errorf("%w: benchmark_indexes (required by %q)", datalake.ErrEmptyValuePool, productType)
		}

		if rule.LicensesSector && len(p.EconomicSectors) == 0 {
			return fmt.Errorf("%w: economic_sectors (required by %q)", datalake.ErrEmptyValuePool, productType)
		}

		if rule.LicensesStrategy && len(p.Strategies) == 0 {
			return fmt.Errorf("%w: strategies (required by %q)", datalake.ErrEmptyValuePool, productType)
		}
	}

	return nil
}

// IntRange is a closed interval of integers.
type IntRange struct {
	Min int
	Max int
}

func (r IntRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s [%d, %d]", datalake.ErrInvalidRange, name, r.Min, r.Max)
	}

	return nil
}

// FloatRange is a closed interval of floating-point numbers.
type FloatRange struct {
	Min float64
	Max float64
}

func (r FloatRange) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s [%g, %g]", datalake.ErrInvalidRange, name, r.Min, r.Max)
	}

	return nil
}

// ValueRanges holds the numeric ranges continuous fields are sampled from.
type ValueRanges struct {
	Age                 IntRange
	MonthlyIncome       FloatRange
	NetWorth            FloatRange
	AdministrationFee   FloatRange
	Return36MMultiplier FloatRange
	TransactionAmount   FloatRange
	ViewDurationSeconds IntRange

	// RegistrationYearsAgo bounds client registration relative to the generator's clock.
	RegistrationYearsAgo IntRange

	// ProductLaunchYearsAgo bounds product launch relative to the generator's clock.
	// A negative minimum would allow launches in the future and is rejected.
	ProductLaunchYearsAgo IntRange

	IndexValue    FloatRange
	BenchmarkRate FloatRange
	ExchangeRate  FloatRange
}

// DefaultValueRanges returns the ranges of the proof-of-concept data lake.
func DefaultValueRanges() ValueRanges {
	return ValueRanges{
		Age:                   IntRange{Min: 20, Max: 70},
		MonthlyIncome:         FloatRange{Min: 2000, Max: 50000},
		NetWorth:              FloatRange{Min: 5000, Max: 5000000},
		AdministrationFee:     FloatRange{Min: 0.1, Max: 2.5},
		Return36MMultiplier:   FloatRange{Min: 2.5, Max: 3.2},
		TransactionAmount:     FloatRange{Min: 100, Max: 100000},
		ViewDurationSeconds:   IntRange{Min: 10, Max: 600},
		RegistrationYearsAgo:  IntRange{Min: 0, Max: 5},
		ProductLaunchYearsAgo: IntRange{Min: 1, Max: 10},
		IndexValue:            FloatRange{Min: 80000, Max: 150000},
		BenchmarkRate:         FloatRange{Min: 2.0, Max: 15.0},
		ExchangeRate:          FloatRange{Min: 4.5, Max: 6.0},
	}
}

// Validate fails with datalake.ErrInvalidRange for the first inverted range and for windows that reach
// into the future.
func (r ValueRanges) Validate() error {
	intRanges := []struct {
		name string
		rng  IntRange
	}{
		{"age", r.Age},
		{"view_duration_seconds", r.ViewDurationSeconds},
		{"registration_years_ago", r.RegistrationYearsAgo},
		{"product_launch_years_ago", r.ProductLaunchYearsAgo},
	}

	for _, ir := range intRanges {
		if err := ir.rng.validate(ir.name); err != nil {
			return err
		}
	}

	floatRanges := []struct {
		name string
		rng  FloatRange
	}{
		{"monthly_income", r.MonthlyIncome},
		{"net_worth", r.NetWorth},
		{"administration_fee", r.AdministrationFee},
		{"return_36m_multiplier", r.Return36MMultiplier},
		{"transaction_amount", r.TransactionAmount},
		{"index_value", r.IndexValue},
		{"benchmark_rate", r.BenchmarkRate},
		{"exchange_rate", r.ExchangeRate},
	}

	for _, fr := range floatRanges {
		if err := fr.rng.validate(fr.name); err != nil {
			return err
		}
	}

	if r.RegistrationYearsAgo.Min < 0 {
		return fmt.Errorf("%w: registration_years_ago must not reach into the future", datalake.ErrInvalidRange)
	}

	if r.ProductLaunchYearsAgo.Min < 0 {
		return fmt.Errorf("%w: product_launch_years_ago must not reach into the future", datalake.ErrInvalidRange)
	}

	return nil
}

// yearsAgo returns the window [now - r.Max years, now - r.Min years].
func (r IntRange) yearsAgo(now time.Time) (time.Time, time.Time) {
	return now.AddDate(-r.Max, 0, 0), now.AddDate(-r.Min, 0, 0)
}
