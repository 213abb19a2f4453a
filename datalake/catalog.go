package datalake

// ReturnBand is the closed interval a product's 12-month return is drawn from.
type ReturnBand struct {
	Min float64
	Max float64
}

// Contains reports whether r lies within the band.
func (b ReturnBand) Contains(r float64) bool {
	return r >= b.Min && r <= b.Max
}

// ProductRule describes how the attributes of a product correlate with its type.
type ProductRule struct {
	RiskLevels        []RiskLevel
	Return12M         ReturnBand
	LicensesBenchmark bool
	LicensesSector    bool
	LicensesStrategy  bool
}

// FixedIncome reports whether the rule describes a fixed-income-like product type.
func (r ProductRule) FixedIncome() bool {
	return r.LicensesBenchmark
}

var (
	fixedIncomeBand = ReturnBand{Min: 0.08, Max: 0.13}
	equityBand      = ReturnBand{Min: 0.10, Max: 0.30}
	otherBand       = ReturnBand{Min: 0.09, Max: 0.15}
)

var productRules = map[ProductType]ProductRule{
	ProductTypeEquityFund: {
		RiskLevels:       []RiskLevel{RiskLevelMedium, RiskLevelHigh},
		Return12M:        equityBand,
		LicensesSector:   true,
		LicensesStrategy: true,
	},
	ProductTypeMultiStrategyFund: {
		RiskLevels:       []RiskLevel{RiskLevelMedium, RiskLevelHigh},
		Return12M:        equityBand,
		LicensesStrategy: true,
	},
	ProductTypeFixedIncomeFund: {
		RiskLevels:        []RiskLevel{RiskLevelLow},
		Return12M:         fixedIncomeBand,
		LicensesBenchmark: true,
		LicensesStrategy:  true,
	},
	ProductTypeCDB: {
		RiskLevels:        []RiskLevel{RiskLevelLow},
		Return12M:         fixedIncomeBand,
		LicensesBenchmark: true,
	},
	ProductTypeLCILCA: {
		RiskLevels:        []RiskLevel{RiskLevelLow},
		Return12M:         fixedIncomeBand,
		LicensesBenchmark: true,
	},
}

// defaultProductRule applies to Private Pension and to every type that has no rule of its own.
var defaultProductRule = ProductRule{
	RiskLevels: []RiskLevel{RiskLevelLow, RiskLevelMedium},
	Return12M:  otherBand,
}

// ProductRuleFor returns the rule for the given product type.
func ProductRuleFor(productType ProductType) ProductRule {
	if rule, ok := productRules[productType]; ok {
		return rule
	}

	return defaultProductRule
}

// InteractionRule describes which optional fields an interaction type licenses.
type InteractionRule struct {
	LinksProduct bool
	HasDuration  bool
	HasSearch    bool
}

var interactionRules = map[InteractionType]InteractionRule{
	InteractionTypeProductView:    {LinksProduct: true, HasDuration: true},
	InteractionTypeInvestCTAClick: {LinksProduct: true},
	InteractionTypeProductSearch:  {LinksProduct: true, HasSearch: true},
}

// InteractionRuleFor returns the rule for the given interaction type.
// Types without a rule license no optional field.
func InteractionRuleFor(interactionType InteractionType) InteractionRule {
	return interactionRules[interactionType]
}
