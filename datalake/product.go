package datalake

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType is the category of an investment product.
type ProductType string

const (
	ProductTypeEquityFund        ProductType = "Equity Fund"
	ProductTypeMultiStrategyFund ProductType = "Multi-Strategy Fund"
	ProductTypeFixedIncomeFund   ProductType = "Fixed Income Fund"
	ProductTypeCDB               ProductType = "CDB"
	ProductTypeLCILCA            ProductType = "LCI/LCA"
	ProductTypePrivatePension    ProductType = "Private Pension"
)

// RiskLevel is the risk classification of a Product.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// ProductStatusActive is the status of every generated product.
const ProductStatusActive = "Active"

// Product is an investment product offered to clients.
//
// BenchmarkIndex, EconomicSector and Strategy hold NotApplicable unless the product type licenses them,
// see ProductRuleFor.
type Product struct {
	ID                string
	Name              string
	Type              ProductType
	RiskLevel         RiskLevel
	Return12M         float64
	Return36M         float64
	AdministrationFee float64
	MinimumInvestment decimal.Decimal
	Liquidity         string
	BenchmarkIndex    string
	EconomicSector    string
	Strategy          string
	LaunchedAt        time.Time
	Status            string
}

// Products is an alias type for a slice of Product.
type Products = []Product
