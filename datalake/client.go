package datalake

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskProfile is the investor suitability profile of a Client.
type RiskProfile string

const (
	RiskProfileConservative RiskProfile = "Conservative"
	RiskProfileModerate     RiskProfile = "Moderate"
	RiskProfileAggressive   RiskProfile = "Aggressive"
)

// Client is a registered investor.
type Client struct {
	ID                  string
	Name                string
	RegisteredAt        time.Time
	Age                 int
	Gender              string
	MonthlyIncome       decimal.Decimal
	NetWorth            decimal.Decimal
	RiskProfile         RiskProfile
	InvestmentObjective string
	LastInteractionAt   time.Time
}

// Clients is an alias type for a slice of Client.
type Clients = []Client
