package datalake

import (
	"time"
)

// MarketDataPoint is the market snapshot of one calendar day.
type MarketDataPoint struct {
	Date          time.Time
	IndexName     string
	IndexValue    float64
	BenchmarkRate float64
	ExchangeRate  float64
}

// MarketData is an alias type for a slice of MarketDataPoint.
type MarketData = []MarketDataPoint
