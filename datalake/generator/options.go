package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

var ErrNilClock = errors.New("clock must not be nil")
var ErrEmptyIndexName = errors.New("market index name must not be empty")

// Logger interface for progress reporting, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator) error

// WithSeed makes the attribute values of a run reproducible.
// Zero, the default, seeds from a cryptographic source.
func WithSeed(seed int64) Option {
	return func(g *Generator) error {
		g.seed = seed
		return nil
	}
}

// WithClock sets the source of "now", the upper bound of every generated timestamp.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) error {
		if clock == nil {
			return ErrNilClock
		}

		g.clock = clock

		return nil
	}
}

// WithIDStrategy sets how record identifiers are built.
func WithIDStrategy(strategy IDStrategy) Option {
	return func(g *Generator) error {
		if _, err := ParseIDStrategy(string(strategy)); err != nil {
			return err
		}

		g.idStrategy = strategy

		return nil
	}
}

// WithValuePools replaces the default value pools.
func WithValuePools(pools ValuePools) Option {
	return func(g *Generator) error {
		if err := pools.Validate(); err != nil {
			return err
		}

		g.pools = pools

		return nil
	}
}

// WithValueRanges replaces the default numeric ranges.
func WithValueRanges(ranges ValueRanges) Option {
	return func(g *Generator) error {
		if err := ranges.Validate(); err != nil {
			return err
		}

		g.ranges = ranges

		return nil
	}
}

// WithMarketData sets the calendar range and index name of the market data series.
// A zero end date means "today" according to the generator's clock.
func WithMarketData(start, end time.Time, indexName string) Option {
	return func(g *Generator) error {
		if indexName == "" {
			return ErrEmptyIndexName
		}

		if start.IsZero() || (!end.IsZero() && end.Before(start)) {
			return fmt.Errorf("%w: market data start %s, end %s",
				datalake.ErrInvalidRange, start.Format(datalake.DateLayout), end.Format(datalake.DateLayout))
		}

		g.marketData = marketDataSpan{enabled: true, start: start, end: end, indexName: indexName}

		return nil
	}
}

// WithoutMarketData disables the market data series.
func WithoutMarketData() Option {
	return func(g *Generator) error {
		g.marketData.enabled = false
		return nil
	}
}

// WithLogger sets the logger for the Generator.
// Info level: one message per generated entity set with its row count and duration.
// Debug level: the effective configuration of a run.
func WithLogger(logger Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}
