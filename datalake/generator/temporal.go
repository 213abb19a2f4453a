package generator

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

// LatestOf returns the latest of the given lower bounds.
func LatestOf(first time.Time, others ...time.Time) time.Time {
	latest := first
	for _, bound := range others {
		if bound.After(latest) {
			latest = bound
		}
	}

	return latest
}

// timestampBetween draws a whole-second timestamp uniformly from [lower, upper].
//
// Truncation to whole seconds keeps the ordering intact after rendering with datalake.TimestampLayout.
// A lower bound after the upper bound fails with datalake.ErrTimeWindowInverted.
func timestampBetween(faker *gofakeit.Faker, lower, upper time.Time) (time.Time, error) {
	if lower.After(upper) {
		return time.Time{}, fmt.Errorf("%w: %s > %s",
			datalake.ErrTimeWindowInverted, lower.Format(time.RFC3339), upper.Format(time.RFC3339))
	}

	lowerSec := lower.Unix()
	if lower.Nanosecond() > 0 {
		lowerSec++ // round up, a truncated draw must not fall below the bound
	}
	upperSec := upper.Unix()

	if lowerSec > upperSec {
		return lower, nil
	}

	drawn := faker.Number(int(lowerSec), int(upperSec))

	return time.Unix(int64(drawn), 0).UTC(), nil
}
