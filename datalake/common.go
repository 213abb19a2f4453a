package datalake

import (
	"errors"
)

const (
	// TimestampLayout is the textual layout of every timestamp written into the data lake.
	TimestampLayout = "2006-01-02 15:04:05"

	// DateLayout is the textual layout of calendar dates (market data).
	DateLayout = "2006-01-02"

	// NotApplicable marks a product attribute that the product type does not license.
	NotApplicable = "N/A"
)

var ErrEmptyValuePool = errors.New("value pool must not be empty")
var ErrInvalidCount = errors.New("invalid record count")
var ErrInvalidRange = errors.New("range minimum must not exceed its maximum")
var ErrTimeWindowInverted = errors.New("earliest valid timestamp lies after the upper bound")
var ErrConsistencyViolated = errors.New("dataset consistency violated")
