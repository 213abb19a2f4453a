package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	. "github.com/AntonStoeckl/synthetic-datalake-go/datalake/generator"
)

func Test_DefaultValuePools_Are_Valid(t *testing.T) {
	assert.NoError(t, DefaultValuePools().Validate())
	assert.NoError(t, DefaultValueRanges().Validate())
}

func Test_ValuePools_Validate_Names_The_Empty_Pool(t *testing.T) {
	pools := DefaultValuePools()
	pools.Liquidities = []string{}

	err := pools.Validate()

	assert.ErrorIs(t, err, datalake.ErrEmptyValuePool)
	assert.ErrorContains(t, err, "liquidities")
}

func Test_ValuePools_Validate_Requires_Licensed_Pools_Only(t *testing.T) {
	// arrange
	pools := DefaultValuePools()
	pools.ProductTypes = []datalake.ProductType{datalake.ProductTypeCDB, datalake.ProductTypeLCILCA}
	pools.EconomicSectors = nil
	pools.Strategies = nil

	// act / assert
	assert.NoError(t, pools.Validate(), "fixed-income products never draw sectors or strategies")

	pools.BenchmarkIndexes = nil
	err := pools.Validate()

	assert.ErrorIs(t, err, datalake.ErrEmptyValuePool)
	assert.ErrorContains(t, err, "benchmark_indexes")
}

func Test_ValueRanges_Validate(t *testing.T) {
	invertedFee := DefaultValueRanges()
	invertedFee.AdministrationFee = FloatRange{Min: 2.5, Max: 0.1}

	futureRegistration := DefaultValueRanges()
	futureRegistration.RegistrationYearsAgo = IntRange{Min: -2, Max: 0}

	singleValue := DefaultValueRanges()
	singleValue.Age = IntRange{Min: 30, Max: 30}

	tests := []struct {
		name        string
		ranges      ValueRanges
		expectedErr error
	}{
		{"inverted fee range", invertedFee, datalake.ErrInvalidRange},
		{"registration in the future", futureRegistration, datalake.ErrInvalidRange},
		{"single value range", singleValue, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ranges.Validate(), tt.expectedErr)
		})
	}
}
