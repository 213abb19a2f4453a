package datalake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ProductRuleFor(t *testing.T) {
	tests := []struct {
		productType       ProductType
		expectedRisks     []RiskLevel
		expectedBand      ReturnBand
		expectedBenchmark bool
		expectedSector    bool
		expectedStrategy  bool
	}{
		{ProductTypeEquityFund, []RiskLevel{RiskLevelMedium, RiskLevelHigh}, ReturnBand{0.10, 0.30}, false, true, true},
		{ProductTypeMultiStrategyFund, []RiskLevel{RiskLevelMedium, RiskLevelHigh}, ReturnBand{0.10, 0.30}, false, false, true},
		{ProductTypeFixedIncomeFund, []RiskLevel{RiskLevelLow}, ReturnBand{0.08, 0.13}, true, false, true},
		{ProductTypeCDB, []RiskLevel{RiskLevelLow}, ReturnBand{0.08, 0.13}, true, false, false},
		{ProductTypeLCILCA, []RiskLevel{RiskLevelLow}, ReturnBand{0.08, 0.13}, true, false, false},
		{ProductTypePrivatePension, []RiskLevel{RiskLevelLow, RiskLevelMedium}, ReturnBand{0.09, 0.15}, false, false, false},
		{ProductType("Debenture"), []RiskLevel{RiskLevelLow, RiskLevelMedium}, ReturnBand{0.09, 0.15}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.productType), func(t *testing.T) {
			rule := ProductRuleFor(tt.productType)

			assert.Equal(t, tt.expectedRisks, rule.RiskLevels)
			assert.Equal(t, tt.expectedBand, rule.Return12M)
			assert.Equal(t, tt.expectedBenchmark, rule.LicensesBenchmark)
			assert.Equal(t, tt.expectedSector, rule.LicensesSector)
			assert.Equal(t, tt.expectedStrategy, rule.LicensesStrategy)
			assert.Equal(t, tt.expectedBenchmark, rule.FixedIncome())
		})
	}
}

func Test_InteractionRuleFor(t *testing.T) {
	tests := []struct {
		interactionType InteractionType
		expected        InteractionRule
	}{
		{InteractionTypeProductView, InteractionRule{LinksProduct: true, HasDuration: true}},
		{InteractionTypeInvestCTAClick, InteractionRule{LinksProduct: true}},
		{InteractionTypeProductSearch, InteractionRule{LinksProduct: true, HasSearch: true}},
		{InteractionTypeMaterialDownload, InteractionRule{}},
		{InteractionTypeSupportContact, InteractionRule{}},
		{InteractionTypeLoggedAreaAccess, InteractionRule{}},
		{InteractionType("Newsletter Signup"), InteractionRule{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.interactionType), func(t *testing.T) {
			assert.Equal(t, tt.expected, InteractionRuleFor(tt.interactionType))
		})
	}
}

func Test_ReturnBand_Contains_Is_Inclusive(t *testing.T) {
	band := ReturnBand{Min: 0.08, Max: 0.13}

	assert.True(t, band.Contains(0.08))
	assert.True(t, band.Contains(0.13))
	assert.True(t, band.Contains(0.1))
	assert.False(t, band.Contains(0.0799))
	assert.False(t, band.Contains(0.1301))
}
