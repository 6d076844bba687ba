package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// fullPeriod returns a period with every raw input populated. Expected
// derived values are asserted in TestDeriveFullPeriod.
func fullPeriod(key string) models.FinancialPeriod {
	return models.FinancialPeriod{
		PeriodKey:                 key,
		Revenue:                   ptr(2000),
		NetIncome:                 ptr(120),
		OperatingIncome:           ptr(180),
		InterestExpense:           ptr(8),
		CashAndEquivalents:        ptr(150),
		CurrentAssets:             ptr(900),
		InvestmentsAndOtherAssets: ptr(300),
		CurrentLiabilities:        ptr(400),
		FixedLiabilities:          ptr(250),
		InterestBearingDebt:       ptr(400),
		ShareholdersEquity:        ptr(600),
		NetAssets:                 ptr(500),
		TotalAssets:               ptr(1000),
		SharesOutstanding:         ptr(50),
		StockPriceEnd:             ptr(3000),
		EffectiveTaxRate:          ptr(30),
		Beta:                      ptr(1.0),
		DebtCost:                  ptr(2),
		OperatingCF:               ptr(220),
		InvestingCF:               ptr(-70),
	}
}

// deriveOne runs a single period through the engine and returns the result.
func deriveOne(t *testing.T, e *Engine, p models.FinancialPeriod) models.FinancialPeriod {
	t.Helper()
	out := e.DeriveAll([]models.FinancialPeriod{p})
	require.Len(t, out, 1)
	return out[0]
}

func assertValue(t *testing.T, expected float64, actual *float64, field string) {
	t.Helper()
	require.NotNil(t, actual, "%s should be present", field)
	assert.InDelta(t, expected, *actual, 1e-9, field)
}

func TestDeriveFullPeriod(t *testing.T) {
	p := deriveOne(t, NewEngine(), fullPeriod("2024-03"))

	assertValue(t, 50.00, p.EquityRatio, "equity_ratio")
	assertValue(t, 6.00, p.NetProfitMargin, "net_profit_margin")
	assertValue(t, 9.00, p.OperatingProfitMargin, "operating_profit_margin")
	assertValue(t, 36000, p.CurrentBusinessValue, "current_business_value")
	// (900 - 400*1.2 + 300 - 250) * 1000 / 50
	assertValue(t, 9400, p.CurrentAssetValue, "current_asset_value")
	assertValue(t, 45400, p.CurrentTheoreticalStockPrice, "current_theoretical_stock_price")
	assertValue(t, 42400, p.MarginOfSafetyCurrent, "margin_of_safety_current")
	assertValue(t, 1413.33, p.SafetyRatioCurrent, "safety_ratio_current")
	assertValue(t, 150.00, p.FreeCashFlow, "free_cash_flow")
	assertValue(t, 24.00, p.ROE, "roe")
	assertValue(t, 12.00, p.ROA, "roa")
	assertValue(t, 12.60, p.ROIC, "roic")
	assertValue(t, 76.80, p.RoicMovingAvgCalc, "roic_moving_avg_calc")
	assertValue(t, 2.00, p.InterestRate, "interest_rate")
	assertValue(t, 5.50, p.EquityCost, "equity_cost")
	// (1-0.5)*0.02 + 0.5*0.055 = 0.0375, reported in percent
	assertValue(t, 3.75, p.TheoreticalDiscountRate, "theoretical_discount_rate")
	assertValue(t, 1.25, p.PER, "per")
	assertValue(t, 0.30, p.PBR, "pbr")
}

func TestEquityRatioScenario(t *testing.T) {
	p := deriveOne(t, NewEngine(), models.FinancialPeriod{
		PeriodKey:   "2024-03",
		NetAssets:   ptr(500),
		TotalAssets: ptr(1000),
	})
	assertValue(t, 50.00, p.EquityRatio, "equity_ratio")
}

func TestZeroRevenueSuppressesMargins(t *testing.T) {
	p := deriveOne(t, NewEngine(), models.FinancialPeriod{
		PeriodKey:       "2024-03",
		Revenue:         ptr(0),
		NetIncome:       ptr(50),
		OperatingIncome: ptr(80),
	})
	assert.Nil(t, p.NetProfitMargin)
	assert.Nil(t, p.OperatingProfitMargin)
}

func TestGuardTotality(t *testing.T) {
	// Removing one raw input makes exactly the fields depending on it
	// absent and leaves the rest untouched.
	tests := []struct {
		name   string
		remove func(*models.FinancialPeriod)
		absent func(models.FinancialPeriod) []*float64
		keep   func(models.FinancialPeriod) []*float64
	}{
		{
			name:   "no revenue",
			remove: func(p *models.FinancialPeriod) { p.Revenue = nil },
			absent: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.NetProfitMargin, p.OperatingProfitMargin}
			},
			keep: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.EquityRatio, p.ROE, p.ROIC, p.PER}
			},
		},
		{
			name:   "no shares outstanding",
			remove: func(p *models.FinancialPeriod) { p.SharesOutstanding = nil },
			absent: func(p models.FinancialPeriod) []*float64 {
				return []*float64{
					p.CurrentBusinessValue, p.CurrentAssetValue,
					p.CurrentTheoreticalStockPrice, p.MarginOfSafetyCurrent,
					p.SafetyRatioCurrent, p.PER, p.PBR,
				}
			},
			keep: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.EquityRatio, p.ROE, p.FreeCashFlow}
			},
		},
		{
			name:   "no beta",
			remove: func(p *models.FinancialPeriod) { p.Beta = nil },
			absent: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.EquityCost, p.TheoreticalDiscountRate}
			},
			keep: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.EquityRatio, p.InterestRate, p.ROIC}
			},
		},
		{
			name:   "no interest-bearing debt",
			remove: func(p *models.FinancialPeriod) { p.InterestBearingDebt = nil },
			absent: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.ROIC, p.InterestRate}
			},
			keep: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.ROE, p.ROA, p.EquityCost}
			},
		},
		{
			name:   "no operating cash flow",
			remove: func(p *models.FinancialPeriod) { p.OperatingCF = nil },
			absent: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.FreeCashFlow}
			},
			keep: func(p models.FinancialPeriod) []*float64 {
				return []*float64{p.EquityRatio, p.ROE, p.PER}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fullPeriod("2024-03")
			tt.remove(&in)
			p := deriveOne(t, NewEngine(), in)
			for i, a := range tt.absent(p) {
				assert.Nil(t, a, "absent field %d", i)
			}
			for i, k := range tt.keep(p) {
				assert.NotNil(t, k, "kept field %d", i)
			}
		})
	}
}

func TestUnlistedSentinelSuppressesPriceMetrics(t *testing.T) {
	in := fullPeriod("2024-03")
	in.StockPriceEnd = ptr(models.UnlistedStockPrice)
	p := deriveOne(t, NewEngine(), in)

	assert.Nil(t, p.MarginOfSafetyCurrent)
	assert.Nil(t, p.SafetyRatioCurrent)
	assert.Nil(t, p.PER)
	assert.Nil(t, p.PBR)

	// Non-price metrics unaffected
	assert.NotNil(t, p.EquityRatio)
	assert.NotNil(t, p.CurrentTheoreticalStockPrice)
	assert.NotNil(t, p.ROIC)
}

func TestZeroDenominatorsSuppressOutputs(t *testing.T) {
	in := fullPeriod("2024-03")
	in.TotalAssets = ptr(0)
	in.NetAssets = ptr(0)
	in.InterestBearingDebt = ptr(100)
	in.ShareholdersEquity = ptr(-100)
	p := deriveOne(t, NewEngine(), in)

	assert.Nil(t, p.EquityRatio, "total_assets is zero")
	assert.Nil(t, p.ROA, "total_assets is zero")
	assert.Nil(t, p.ROE, "net_assets is zero")
	assert.Nil(t, p.PBR, "net_assets is zero")
	assert.Nil(t, p.ROIC, "debt+equity is zero")
	// equity_ratio absent cascades into the discount rate
	assert.Nil(t, p.TheoreticalDiscountRate)
}

func TestNonFiniteInputNormalizedToAbsent(t *testing.T) {
	in := fullPeriod("2024-03")
	nan := 0.0
	nan = nan / nan
	in.Revenue = &nan
	p := deriveOne(t, NewEngine(), in)

	assert.Nil(t, p.NetProfitMargin)
	assert.Nil(t, p.OperatingProfitMargin)
	assert.NotNil(t, p.EquityRatio)
}

func TestRounding(t *testing.T) {
	// Half away from zero, both signs. The inputs are exact binary
	// fractions so the half cases are genuine.
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, 33.33, round2(100.0/3.0))
	assert.Equal(t, 3.0, roundInt(2.5))
	assert.Equal(t, -3.0, roundInt(-2.5))
	assert.Equal(t, 2.0, roundInt(2.4))
}

func TestConfigurableWeight(t *testing.T) {
	e := NewEngine(WithROICMAWeight(100))
	p := deriveOne(t, e, fullPeriod("2024-03"))
	assertValue(t, 100, p.RoicMovingAvgCalc, "roic_moving_avg_calc")

	// Non-positive override is ignored
	e = NewEngine(WithROICMAWeight(-5))
	p = deriveOne(t, e, fullPeriod("2024-03"))
	assertValue(t, DefaultROICMAWeight, p.RoicMovingAvgCalc, "roic_moving_avg_calc")
}
