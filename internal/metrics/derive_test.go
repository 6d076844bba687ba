package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// roicPeriod returns a period carrying only the inputs the moving-average
// ROIC needs.
func roicPeriod(key string, oi, debt, eq float64) models.FinancialPeriod {
	return models.FinancialPeriod{
		PeriodKey:           key,
		OperatingIncome:     ptr(oi),
		InterestBearingDebt: ptr(debt),
		ShareholdersEquity:  ptr(eq),
	}
}

func growthPeriod(key string, revenue, netIncome *float64) models.FinancialPeriod {
	return models.FinancialPeriod{PeriodKey: key, Revenue: revenue, NetIncome: netIncome}
}

func TestRevenueGrowth(t *testing.T) {
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		growthPeriod("2023-03", ptr(100), nil),
		growthPeriod("2024-03", ptr(150), nil),
	})

	assert.Nil(t, out[0].RevenueGrowthYoY, "earliest period has no base")
	assertValue(t, 50.00, out[1].RevenueGrowthYoY, "revenue_growth_yoy")
}

func TestProfitGrowthLossToProfit(t *testing.T) {
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		growthPeriod("2023-03", nil, ptr(-10)),
		growthPeriod("2024-03", nil, ptr(5)),
	})

	// (5/-10 - 1)*100 = -150, sign-corrected for the negative base.
	assertValue(t, 150.00, out[1].ProfitGrowthYoY, "profit_growth_yoy")
}

func TestGrowthZeroBaseAbsent(t *testing.T) {
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		growthPeriod("2023-03", ptr(0), ptr(0)),
		growthPeriod("2024-03", ptr(100), ptr(100)),
	})

	assert.Nil(t, out[1].RevenueGrowthYoY)
	assert.Nil(t, out[1].ProfitGrowthYoY)
}

func TestGrowthAcrossGapYears(t *testing.T) {
	// Growth compares against the immediately preceding period in the
	// series, not the preceding calendar year.
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		growthPeriod("2020-03", ptr(100), nil),
		growthPeriod("2023-03", ptr(200), nil),
	})

	assertValue(t, 100.00, out[1].RevenueGrowthYoY, "revenue_growth_yoy")
}

func TestMovingAverageROICUniformWindow(t *testing.T) {
	var in []models.FinancialPeriod
	for _, key := range []string{"2020-03", "2021-03", "2022-03", "2023-03", "2024-03"} {
		in = append(in, roicPeriod(key, 100, 400, 600))
	}
	out := NewEngine().DeriveAll(in)

	// 5*100*0.768 / 5*1000 * 100
	assertValue(t, 7.68, out[4].RoicMovingAvg, "roic_moving_avg")
	// Shorter windows at the start of the series still produce a value.
	assertValue(t, 7.68, out[0].RoicMovingAvg, "roic_moving_avg first period")
}

func TestMovingAverageROICWindowSlides(t *testing.T) {
	in := []models.FinancialPeriod{roicPeriod("2019-03", 1000, 400, 600)}
	for _, key := range []string{"2020-03", "2021-03", "2022-03", "2023-03", "2024-03"} {
		in = append(in, roicPeriod(key, 100, 400, 600))
	}
	out := NewEngine().DeriveAll(in)

	// 2023-03 window includes the 2019-03 spike: (1000+4*100)*0.768/5000*100
	assertValue(t, 21.50, out[4].RoicMovingAvg, "roic_moving_avg with spike in window")
	// 2024-03 window has slid past it.
	assertValue(t, 7.68, out[5].RoicMovingAvg, "roic_moving_avg after spike leaves window")
}

func TestMovingAverageROICSkipsIncompletePeriods(t *testing.T) {
	in := []models.FinancialPeriod{
		roicPeriod("2022-03", 100, 400, 600),
		{PeriodKey: "2023-03", OperatingIncome: ptr(500)}, // no debt/equity
		roicPeriod("2024-03", 100, 400, 600),
	}
	out := NewEngine().DeriveAll(in)

	// The incomplete 2023-03 contributes nothing; the two complete periods do.
	assertValue(t, 7.68, out[2].RoicMovingAvg, "roic_moving_avg")
}

func TestMovingAverageROICEmptyWindowAbsent(t *testing.T) {
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		{PeriodKey: "2024-03", Revenue: ptr(100)},
	})
	assert.Nil(t, out[0].RoicMovingAvg)
}

func TestMovingAverageROICZeroDenominatorAbsent(t *testing.T) {
	out := NewEngine().DeriveAll([]models.FinancialPeriod{
		roicPeriod("2024-03", 100, 100, -100),
	})
	assert.Nil(t, out[0].RoicMovingAvg)
}

func TestMovingAverageROICCustomWeight(t *testing.T) {
	var in []models.FinancialPeriod
	for _, key := range []string{"2020-03", "2021-03", "2022-03", "2023-03", "2024-03"} {
		in = append(in, roicPeriod(key, 100, 400, 600))
	}
	out := NewEngine(WithROICMAWeight(100)).DeriveAll(in)

	assertValue(t, 10.00, out[4].RoicMovingAvg, "roic_moving_avg at weight 100")
}

func TestDeriveAllLeavesInputUntouched(t *testing.T) {
	in := []models.FinancialPeriod{roicPeriod("2024-03", 100, 400, 600)}
	NewEngine().DeriveAll(in)
	assert.Nil(t, in[0].RoicMovingAvg)
	assert.Nil(t, in[0].RoicMovingAvgCalc)
}

func TestDeriveAllIdempotent(t *testing.T) {
	in := []models.FinancialPeriod{
		fullPeriod("2023-03"),
		fullPeriod("2024-03"),
	}
	e := NewEngine()
	once := e.DeriveAll(in)
	twice := e.DeriveAll(once)
	assert.Equal(t, once, twice)
}

func TestDeriveAllOrderIndependent(t *testing.T) {
	a := growthPeriod("2022-03", ptr(100), ptr(10))
	b := growthPeriod("2023-03", ptr(150), ptr(20))
	c := growthPeriod("2024-03", ptr(300), ptr(30))

	e := NewEngine()
	sorted := e.DeriveAll([]models.FinancialPeriod{a, b, c})
	shuffled := e.DeriveAll([]models.FinancialPeriod{c, a, b})

	// Output positions match input positions; compare by period key.
	byKey := func(out []models.FinancialPeriod) map[string]models.FinancialPeriod {
		m := make(map[string]models.FinancialPeriod, len(out))
		for _, p := range out {
			m[p.PeriodKey] = p
		}
		return m
	}
	assert.Equal(t, byKey(sorted), byKey(shuffled))
	assertValue(t, 100.00, byKey(shuffled)["2024-03"].RevenueGrowthYoY, "revenue_growth_yoy")
}

func TestMovingAverageBreakdown(t *testing.T) {
	in := []models.FinancialPeriod{
		roicPeriod("2023-03", 200, 400, 600),
		roicPeriod("2024-03", 100, 400, 600),
	}
	bd, err := NewEngine().MovingAverageBreakdown(in, "2024-03")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", bd.PeriodKey)
	require.Len(t, bd.Contributions, 2)
	assert.Equal(t, "2023-03", bd.Contributions[0].PeriodKey)
	assert.Equal(t, "2024-03", bd.Contributions[1].PeriodKey)
	assert.InDelta(t, 200*0.768, bd.Contributions[0].Numerator, 1e-9)
	assert.InDelta(t, 1000.0, bd.Contributions[0].Denominator, 1e-9)
	assert.InDelta(t, 300*0.768, bd.NumeratorTotal, 1e-9)
	assert.InDelta(t, 2000.0, bd.DenominatorTotal, 1e-9)
	// 230.4/2000*100
	assertValue(t, 11.52, bd.Result, "result")
}

func TestMovingAverageBreakdownUnknownPeriod(t *testing.T) {
	_, err := NewEngine().MovingAverageBreakdown(nil, "2024-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
