package metrics

import (
	"math"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// movingAverageWindow is the number of trailing periods (target inclusive)
// contributing to the moving-average ROIC.
const movingAverageWindow = 5

// movingAverageROIC computes the trailing-window moving-average ROIC for the
// period at chronological rank in the given order. Window periods missing any
// of operating income, interest-bearing debt, or shareholders' equity are
// skipped; if none survive, or the surviving denominator is zero, the result
// is absent.
func (e *Engine) movingAverageROIC(periods []models.FinancialPeriod, order []int, rank int) *float64 {
	bd := e.movingAverageBreakdown(periods, order, rank)
	return bd.Result
}

// movingAverageBreakdown itemizes the moving-average ROIC computation for one
// target period: each contributing period's numerator and denominator share,
// the totals, and the final ratio.
func (e *Engine) movingAverageBreakdown(periods []models.FinancialPeriod, order []int, rank int) models.ROICBreakdown {
	target := periods[order[rank]]
	bd := models.ROICBreakdown{PeriodKey: target.PeriodKey}

	start := rank - movingAverageWindow + 1
	if start < 0 {
		start = 0
	}

	for r := start; r <= rank; r++ {
		p := periods[order[r]]
		oi, ok1 := val(p.OperatingIncome)
		debt, ok2 := val(p.InterestBearingDebt)
		eq, ok3 := val(p.ShareholdersEquity)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		weight := e.roicMAWeight
		if w, ok := val(p.RoicMovingAvgCalc); ok {
			weight = w
		}
		c := models.ROICContribution{
			PeriodKey:       p.PeriodKey,
			OperatingIncome: oi,
			Weight:          weight,
			Numerator:       oi * (weight / 100),
			Debt:            debt,
			Equity:          eq,
			Denominator:     debt + eq,
		}
		bd.Contributions = append(bd.Contributions, c)
		bd.NumeratorTotal += c.Numerator
		bd.DenominatorTotal += c.Denominator
	}

	if len(bd.Contributions) > 0 && bd.DenominatorTotal != 0 {
		bd.Result = ptr(round2(bd.NumeratorTotal / bd.DenominatorTotal * 100))
	}
	return bd
}

// growthRate computes a year-over-year growth percentage against the
// immediately preceding period's value. Absent when either value is missing
// or the base is zero. A swing from loss to profit would report a negative
// rate purely as an artifact of the negative base, so that case is
// sign-corrected to its positive magnitude.
func growthRate(cur, prev *float64) *float64 {
	c, ok1 := val(cur)
	p, ok2 := val(prev)
	if !ok1 || !ok2 || p == 0 {
		return nil
	}
	rate := (c/p - 1) * 100
	if p < 0 && c > 0 {
		rate = math.Abs(rate)
	}
	return ptr(round2(rate))
}
