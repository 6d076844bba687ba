package metrics

import (
	"fmt"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// DeriveAll recomputes every derived field for every period in the series and
// returns the result as a new slice, leaving the input untouched. The caller
// may pass periods in any order; output positions match input positions.
//
// The computation runs in two independent passes: first the intra-period
// formula graph over each period's raw inputs, then the cross-period
// aggregation (moving-average ROIC, YoY growth) over the raw inputs of the
// chronologically sorted series. Cross-period fields never read another
// period's derived values, so the function is total, pure, and idempotent:
// any single raw mutation anywhere in a series is handled by re-invoking it
// over the whole series.
func (e *Engine) DeriveAll(periods []models.FinancialPeriod) []models.FinancialPeriod {
	out := make([]models.FinancialPeriod, len(periods))
	copy(out, periods)

	for i := range out {
		sanitizeRaw(&out[i])
		e.derivePeriod(&out[i])
	}

	order := sortedOrder(out)
	rank := make([]int, len(out))
	for r, i := range order {
		rank[i] = r
	}

	for i := range out {
		r := rank[i]
		out[i].RoicMovingAvg = e.movingAverageROIC(out, order, r)
		if r > 0 {
			prev := &out[order[r-1]]
			out[i].RevenueGrowthYoY = growthRate(out[i].Revenue, prev.Revenue)
			out[i].ProfitGrowthYoY = growthRate(out[i].NetIncome, prev.NetIncome)
		}
	}

	return out
}

// MovingAverageBreakdown returns the itemized moving-average ROIC report for
// the period with the given key. The series is re-derived internally, so the
// report is consistent with DeriveAll regardless of the state the caller
// passes in.
func (e *Engine) MovingAverageBreakdown(periods []models.FinancialPeriod, periodKey string) (*models.ROICBreakdown, error) {
	derived := e.DeriveAll(periods)
	order := sortedOrder(derived)
	for r, i := range order {
		if derived[i].PeriodKey == periodKey {
			bd := e.movingAverageBreakdown(derived, order, r)
			return &bd, nil
		}
	}
	return nil, fmt.Errorf("period '%s' not found in series", periodKey)
}
