package metrics

import (
	"math"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// DefaultROICMAWeight is the default per-period weighting factor (in percent)
// applied to operating income in the moving-average ROIC numerator. The value
// is marked provisional on the reference analysis sheet, so the engine takes
// it as a tunable rather than inlining the literal.
const DefaultROICMAWeight = 76.80

// Engine derives all computed financial metrics from raw period inputs.
// It is stateless apart from its tunables: every derivation call is an
// independent pure function over one snapshot of a company's series.
type Engine struct {
	roicMAWeight float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithROICMAWeight overrides the moving-average weighting factor.
// Non-positive values are ignored.
func WithROICMAWeight(w float64) Option {
	return func(e *Engine) {
		if w > 0 {
			e.roicMAWeight = w
		}
	}
}

// NewEngine creates a derivation engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{roicMAWeight: DefaultROICMAWeight}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// val unpacks an optional field. ok is false when the value is absent.
func val(p *float64) (v float64, ok bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func ptr(v float64) *float64 {
	return &v
}

// round2 rounds to 2 decimals, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// roundInt rounds to the nearest integer, half away from zero.
func roundInt(x float64) float64 {
	return math.Round(x)
}

// dropNonFinite clears a raw input that arrived as NaN or ±Inf. Letting a
// non-finite value into the formula graph would corrupt downstream sums, so
// it is normalized to absent before derivation.
func dropNonFinite(p **float64) {
	if *p != nil && (math.IsNaN(**p) || math.IsInf(**p, 0)) {
		*p = nil
	}
}

// sanitizeRaw normalizes all non-finite raw inputs of a period to absent.
func sanitizeRaw(p *models.FinancialPeriod) {
	dropNonFinite(&p.Revenue)
	dropNonFinite(&p.NetIncome)
	dropNonFinite(&p.OperatingIncome)
	dropNonFinite(&p.InterestExpense)
	dropNonFinite(&p.CashAndEquivalents)
	dropNonFinite(&p.CurrentAssets)
	dropNonFinite(&p.InvestmentsAndOtherAssets)
	dropNonFinite(&p.CurrentLiabilities)
	dropNonFinite(&p.FixedLiabilities)
	dropNonFinite(&p.InterestBearingDebt)
	dropNonFinite(&p.ShareholdersEquity)
	dropNonFinite(&p.NetAssets)
	dropNonFinite(&p.TotalAssets)
	dropNonFinite(&p.SharesOutstanding)
	dropNonFinite(&p.StockPriceEnd)
	dropNonFinite(&p.EffectiveTaxRate)
	dropNonFinite(&p.Beta)
	dropNonFinite(&p.DebtCost)
	dropNonFinite(&p.OperatingCF)
	dropNonFinite(&p.InvestingCF)
}
