package metrics

import "github.com/kenshiro-fujita/investment-analysis/internal/models"

// Equity cost follows the CAPM-style rule the analysis sheet uses:
// risk-free base 4% plus beta times a 5.46% market premium.
const (
	equityCostBase    = 0.04
	equityCostPremium = 5.46
)

// derivePeriod computes all intra-period derived fields from the period's raw
// inputs. The formulas form a dependency graph and are evaluated in
// topological order: later formulas (theoretical discount rate, margin of
// safety) consume outputs computed earlier in the same pass. Every previous
// derived value is cleared first, so a guard failure leaves the field absent
// rather than stale.
func (e *Engine) derivePeriod(p *models.FinancialPeriod) {
	clearDerived(p)

	// Profitability ratios
	if na, ok := val(p.NetAssets); ok {
		if ta, ok := val(p.TotalAssets); ok && ta != 0 {
			p.EquityRatio = ptr(round2(na / ta * 100))
		}
	}
	if ni, ok := val(p.NetIncome); ok {
		if rev, ok := val(p.Revenue); ok && rev != 0 {
			p.NetProfitMargin = ptr(round2(ni / rev * 100))
		}
	}
	if oi, ok := val(p.OperatingIncome); ok {
		if rev, ok := val(p.Revenue); ok && rev != 0 {
			p.OperatingProfitMargin = ptr(round2(oi / rev * 100))
		}
	}

	// Intrinsic valuation: per-share business value plus per-share asset
	// value gives the theoretical stock price.
	shares, hasShares := val(p.SharesOutstanding)
	if oi, ok := val(p.OperatingIncome); ok && hasShares && shares != 0 {
		p.CurrentBusinessValue = ptr(roundInt(oi * 10000 / shares))
	}
	if ca, ok1 := val(p.CurrentAssets); ok1 {
		if cl, ok2 := val(p.CurrentLiabilities); ok2 {
			if ioa, ok3 := val(p.InvestmentsAndOtherAssets); ok3 {
				if fl, ok4 := val(p.FixedLiabilities); ok4 && hasShares && shares != 0 {
					p.CurrentAssetValue = ptr(roundInt((ca - cl*1.2 + ioa - fl) * 1000 / shares))
				}
			}
		}
	}
	if bv, ok := val(p.CurrentBusinessValue); ok {
		if av, ok := val(p.CurrentAssetValue); ok {
			p.CurrentTheoreticalStockPrice = ptr(roundInt(bv + av))
		}
	}

	// Margin of safety requires a real market price; the unlisted sentinel
	// (-1) and zero fail the price guard.
	price, listed := p.ListedPrice()
	if tp, ok := val(p.CurrentTheoreticalStockPrice); ok && listed {
		p.MarginOfSafetyCurrent = ptr(roundInt(tp - price))
	}
	if mos, ok := val(p.MarginOfSafetyCurrent); ok && listed {
		p.SafetyRatioCurrent = ptr(round2(mos / price * 100))
	}

	// Cash flow
	if ocf, ok := val(p.OperatingCF); ok {
		if icf, ok := val(p.InvestingCF); ok {
			p.FreeCashFlow = ptr(round2(ocf + icf))
		}
	}

	// Returns
	if ni, ok := val(p.NetIncome); ok {
		if na, ok := val(p.NetAssets); ok && na != 0 {
			p.ROE = ptr(round2(ni / na * 100))
		}
		if ta, ok := val(p.TotalAssets); ok && ta != 0 {
			p.ROA = ptr(round2(ni / ta * 100))
		}
	}
	if oi, ok := val(p.OperatingIncome); ok {
		if tax, ok := val(p.EffectiveTaxRate); ok {
			if debt, ok := val(p.InterestBearingDebt); ok {
				if eq, ok := val(p.ShareholdersEquity); ok && debt+eq != 0 {
					p.ROIC = ptr(round2(oi * (1 - tax/100) / (debt + eq) * 100))
				}
			}
		}
	}

	// Weighting factor consumed by the moving-average aggregation.
	p.RoicMovingAvgCalc = ptr(e.roicMAWeight)

	// Cost of capital
	if ie, ok := val(p.InterestExpense); ok {
		if debt, ok := val(p.InterestBearingDebt); ok && debt != 0 {
			p.InterestRate = ptr(round2(ie / debt * 100))
		}
	}
	if beta, ok := val(p.Beta); ok {
		p.EquityCost = ptr(round2(equityCostBase + beta*equityCostPremium))
	}
	if er, ok := val(p.EquityRatio); ok {
		if dc, ok := val(p.DebtCost); ok {
			if ec, ok := val(p.EquityCost); ok {
				rate := (1-er/100)*dc/100 + (er/100)*ec/100
				p.TheoreticalDiscountRate = ptr(round2(rate * 100))
			}
		}
	}

	// Market multiples
	if listed && hasShares {
		if ni, ok := val(p.NetIncome); ok && ni != 0 {
			p.PER = ptr(round2(price * shares / (ni * 1000)))
		}
		if na, ok := val(p.NetAssets); ok && na != 0 {
			p.PBR = ptr(round2(price * shares / (na * 1000)))
		}
	}
}

// clearDerived resets every derived field to absent. Derived fields are a
// pure function of raw inputs, never of a previous derivation pass.
func clearDerived(p *models.FinancialPeriod) {
	p.EquityRatio = nil
	p.NetProfitMargin = nil
	p.OperatingProfitMargin = nil
	p.CurrentBusinessValue = nil
	p.CurrentAssetValue = nil
	p.CurrentTheoreticalStockPrice = nil
	p.MarginOfSafetyCurrent = nil
	p.SafetyRatioCurrent = nil
	p.FreeCashFlow = nil
	p.ROE = nil
	p.ROA = nil
	p.ROIC = nil
	p.RoicMovingAvgCalc = nil
	p.RoicMovingAvg = nil
	p.InterestRate = nil
	p.EquityCost = nil
	p.TheoreticalDiscountRate = nil
	p.PER = nil
	p.PBR = nil
	p.RevenueGrowthYoY = nil
	p.ProfitGrowthYoY = nil
}
