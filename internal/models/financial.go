package models

import "time"

// UnlistedStockPrice is the reserved period-end stock price meaning "company
// is not listed". It is a deliberate domain sentinel, distinct from absence:
// an unlisted company has no market price, so all price-dependent metrics
// (margin of safety, safety ratio, PER, PBR) are suppressed.
const UnlistedStockPrice = -1

// FinancialPeriod is one reporting-date snapshot of a company's financial
// statement and market data. Raw inputs are entered by the user; derived
// fields are recomputed by the metrics engine on every raw mutation and are
// never hand-edited. For every numeric field, nil means "not known" (raw) or
// "not computable" (derived) — absence is explicit and distinct from zero.
type FinancialPeriod struct {
	ID string `json:"id"`

	// PeriodKey is the reporting date in canonical "YYYY-MM" form. It is
	// unique within a company and doubles as the chronological sort key
	// (zero-padded, so lexicographic order is calendar order).
	PeriodKey string `json:"period_key"`

	// Income statement
	Revenue         *float64 `json:"revenue,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	OperatingIncome *float64 `json:"operating_income,omitempty"`
	InterestExpense *float64 `json:"interest_expense,omitempty"`

	// Balance sheet
	CashAndEquivalents        *float64 `json:"cash_and_equivalents,omitempty"`
	CurrentAssets             *float64 `json:"current_assets,omitempty"`
	InvestmentsAndOtherAssets *float64 `json:"investments_and_other_assets,omitempty"`
	CurrentLiabilities        *float64 `json:"current_liabilities,omitempty"`
	FixedLiabilities          *float64 `json:"fixed_liabilities,omitempty"`
	InterestBearingDebt       *float64 `json:"interest_bearing_debt,omitempty"`
	ShareholdersEquity        *float64 `json:"shareholders_equity,omitempty"`
	NetAssets                 *float64 `json:"net_assets,omitempty"`
	TotalAssets               *float64 `json:"total_assets,omitempty"`

	// Market data
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	StockPriceEnd     *float64 `json:"stock_price_end,omitempty"`

	// Other raw inputs
	EffectiveTaxRate *float64 `json:"effective_tax_rate,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
	DebtCost         *float64 `json:"debt_cost,omitempty"`
	OperatingCF      *float64 `json:"operating_cf,omitempty"`
	InvestingCF      *float64 `json:"investing_cf,omitempty"`
	Comment          string   `json:"comment,omitempty"`

	// Derived — profitability
	EquityRatio           *float64 `json:"equity_ratio,omitempty"`
	NetProfitMargin       *float64 `json:"net_profit_margin,omitempty"`
	OperatingProfitMargin *float64 `json:"operating_profit_margin,omitempty"`
	ROE                   *float64 `json:"roe,omitempty"`
	ROA                   *float64 `json:"roa,omitempty"`
	ROIC                  *float64 `json:"roic,omitempty"`

	// Derived — intrinsic valuation
	CurrentBusinessValue         *float64 `json:"current_business_value,omitempty"`
	CurrentAssetValue            *float64 `json:"current_asset_value,omitempty"`
	CurrentTheoreticalStockPrice *float64 `json:"current_theoretical_stock_price,omitempty"`
	MarginOfSafetyCurrent        *float64 `json:"margin_of_safety_current,omitempty"`
	SafetyRatioCurrent           *float64 `json:"safety_ratio_current,omitempty"`

	// Derived — cash flow
	FreeCashFlow *float64 `json:"free_cash_flow,omitempty"`

	// Derived — cost of capital
	InterestRate            *float64 `json:"interest_rate,omitempty"`
	EquityCost              *float64 `json:"equity_cost,omitempty"`
	TheoreticalDiscountRate *float64 `json:"theoretical_discount_rate,omitempty"`

	// Derived — market multiples
	PER *float64 `json:"per,omitempty"`
	PBR *float64 `json:"pbr,omitempty"`

	// Derived — cross-period
	RoicMovingAvgCalc *float64 `json:"roic_moving_avg_calc,omitempty"`
	RoicMovingAvg     *float64 `json:"roic_moving_avg,omitempty"`
	RevenueGrowthYoY  *float64 `json:"revenue_growth_yoy,omitempty"`
	ProfitGrowthYoY   *float64 `json:"profit_growth_yoy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListedPrice returns the period-end stock price and true when the company
// has a usable market price. The unlisted sentinel (-1), zero, negative and
// absent prices all report false.
func (p *FinancialPeriod) ListedPrice() (float64, bool) {
	if p.StockPriceEnd == nil || *p.StockPriceEnd <= 0 {
		return 0, false
	}
	return *p.StockPriceEnd, true
}

// FinancialInput is the create/update request payload for a financial period.
// It carries raw inputs only: derived fields are recomputed from scratch on
// every mutation and cannot be set by the client.
type FinancialInput struct {
	PeriodKey string `json:"period_key"`

	Revenue         *float64 `json:"revenue,omitempty"`
	NetIncome       *float64 `json:"net_income,omitempty"`
	OperatingIncome *float64 `json:"operating_income,omitempty"`
	InterestExpense *float64 `json:"interest_expense,omitempty"`

	CashAndEquivalents        *float64 `json:"cash_and_equivalents,omitempty"`
	CurrentAssets             *float64 `json:"current_assets,omitempty"`
	InvestmentsAndOtherAssets *float64 `json:"investments_and_other_assets,omitempty"`
	CurrentLiabilities        *float64 `json:"current_liabilities,omitempty"`
	FixedLiabilities          *float64 `json:"fixed_liabilities,omitempty"`
	InterestBearingDebt       *float64 `json:"interest_bearing_debt,omitempty"`
	ShareholdersEquity        *float64 `json:"shareholders_equity,omitempty"`
	NetAssets                 *float64 `json:"net_assets,omitempty"`
	TotalAssets               *float64 `json:"total_assets,omitempty"`

	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	StockPriceEnd     *float64 `json:"stock_price_end,omitempty"`

	EffectiveTaxRate *float64 `json:"effective_tax_rate,omitempty"`
	Beta             *float64 `json:"beta,omitempty"`
	DebtCost         *float64 `json:"debt_cost,omitempty"`
	OperatingCF      *float64 `json:"operating_cf,omitempty"`
	InvestingCF      *float64 `json:"investing_cf,omitempty"`
	Comment          string   `json:"comment,omitempty"`
}

// ApplyTo copies the input's raw fields onto the period record, replacing all
// previous raw values. The period key is canonicalized by the caller.
func (in *FinancialInput) ApplyTo(p *FinancialPeriod) {
	p.Revenue = in.Revenue
	p.NetIncome = in.NetIncome
	p.OperatingIncome = in.OperatingIncome
	p.InterestExpense = in.InterestExpense
	p.CashAndEquivalents = in.CashAndEquivalents
	p.CurrentAssets = in.CurrentAssets
	p.InvestmentsAndOtherAssets = in.InvestmentsAndOtherAssets
	p.CurrentLiabilities = in.CurrentLiabilities
	p.FixedLiabilities = in.FixedLiabilities
	p.InterestBearingDebt = in.InterestBearingDebt
	p.ShareholdersEquity = in.ShareholdersEquity
	p.NetAssets = in.NetAssets
	p.TotalAssets = in.TotalAssets
	p.SharesOutstanding = in.SharesOutstanding
	p.StockPriceEnd = in.StockPriceEnd
	p.EffectiveTaxRate = in.EffectiveTaxRate
	p.Beta = in.Beta
	p.DebtCost = in.DebtCost
	p.OperatingCF = in.OperatingCF
	p.InvestingCF = in.InvestingCF
	p.Comment = in.Comment
}

// ROICContribution is one period's line in the moving-average ROIC breakdown.
type ROICContribution struct {
	PeriodKey       string  `json:"period_key"`
	OperatingIncome float64 `json:"operating_income"`
	Weight          float64 `json:"weight"`
	Numerator       float64 `json:"numerator"`
	Debt            float64 `json:"debt"`
	Equity          float64 `json:"equity"`
	Denominator     float64 `json:"denominator"`
}

// ROICBreakdown is the audit report for the moving-average ROIC of one target
// period: the contributing trailing-window periods with their numerator and
// denominator contributions, the running totals, and the final ratio. It is a
// read-only derived report, never stored.
type ROICBreakdown struct {
	PeriodKey        string             `json:"period_key"`
	Contributions    []ROICContribution `json:"contributions"`
	NumeratorTotal   float64            `json:"numerator_total"`
	DenominatorTotal float64            `json:"denominator_total"`
	Result           *float64           `json:"result,omitempty"`
}
