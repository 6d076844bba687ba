package interfaces

import (
	"context"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// CompanyService manages companies and their financial periods. Every
// financial-period mutation re-derives the company's entire series before
// persisting, so stored derived fields always reflect the current raw inputs.
type CompanyService interface {
	// Companies
	ListCompanies(ctx context.Context) ([]models.CompanySummary, error)
	CreateCompany(ctx context.Context, input models.CompanyInput) (*models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	UpdateCompany(ctx context.Context, id string, input models.CompanyInput) (*models.Company, error)
	DeleteCompany(ctx context.Context, id string) error

	// Financial periods
	ListFinancials(ctx context.Context, companyID string) ([]models.FinancialPeriod, error)
	AddFinancial(ctx context.Context, companyID string, input models.FinancialInput) (*models.FinancialPeriod, error)
	UpdateFinancial(ctx context.Context, companyID, financialID string, input models.FinancialInput) (*models.FinancialPeriod, error)
	DeleteFinancial(ctx context.Context, companyID, financialID string) error

	// ROICBreakdown returns the moving-average ROIC audit report for the
	// period identified by the given financial record ID.
	ROICBreakdown(ctx context.Context, companyID, financialID string) (*models.ROICBreakdown, error)
}
