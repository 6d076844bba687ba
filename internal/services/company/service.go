// Package company provides company and financial period management.
// Every raw-input mutation re-runs the metrics engine over the company's
// entire period series before saving, because cross-period fields (moving
// average, YoY growth) depend on neighbouring periods.
package company

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kenshiro-fujita/investment-analysis/internal/common"
	"github.com/kenshiro-fujita/investment-analysis/internal/interfaces"
	"github.com/kenshiro-fujita/investment-analysis/internal/metrics"
	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// Compile-time interface check
var _ interfaces.CompanyService = (*Service)(nil)

// Service implements CompanyService.
type Service struct {
	store  interfaces.CompanyStore
	engine *metrics.Engine
	logger *common.Logger

	// mu serializes series mutations; the engine requires one consistent
	// snapshot of a company's periods per derivation call.
	mu sync.Mutex
}

// NewService creates a new company service.
func NewService(store interfaces.CompanyStore, engine *metrics.Engine, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// validateCompanyInput checks required company fields.
func validateCompanyInput(input models.CompanyInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("company name is required")
	}
	return nil
}

// ListCompanies returns list-view summaries of all companies.
func (s *Service) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	companies, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	summaries := make([]models.CompanySummary, len(companies))
	for i, c := range companies {
		summaries[i] = c.Summary()
	}
	return summaries, nil
}

// CreateCompany registers a new company.
func (s *Service) CreateCompany(ctx context.Context, input models.CompanyInput) (*models.Company, error) {
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &models.Company{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Ticker:       input.Ticker,
		Sector:       input.Sector,
		Market:       input.Market,
		Description:  input.Description,
		AnalysisNote: input.AnalysisNote,
		Financials:   []models.FinancialPeriod{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", company.ID).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// GetCompany retrieves a company with its financial periods in
// chronological order.
func (s *Service) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	company.Financials = metrics.SortPeriods(company.Financials)
	return company, nil
}

// UpdateCompany updates a company's descriptive fields.
func (s *Service) UpdateCompany(ctx context.Context, id string, input models.CompanyInput) (*models.Company, error) {
	if err := validateCompanyInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = strings.TrimSpace(input.Name)
	company.Ticker = input.Ticker
	company.Sector = input.Sector
	company.Market = input.Market
	company.Description = input.Description
	company.AnalysisNote = input.AnalysisNote
	company.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", id).Msg("Company updated")
	return company, nil
}

// DeleteCompany removes a company and, with it, all its financial periods.
func (s *Service) DeleteCompany(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("company_id", id).Msg("Company deleted")
	return nil
}

// ListFinancials returns a company's financial periods in chronological order.
func (s *Service) ListFinancials(ctx context.Context, companyID string) ([]models.FinancialPeriod, error) {
	company, err := s.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return metrics.SortPeriods(company.Financials), nil
}

// AddFinancial creates a financial period and re-derives the whole series.
func (s *Service) AddFinancial(ctx context.Context, companyID string, input models.FinancialInput) (*models.FinancialPeriod, error) {
	key := metrics.CanonicalPeriodKey(strings.TrimSpace(input.PeriodKey))
	if key == "" {
		return nil, fmt.Errorf("period key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if _, idx := company.FindFinancialByPeriodKey(key); idx >= 0 {
		return nil, fmt.Errorf("period '%s' already exists for company '%s'", key, companyID)
	}

	now := time.Now()
	period := models.FinancialPeriod{
		ID:        uuid.NewString(),
		PeriodKey: key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.ApplyTo(&period)
	company.Financials = append(company.Financials, period)

	if err := s.rederiveAndSave(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", companyID).Str("period", key).Msg("Financial period added")
	created, _ := company.FindFinancialByID(period.ID)
	return created, nil
}

// UpdateFinancial replaces a financial period's raw inputs and re-derives the
// whole series. The period key may change as long as it stays unique within
// the company.
func (s *Service) UpdateFinancial(ctx context.Context, companyID, financialID string, input models.FinancialInput) (*models.FinancialPeriod, error) {
	key := metrics.CanonicalPeriodKey(strings.TrimSpace(input.PeriodKey))
	if key == "" {
		return nil, fmt.Errorf("period key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	period, idx := company.FindFinancialByID(financialID)
	if idx < 0 {
		return nil, fmt.Errorf("financial record '%s' not found for company '%s'", financialID, companyID)
	}

	if other, otherIdx := company.FindFinancialByPeriodKey(key); otherIdx >= 0 && other.ID != financialID {
		return nil, fmt.Errorf("period '%s' already exists for company '%s'", key, companyID)
	}

	period.PeriodKey = key
	input.ApplyTo(period)
	period.UpdatedAt = time.Now()

	if err := s.rederiveAndSave(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", companyID).Str("period", key).Msg("Financial period updated")
	updated, _ := company.FindFinancialByID(financialID)
	return updated, nil
}

// DeleteFinancial removes a financial period and re-derives the remaining
// series (the removed period may have fed neighbours' cross-period fields).
func (s *Service) DeleteFinancial(ctx context.Context, companyID, financialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.store.Get(ctx, companyID)
	if err != nil {
		return err
	}

	_, idx := company.FindFinancialByID(financialID)
	if idx < 0 {
		return fmt.Errorf("financial record '%s' not found for company '%s'", financialID, companyID)
	}

	company.Financials = append(company.Financials[:idx], company.Financials[idx+1:]...)

	if err := s.rederiveAndSave(ctx, company); err != nil {
		return err
	}

	s.logger.Info().Str("company_id", companyID).Str("financial_id", financialID).Msg("Financial period deleted")
	return nil
}

// ROICBreakdown returns the moving-average ROIC audit report for one period.
func (s *Service) ROICBreakdown(ctx context.Context, companyID, financialID string) (*models.ROICBreakdown, error) {
	company, err := s.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	period, idx := company.FindFinancialByID(financialID)
	if idx < 0 {
		return nil, fmt.Errorf("financial record '%s' not found for company '%s'", financialID, companyID)
	}

	return s.engine.MovingAverageBreakdown(company.Financials, period.PeriodKey)
}

// rederiveAndSave recomputes all derived fields over the company's full
// series and persists the result.
func (s *Service) rederiveAndSave(ctx context.Context, company *models.Company) error {
	company.Financials = s.engine.DeriveAll(company.Financials)
	company.UpdatedAt = time.Now()
	if err := s.store.Save(ctx, company); err != nil {
		return fmt.Errorf("failed to save company '%s': %w", company.ID, err)
	}
	return nil
}
