// Package companydb implements CompanyStore using BadgerHold.
// One record per company; the record embeds the company's financial periods,
// so company deletion removes the whole series in one operation.
package companydb

import (
	"context"
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/kenshiro-fujita/investment-analysis/internal/common"
	"github.com/kenshiro-fujita/investment-analysis/internal/interfaces"
	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// Compile-time interface check
var _ interfaces.CompanyStore = (*Store)(nil)

// Store implements interfaces.CompanyStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore opens (or creates) a company store at the given path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create company db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open company db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("CompanyDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Get(_ context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := s.db.Get(id, &company); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("company '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get company '%s': %w", id, err)
	}
	return &company, nil
}

func (s *Store) Save(_ context.Context, company *models.Company) error {
	if company.ID == "" {
		return fmt.Errorf("company ID is required")
	}
	if err := s.db.Upsert(company.ID, company); err != nil {
		return fmt.Errorf("failed to save company '%s': %w", company.ID, err)
	}
	s.logger.Debug().Str("company_id", company.ID).Int("periods", len(company.Financials)).Msg("Company saved")
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Company{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("company '%s' not found", id)
		}
		return fmt.Errorf("failed to delete company '%s': %w", id, err)
	}
	s.logger.Debug().Str("company_id", id).Msg("Company deleted")
	return nil
}

func (s *Store) List(_ context.Context) ([]*models.Company, error) {
	var companies []models.Company
	if err := s.db.Find(&companies, nil); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	result := make([]*models.Company, len(companies))
	for i := range companies {
		result[i] = &companies[i]
	}
	return result, nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
