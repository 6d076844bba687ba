// Package interfaces defines service and storage contracts
package interfaces

import (
	"context"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// CompanyStore persists company records. A company record owns its financial
// periods, so deleting a company cascades to them by construction.
type CompanyStore interface {
	Get(ctx context.Context, id string) (*models.Company, error)
	Save(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Company, error)
	Close() error
}
