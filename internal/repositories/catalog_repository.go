package repositories

import (
	"context"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// CatalogRepository interface for catalog operations
type CatalogRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, catalog *models.Catalog) error
	GetByID(ctx context.Context, id uint) (*models.Catalog, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error)
	Update(ctx context.Context, catalog *models.Catalog) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context, filters CatalogFilters) ([]*models.Catalog, int64, error)

	// Status management
	UpdateStatus(ctx context.Context, id uint, status models.CatalogStatus) error

	// Validation and checks
	ExistsByTitle(ctx context.Context, title, createdBy string, excludeID *uint) (bool, error)

	// Statistics
	GetStats(ctx context.Context, id uint) (*CatalogStats, error)
}
