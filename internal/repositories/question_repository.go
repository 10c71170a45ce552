package repositories

import (
	"context"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id string) error

	// Bulk operations
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error)

	// Catalog-specific queries
	GetByCatalog(ctx context.Context, catalogID uint) ([]*models.Question, error)
	CountByCatalog(ctx context.Context, catalogID uint) (int64, error)

	// Query operations
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
}
