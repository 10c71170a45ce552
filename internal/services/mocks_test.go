package services

import (
	"context"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// ===== REPOSITORY MOCKS =====

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Create(ctx context.Context, catalog *models.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetByID(ctx context.Context, id uint) (*models.Catalog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalog), args.Error(1)
}

func (m *MockCatalogRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalog), args.Error(1)
}

func (m *MockCatalogRepository) Update(ctx context.Context, catalog *models.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Catalog, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Catalog), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) UpdateStatus(ctx context.Context, id uint, status models.CatalogStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCatalogRepository) ExistsByTitle(ctx context.Context, title, createdBy string, excludeID *uint) (bool, error) {
	args := m.Called(ctx, title, createdBy, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) GetStats(ctx context.Context, id uint) (*repositories.CatalogStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.CatalogStats), args.Error(1)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByCatalog(ctx context.Context, catalogID uint) ([]*models.Question, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByCatalog(ctx context.Context, catalogID uint) (int64, error) {
	args := m.Called(ctx, catalogID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}
