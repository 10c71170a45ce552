package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/cache"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db     *gorm.DB
	cache  cache.CacheService
	logger *slog.Logger
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:     db,
		cache:  cache.NewRedisCache(redisClient, logger),
		logger: logger,
	}
}

// ===== BASIC OPERATIONS =====

// Create creates a new question and invalidates the catalog cache
func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	if err := q.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	q.invalidateCatalog(ctx, question.CatalogID)
	return nil
}

// GetByID retrieves a question by ID
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question not found with ID %s: %w", id, err)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// Update updates a question and invalidates the catalog cache
func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	if err := q.db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	q.invalidateCatalog(ctx, question.CatalogID)
	return nil
}

// Delete soft-deletes a question
func (q *QuestionPostgreSQL) Delete(ctx context.Context, id string) error {
	question, err := q.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := q.db.WithContext(ctx).Delete(&models.Question{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	q.invalidateCatalog(ctx, question.CatalogID)
	return nil
}

// ===== BULK OPERATIONS =====

// CreateBatch creates questions in a single transaction
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(questions).Error; err != nil {
			return fmt.Errorf("failed to create question batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	seen := make(map[uint]bool)
	for _, question := range questions {
		if !seen[question.CatalogID] {
			q.invalidateCatalog(ctx, question.CatalogID)
			seen[question.CatalogID] = true
		}
	}
	return nil
}

// GetByIDs retrieves multiple questions by their IDs
func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var questions []*models.Question
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions by IDs: %w", err)
	}
	return questions, nil
}

// ===== CATALOG QUERIES =====

// GetByCatalog retrieves catalog questions in display order, serving from
// cache when possible
func (q *QuestionPostgreSQL) GetByCatalog(ctx context.Context, catalogID uint) ([]*models.Question, error) {
	key := cache.CatalogQuestionsKey(catalogID)

	var cached []*models.Question
	if err := q.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		q.logger.Warn("Catalog question cache lookup failed", "catalog_id", catalogID, "error", err)
	}

	var questions []*models.Question
	err := q.db.WithContext(ctx).
		Where("catalog_id = ?", catalogID).
		Order(`"order" ASC`).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog questions: %w", err)
	}

	if err := q.cache.Set(ctx, key, questions, cache.CatalogTTL); err != nil {
		q.logger.Warn("Catalog question cache store failed", "catalog_id", catalogID, "error", err)
	}

	return questions, nil
}

// CountByCatalog counts the questions of a catalog
func (q *QuestionPostgreSQL) CountByCatalog(ctx context.Context, catalogID uint) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("catalog_id = ?", catalogID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count catalog questions: %w", err)
	}
	return count, nil
}

// ===== QUERY OPERATIONS =====

// List retrieves questions with filtering and pagination
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.Question{})

	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.CatalogID != nil {
		query = query.Where("catalog_id = ?", *filters.CatalogID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) invalidateCatalog(ctx context.Context, catalogID uint) {
	if err := q.cache.DeletePattern(ctx, cache.CatalogPattern(catalogID)); err != nil {
		q.logger.Warn("Catalog cache invalidation failed", "catalog_id", catalogID, "error", err)
	}
}
