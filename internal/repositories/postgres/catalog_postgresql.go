package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"gorm.io/gorm"
)

type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: db}
}

// Create creates a new catalog in Draft status
func (c *CatalogPostgreSQL) Create(ctx context.Context, catalog *models.Catalog) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := c.ExistsByTitle(ctx, catalog.Title, catalog.CreatedBy, nil)
		if err != nil {
			return fmt.Errorf("failed to check title uniqueness: %w", err)
		}
		if exists {
			return fmt.Errorf("catalog with title '%s' already exists for this creator", catalog.Title)
		}

		catalog.Status = models.CatalogDraft
		catalog.Version = 1
		if err := tx.Create(catalog).Error; err != nil {
			return fmt.Errorf("failed to create catalog: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a catalog by ID
func (c *CatalogPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := c.db.WithContext(ctx).First(&catalog, id).Error; err != nil {
		return nil, err
	}
	return &catalog, nil
}

// GetByIDWithQuestions retrieves a catalog with its questions in display order
func (c *CatalogPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error) {
	var catalog models.Catalog
	err := c.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		First(&catalog, id).Error
	if err != nil {
		return nil, err
	}

	catalog.QuestionsCount = len(catalog.Questions)
	return &catalog, nil
}

// Update updates a catalog
func (c *CatalogPostgreSQL) Update(ctx context.Context, catalog *models.Catalog) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Catalog
		if err := tx.First(&current, catalog.ID).Error; err != nil {
			return fmt.Errorf("catalog not found: %w", err)
		}

		if catalog.Title != current.Title {
			exists, err := c.ExistsByTitle(ctx, catalog.Title, catalog.CreatedBy, &catalog.ID)
			if err != nil {
				return fmt.Errorf("failed to check title uniqueness: %w", err)
			}
			if exists {
				return fmt.Errorf("catalog with title '%s' already exists for this creator", catalog.Title)
			}
		}

		catalog.Version = current.Version + 1
		catalog.UpdatedAt = time.Now()

		if err := tx.Save(catalog).Error; err != nil {
			return fmt.Errorf("failed to update catalog: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a catalog and its questions
func (c *CatalogPostgreSQL) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete catalog questions: %w", err)
		}
		if err := tx.Delete(&models.Catalog{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete catalog: %w", err)
		}
		return nil
	})
}

// List retrieves catalogs with filtering and pagination
func (c *CatalogPostgreSQL) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Catalog, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Catalog{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count catalogs: %w", err)
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

	var catalogs []*models.Catalog
	if err := query.Find(&catalogs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list catalogs: %w", err)
	}

	return catalogs, total, nil
}

// UpdateStatus transitions a catalog to a new status
func (c *CatalogPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.CatalogStatus) error {
	result := c.db.WithContext(ctx).
		Model(&models.Catalog{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update catalog status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsByTitle checks title uniqueness per creator
func (c *CatalogPostgreSQL) ExistsByTitle(ctx context.Context, title, createdBy string, excludeID *uint) (bool, error) {
	query := c.db.WithContext(ctx).
		Model(&models.Catalog{}).
		Where("title = ? AND created_by = ?", title, createdBy)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetStats computes catalog-level question statistics
func (c *CatalogPostgreSQL) GetStats(ctx context.Context, id uint) (*repositories.CatalogStats, error) {
	var exists int64
	if err := c.db.WithContext(ctx).Model(&models.Catalog{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to check catalog: %w", err)
	}
	if exists == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	type typeCount struct {
		Type   models.QuestionType
		Count  int
		Points float64
	}

	var rows []typeCount
	err := c.db.WithContext(ctx).
		Model(&models.Question{}).
		Select("type, count(*) as count, coalesce(sum(points), 0) as points").
		Where("catalog_id = ?", id).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute catalog stats: %w", err)
	}

	stats := &repositories.CatalogStats{
		QuestionsByType: make(map[models.QuestionType]int, len(rows)),
	}
	for _, row := range rows {
		stats.TotalQuestions += row.Count
		stats.TotalPoints += row.Points
		stats.QuestionsByType[row.Type] = row.Count
	}
	return stats, nil
}
