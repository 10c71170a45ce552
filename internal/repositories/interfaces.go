package repositories

import (
	"errors"
	"time"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"gorm.io/gorm"
)

// IsNotFoundError reports whether the error is a missing-record error
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type CatalogFilters struct {
	Status    *models.CatalogStatus `json:"status"`
	Category  *string               `json:"category"`
	CreatedBy *string               `json:"created_by"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "title"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type QuestionFilters struct {
	Type      *models.QuestionType `json:"type"`
	CatalogID *uint                `json:"catalog_id"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`
	SortOrder string               `json:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type CatalogStats struct {
	TotalQuestions  int                         `json:"total_questions"`
	QuestionsByType map[models.QuestionType]int `json:"questions_by_type"`
	TotalPoints     float64                     `json:"total_points"`
}
