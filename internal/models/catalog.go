package models

import (
	"time"

	"gorm.io/gorm"
)

type CatalogStatus string

const (
	CatalogDraft    CatalogStatus = "Draft"
	CatalogActive   CatalogStatus = "Active"
	CatalogArchived CatalogStatus = "Archived"
)

// Catalog groups the questions of one training assessment. The engine only
// reads catalogs; submissions and their results are never stored here.
type Catalog struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string       `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Category    string        `json:"category" gorm:"size:100;index"`
	Status      CatalogStatus `json:"status" gorm:"default:Draft;index" validate:"omitempty,oneof=Draft Active Archived"`

	CreatedBy string         `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Version int `json:"version" gorm:"default:1"`

	Questions []Question `json:"questions" gorm:"foreignKey:CatalogID"`

	// Computed, not stored
	QuestionsCount int `json:"questions_count" gorm:"-"`
}

func (Catalog) TableName() string {
	return "catalogs"
}
