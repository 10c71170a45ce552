package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// EventType represents different types of evaluation events
type EventType string

const (
	// Submission events
	EventSubmissionEvaluated EventType = "submission.evaluated"

	// Catalog events
	EventCatalogImported EventType = "catalog.imported"
	EventCatalogExported EventType = "catalog.exported"
)

// EvaluationEvent is the base event structure for all evaluation events
type EvaluationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Submission event payloads

type SubmissionEvaluatedEvent struct {
	SubmissionID    string                                       `json:"submission_id"`
	CatalogID       uint                                         `json:"catalog_id"`
	UserID          string                                       `json:"user_id"`
	TotalScore      float64                                      `json:"total_score"`
	TotalPossible   float64                                      `json:"total_possible"`
	UnansweredCount int                                          `json:"unanswered_count"`
	SkippedCount    int                                          `json:"skipped_count"`
	PerType         map[models.QuestionType]*models.TypeTotals   `json:"per_type,omitempty"`
	EvaluatedAt     time.Time                                    `json:"evaluated_at"`
}

// Catalog event payloads

type CatalogImportedEvent struct {
	CatalogID     uint      `json:"catalog_id"`
	ImportedBy    string    `json:"imported_by"`
	ImportedCount int       `json:"imported_count"`
	SkippedCount  int       `json:"skipped_count"`
	ImportedAt    time.Time `json:"imported_at"`
}

type CatalogExportedEvent struct {
	CatalogID     uint      `json:"catalog_id"`
	ExportedBy    string    `json:"exported_by"`
	Format        string    `json:"format"`
	QuestionCount int       `json:"question_count"`
	ExportedAt    time.Time `json:"exported_at"`
}

// Event factory functions

func NewSubmissionEvaluatedEvent(submissionID string, catalogID uint, userID string, result *models.SubmissionResult) *EvaluationEvent {
	now := time.Now()
	return &EvaluationEvent{
		ID:        GenerateEventID(),
		Type:      EventSubmissionEvaluated,
		Timestamp: now,
		Source:    "evaluation-service",
		Version:   "1.0",
		Data: SubmissionEvaluatedEvent{
			SubmissionID:    submissionID,
			CatalogID:       catalogID,
			UserID:          userID,
			TotalScore:      result.TotalScore,
			TotalPossible:   result.TotalPossible,
			UnansweredCount: result.UnansweredCount,
			SkippedCount:    result.SkippedCount,
			PerType:         result.PerType,
			EvaluatedAt:     now,
		},
	}
}

func NewCatalogImportedEvent(catalogID uint, importedBy string, importedCount, skippedCount int) *EvaluationEvent {
	return &EvaluationEvent{
		ID:        GenerateEventID(),
		Type:      EventCatalogImported,
		Timestamp: time.Now(),
		Source:    "evaluation-service",
		Version:   "1.0",
		Data: CatalogImportedEvent{
			CatalogID:     catalogID,
			ImportedBy:    importedBy,
			ImportedCount: importedCount,
			SkippedCount:  skippedCount,
			ImportedAt:    time.Now(),
		},
	}
}

func NewCatalogExportedEvent(catalogID uint, exportedBy, format string, questionCount int) *EvaluationEvent {
	return &EvaluationEvent{
		ID:        GenerateEventID(),
		Type:      EventCatalogExported,
		Timestamp: time.Now(),
		Source:    "evaluation-service",
		Version:   "1.0",
		Data: CatalogExportedEvent{
			CatalogID:     catalogID,
			ExportedBy:    exportedBy,
			Format:        format,
			QuestionCount: questionCount,
			ExportedAt:    time.Now(),
		},
	}
}

// GenerateEventID returns a unique id for a published event
func GenerateEventID() string {
	return watermill.NewUUID()
}
