package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
)

// CatalogService manages question catalogs and their lifecycle
type CatalogService interface {
	// Catalog management
	Create(ctx context.Context, req *CreateCatalogRequest, userID string) (*models.Catalog, error)
	GetByID(ctx context.Context, id uint) (*models.Catalog, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error)
	Update(ctx context.Context, id uint, req *UpdateCatalogRequest, userID string) (*models.Catalog, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Catalog, int64, error)

	// Lifecycle
	Activate(ctx context.Context, id uint, userID string) error
	Archive(ctx context.Context, id uint, userID string) error

	// Question management
	AddQuestion(ctx context.Context, catalogID uint, question *models.Question, userID string) error
	AddQuestions(ctx context.Context, catalogID uint, questions []*models.Question, userID string) error
	RemoveQuestion(ctx context.Context, catalogID uint, questionID string, userID string) error

	// Statistics
	GetStats(ctx context.Context, id uint) (*repositories.CatalogStats, error)
}

type CreateCatalogRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
}

type UpdateCatalogRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

type catalogService struct {
	catalogRepo  repositories.CatalogRepository
	questionRepo repositories.QuestionRepository
	logger       *slog.Logger
	validator    *validator.Validator
}

func NewCatalogService(
	catalogRepo repositories.CatalogRepository,
	questionRepo repositories.QuestionRepository,
	logger *slog.Logger,
	validator *validator.Validator,
) CatalogService {
	return &catalogService{
		catalogRepo:  catalogRepo,
		questionRepo: questionRepo,
		logger:       logger,
		validator:    validator,
	}
}

// ===== CATALOG MANAGEMENT =====

func (s *catalogService) Create(ctx context.Context, req *CreateCatalogRequest, userID string) (*models.Catalog, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := validator.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}

	catalog := &models.Catalog{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   userID,
	}

	if err := s.catalogRepo.Create(ctx, catalog); err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}

	s.logger.Info("Catalog created", "catalog_id", catalog.ID, "user_id", userID)
	return catalog, nil
}

func (s *catalogService) GetByID(ctx context.Context, id uint) (*models.Catalog, error) {
	catalog, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}
	return catalog, nil
}

func (s *catalogService) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error) {
	catalog, err := s.catalogRepo.GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to get catalog with questions: %w", err)
	}
	return catalog, nil
}

func (s *catalogService) Update(ctx context.Context, id uint, req *UpdateCatalogRequest, userID string) (*models.Catalog, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := validator.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}

	catalog, err := s.requireOwnedCatalog(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}
	if catalog.Status == models.CatalogArchived {
		return nil, ErrCatalogNotEditable
	}

	if req.Title != nil {
		catalog.Title = *req.Title
	}
	if req.Description != nil {
		catalog.Description = req.Description
	}
	if req.Category != nil {
		catalog.Category = *req.Category
	}

	if err := s.catalogRepo.Update(ctx, catalog); err != nil {
		return nil, fmt.Errorf("failed to update catalog: %w", err)
	}

	s.logger.Info("Catalog updated", "catalog_id", id, "user_id", userID, "version", catalog.Version)
	return catalog, nil
}

func (s *catalogService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := s.requireOwnedCatalog(ctx, id, userID, "delete"); err != nil {
		return err
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}

	s.logger.Info("Catalog deleted", "catalog_id", id, "user_id", userID)
	return nil
}

func (s *catalogService) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Catalog, int64, error) {
	return s.catalogRepo.List(ctx, filters)
}

// ===== LIFECYCLE =====

func (s *catalogService) Activate(ctx context.Context, id uint, userID string) error {
	catalog, err := s.requireOwnedCatalog(ctx, id, userID, "activate")
	if err != nil {
		return err
	}
	if catalog.Status != models.CatalogDraft {
		return ErrCatalogInvalidStatus
	}

	count, err := s.questionRepo.CountByCatalog(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count catalog questions: %w", err)
	}
	if count == 0 {
		return NewBusinessRuleError("catalog_not_empty",
			"a catalog must contain at least one question before activation",
			map[string]interface{}{"catalog_id": id})
	}

	if err := s.catalogRepo.UpdateStatus(ctx, id, models.CatalogActive); err != nil {
		return fmt.Errorf("failed to activate catalog: %w", err)
	}

	s.logger.Info("Catalog activated", "catalog_id", id, "user_id", userID)
	return nil
}

func (s *catalogService) Archive(ctx context.Context, id uint, userID string) error {
	catalog, err := s.requireOwnedCatalog(ctx, id, userID, "archive")
	if err != nil {
		return err
	}
	if catalog.Status == models.CatalogArchived {
		return ErrCatalogInvalidStatus
	}

	if err := s.catalogRepo.UpdateStatus(ctx, id, models.CatalogArchived); err != nil {
		return fmt.Errorf("failed to archive catalog: %w", err)
	}

	s.logger.Info("Catalog archived", "catalog_id", id, "user_id", userID)
	return nil
}

// ===== QUESTION MANAGEMENT =====

func (s *catalogService) AddQuestion(ctx context.Context, catalogID uint, question *models.Question, userID string) error {
	return s.AddQuestions(ctx, catalogID, []*models.Question{question}, userID)
}

func (s *catalogService) AddQuestions(ctx context.Context, catalogID uint, questions []*models.Question, userID string) error {
	catalog, err := s.requireOwnedCatalog(ctx, catalogID, userID, "add_questions")
	if err != nil {
		return err
	}
	if catalog.Status == models.CatalogArchived {
		return ErrCatalogNotEditable
	}

	if err := s.validator.Question().ValidateBatch(questions); err != nil {
		return fmt.Errorf("%w: %s", ErrQuestionInvalidContent, err)
	}

	for _, question := range questions {
		question.CatalogID = catalogID
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		return fmt.Errorf("failed to add questions: %w", err)
	}

	s.logger.Info("Questions added to catalog",
		"catalog_id", catalogID,
		"count", len(questions),
		"user_id", userID)
	return nil
}

func (s *catalogService) RemoveQuestion(ctx context.Context, catalogID uint, questionID string, userID string) error {
	if _, err := s.requireOwnedCatalog(ctx, catalogID, userID, "remove_question"); err != nil {
		return err
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return ErrQuestionNotFound
	}
	if question.CatalogID != catalogID {
		return NewValidationError("question_id", "question does not belong to catalog", questionID)
	}

	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return fmt.Errorf("failed to remove question: %w", err)
	}

	s.logger.Info("Question removed from catalog",
		"catalog_id", catalogID,
		"question_id", questionID,
		"user_id", userID)
	return nil
}

// ===== STATISTICS =====

func (s *catalogService) GetStats(ctx context.Context, id uint) (*repositories.CatalogStats, error) {
	stats, err := s.catalogRepo.GetStats(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}
	return stats, nil
}

func (s *catalogService) requireOwnedCatalog(ctx context.Context, id uint, userID, action string) (*models.Catalog, error) {
	catalog, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if catalog.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "catalog", action, "not the catalog owner")
	}
	return catalog, nil
}
