package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/evaluation"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/events"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
)

// EvaluationService scores submitted answers against a catalog. Results are
// computed on every call and never persisted.
type EvaluationService interface {
	EvaluateSubmission(ctx context.Context, req *EvaluateSubmissionRequest) (*models.SubmissionResult, error)
	ScoreQuestion(ctx context.Context, questionID string, answer json.RawMessage) (*models.Outcome, error)
}

type EvaluateSubmissionRequest struct {
	SubmissionID string           `json:"submission_id" validate:"required"`
	CatalogID    uint             `json:"catalog_id" validate:"required"`
	UserID       string           `json:"user_id" validate:"required"`
	Answers      models.AnswerMap `json:"answers"`
}

type evaluationService struct {
	catalogRepo    repositories.CatalogRepository
	questionRepo   repositories.QuestionRepository
	evaluator      *evaluation.Evaluator
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	opLog          *ServiceLogger
	validator      *validator.Validator
}

func NewEvaluationService(
	catalogRepo repositories.CatalogRepository,
	questionRepo repositories.QuestionRepository,
	evaluator *evaluation.Evaluator,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) EvaluationService {
	return &evaluationService{
		catalogRepo:    catalogRepo,
		questionRepo:   questionRepo,
		evaluator:      evaluator,
		eventPublisher: eventPublisher,
		logger:         logger,
		opLog:          NewServiceLogger(logger, LogConfig{Service: "evaluation-service", Component: "evaluation"}),
		validator:      validator,
	}
}

// EvaluateSubmission scores every question of the catalog against the
// submitted answers and publishes a submission.evaluated event.
func (s *evaluationService) EvaluateSubmission(ctx context.Context, req *EvaluateSubmissionRequest) (result *models.SubmissionResult, err error) {
	op := s.opLog.WithOperation(ctx, "evaluate_submission", req.UserID)
	defer func() { op.LogResult(req.CatalogID, "catalog", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := validator.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, err
	}
	if req.Answers == nil {
		return nil, ErrSubmissionEmpty
	}

	catalog, err := s.catalogRepo.GetByID(ctx, req.CatalogID)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog %d", ErrCatalogNotFound, req.CatalogID)
	}
	if catalog.Status != models.CatalogActive {
		return nil, NewBusinessRuleError("catalog_active",
			"submissions can only be evaluated against an active catalog",
			map[string]interface{}{"catalog_id": catalog.ID, "status": catalog.Status})
	}

	questionPtrs, err := s.questionRepo.GetByCatalog(ctx, req.CatalogID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog questions: %w", err)
	}
	if len(questionPtrs) == 0 {
		return nil, ErrCatalogEmpty
	}

	questions := make([]models.Question, 0, len(questionPtrs))
	for _, q := range questionPtrs {
		questions = append(questions, *q)
	}

	result = s.evaluator.EvaluateSubmission(questions, req.Answers)

	s.logger.Info("Submission evaluated",
		"submission_id", req.SubmissionID,
		"catalog_id", req.CatalogID,
		"user_id", req.UserID,
		"total_score", result.TotalScore,
		"total_possible", result.TotalPossible,
		"unanswered", result.UnansweredCount,
		"skipped", result.SkippedCount)

	event := events.NewSubmissionEvaluatedEvent(req.SubmissionID, req.CatalogID, req.UserID, result)
	if err := s.eventPublisher.PublishEvaluationEvent(ctx, event); err != nil {
		// The caller still gets the result; the event stream is best effort.
		s.logger.Error("Failed to publish submission evaluated event",
			"submission_id", req.SubmissionID,
			"error", err)
	}

	return result, nil
}

// ScoreQuestion evaluates a single answer against one stored question
func (s *evaluationService) ScoreQuestion(ctx context.Context, questionID string, answer json.RawMessage) (*models.Outcome, error) {
	if questionID == "" {
		return nil, NewValidationError("question_id", "is required", questionID)
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}

	outcome := s.evaluator.ScoreQuestion(*question, answer)
	return &outcome, nil
}
