package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/services"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/utils"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
)

type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
	validator         *validator.Validator
}

type ScoreQuestionRequest struct {
	Answer json.RawMessage `json:"answer"`
}

func NewEvaluationHandler(
	evaluationService services.EvaluationService,
	validator *validator.Validator,
	logger utils.Logger,
) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
		validator:         validator,
	}
}

// EvaluateSubmission scores a full submission against an active catalog
// @Summary Evaluate submission
// @Description Scores every answer of a submission against the catalog questions and returns the aggregated result
// @Tags evaluations
// @Accept json
// @Produce json
// @Param submission body services.EvaluateSubmissionRequest true "Submission data"
// @Success 200 {object} models.SubmissionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) EvaluateSubmission(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.EvaluateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.UserID = userID

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Evaluating submission",
		"submission_id", req.SubmissionID,
		"catalog_id", req.CatalogID,
		"answers", len(req.Answers))

	result, err := h.evaluationService.EvaluateSubmission(c.Request.Context(), &req)
	if err != nil {
		h.LogError(c, err, "Submission evaluation failed", "submission_id", req.SubmissionID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScoreQuestion scores a single answer against one question
// @Summary Score single question
// @Description Scores one answer payload against a stored question without aggregating a submission
// @Tags evaluations
// @Accept json
// @Produce json
// @Param question_id path string true "Question ID"
// @Param answer body ScoreQuestionRequest true "Answer payload"
// @Success 200 {object} models.Outcome
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /evaluations/questions/{question_id} [post]
func (h *EvaluationHandler) ScoreQuestion(c *gin.Context) {
	questionID := ParseStringIDParam(c, "question_id")
	if questionID == "" {
		return
	}

	if _, ok := h.requireUserID(c); !ok {
		return
	}

	var req ScoreQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Scoring single question", "question_id", questionID)

	outcome, err := h.evaluationService.ScoreQuestion(c.Request.Context(), questionID, req.Answer)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
