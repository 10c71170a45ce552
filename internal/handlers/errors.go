package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/services"
)

// handleServiceError maps service layer errors onto HTTP responses
func handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationError,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	// Sentinel errors
	switch {
	case errors.Is(err, services.ErrCatalogNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Catalog not found",
		})
	case errors.Is(err, services.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Question not found",
		})
	case errors.Is(err, services.ErrCatalogNotEditable):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Catalog cannot be edited in its current status",
		})
	case errors.Is(err, services.ErrCatalogInvalidStatus):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invalid catalog status transition",
		})
	case errors.Is(err, services.ErrCatalogEmpty):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Catalog has no questions",
		})
	case errors.Is(err, services.ErrSubmissionEmpty):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Submission has no answers payload",
		})
	case errors.Is(err, services.ErrExportFormatUnknown):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown export format",
		})
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
