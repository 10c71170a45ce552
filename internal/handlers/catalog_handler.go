package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/services"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/utils"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
)

type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
	importExport   services.ImportExportService
	validator      *validator.Validator
}

type AddQuestionsRequest struct {
	Questions []*models.Question `json:"questions" validate:"required,min=1"`
}

type ExportCatalogRequest struct {
	Format        string   `json:"format" validate:"required,export_format"`
	QuestionTypes []string `json:"question_types"`
}

func NewCatalogHandler(
	catalogService services.CatalogService,
	importExport services.ImportExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		importExport:   importExport,
		validator:      validator,
	}
}

// ===== CATALOG CRUD =====

// CreateCatalog creates a new question catalog
// @Summary Create catalog
// @Description Creates a new question catalog in draft status
// @Tags catalogs
// @Accept json
// @Produce json
// @Param catalog body services.CreateCatalogRequest true "Catalog data"
// @Success 201 {object} models.Catalog
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalogs [post]
func (h *CatalogHandler) CreateCatalog(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating catalog", "title", req.Title)

	catalog, err := h.catalogService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, catalog)
}

// GetCatalog returns a catalog by ID
// @Summary Get catalog
// @Description Returns a catalog by its ID
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Param include_questions query bool false "Include the catalog questions"
// @Success 200 {object} models.Catalog
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalogs/{catalog_id} [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	var (
		catalog *models.Catalog
		err     error
	)
	if c.Query("include_questions") == "true" {
		catalog, err = h.catalogService.GetByIDWithQuestions(c.Request.Context(), catalogID)
	} else {
		catalog, err = h.catalogService.GetByID(c.Request.Context(), catalogID)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// ListCatalogs returns catalogs matching the query filters
// @Summary List catalogs
// @Description Returns catalogs matching the given filters with pagination
// @Tags catalogs
// @Produce json
// @Param status query string false "Catalog status"
// @Param category query string false "Category"
// @Param created_by query string false "Creator user ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalogs [get]
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	filters := parseCatalogFilters(c)

	catalogs, total, err := h.catalogService.List(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to list catalogs")
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data:  catalogs,
		Total: total,
	})
}

// UpdateCatalog updates catalog metadata
// @Summary Update catalog
// @Description Updates title, description or category of a catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Param catalog body services.UpdateCatalogRequest true "Catalog data"
// @Success 200 {object} models.Catalog
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /catalogs/{catalog_id} [put]
func (h *CatalogHandler) UpdateCatalog(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.UpdateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating catalog", "catalog_id", catalogID)

	catalog, err := h.catalogService.Update(c.Request.Context(), catalogID, &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// DeleteCatalog soft-deletes a catalog and its questions
// @Summary Delete catalog
// @Description Deletes a catalog together with its questions
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalogs/{catalog_id} [delete]
func (h *CatalogHandler) DeleteCatalog(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting catalog", "catalog_id", catalogID)

	if err := h.catalogService.Delete(c.Request.Context(), catalogID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Catalog deleted"})
}

// ===== LIFECYCLE =====

// ActivateCatalog transitions a draft catalog to active
// @Summary Activate catalog
// @Description Makes a draft catalog available for evaluations
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/activate [post]
func (h *CatalogHandler) ActivateCatalog(c *gin.Context) {
	h.changeStatus(c, "activate", h.catalogService.Activate)
}

// ArchiveCatalog transitions a catalog to archived
// @Summary Archive catalog
// @Description Archives a catalog so it can no longer be evaluated or edited
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/archive [post]
func (h *CatalogHandler) ArchiveCatalog(c *gin.Context) {
	h.changeStatus(c, "archive", h.catalogService.Archive)
}

func (h *CatalogHandler) changeStatus(c *gin.Context, action string, fn func(ctx context.Context, id uint, userID string) error) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Changing catalog status", "catalog_id", catalogID, "action", action)

	if err := fn(c.Request.Context(), catalogID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Catalog " + action + "d"})
}

// ===== QUESTION MANAGEMENT =====

// AddQuestions adds questions to a catalog
// @Summary Add questions
// @Description Adds a batch of questions to a draft or active catalog
// @Tags catalogs
// @Accept json
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Param questions body AddQuestionsRequest true "Questions"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/questions [post]
func (h *CatalogHandler) AddQuestions(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req AddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Adding questions to catalog",
		"catalog_id", catalogID,
		"count", len(req.Questions))

	if err := h.catalogService.AddQuestions(c.Request.Context(), catalogID, req.Questions, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Questions added"})
}

// RemoveQuestion removes a question from a catalog
// @Summary Remove question
// @Description Removes a single question from a catalog
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Param question_id path string true "Question ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/questions/{question_id} [delete]
func (h *CatalogHandler) RemoveQuestion(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}
	questionID := ParseStringIDParam(c, "question_id")
	if questionID == "" {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.catalogService.RemoveQuestion(c.Request.Context(), catalogID, questionID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question removed"})
}

// GetCatalogStats returns aggregate statistics for a catalog
// @Summary Catalog statistics
// @Description Returns question counts per type and total points of a catalog
// @Tags catalogs
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Success 200 {object} repositories.CatalogStats
// @Failure 404 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/stats [get]
func (h *CatalogHandler) GetCatalogStats(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	stats, err := h.catalogService.GetStats(c.Request.Context(), catalogID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ===== IMPORT / EXPORT =====

// ImportQuestions imports questions from an uploaded CSV or Excel file
// @Summary Import questions
// @Description Imports questions from a CSV or Excel file into a catalog
// @Tags catalogs
// @Accept multipart/form-data
// @Produce json
// @Param catalog_id path uint true "Catalog ID"
// @Param file formData file true "CSV or Excel file"
// @Success 200 {object} models.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/import [post]
func (h *CatalogHandler) ImportQuestions(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Cannot read uploaded file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing questions",
		"catalog_id", catalogID,
		"filename", fileHeader.Filename,
		"size", fileHeader.Size)

	summary, err := h.importExport.ImportQuestionsFromFile(c.Request.Context(), file, fileHeader.Filename, catalogID, userID)
	if err != nil {
		h.LogError(c, err, "Question import failed", "catalog_id", catalogID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportCatalog exports catalog questions as a CSV or Excel download
// @Summary Export catalog
// @Description Exports the catalog questions as a downloadable CSV or Excel file
// @Tags catalogs
// @Accept json
// @Produce application/octet-stream
// @Param catalog_id path uint true "Catalog ID"
// @Param export body ExportCatalogRequest true "Export options"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /catalogs/{catalog_id}/export [post]
func (h *CatalogHandler) ExportCatalog(c *gin.Context) {
	catalogID := h.parseIDParam(c, "catalog_id")
	if catalogID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req ExportCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Exporting catalog", "catalog_id", catalogID, "format", req.Format)

	data, filename, err := h.importExport.ExportCatalog(c.Request.Context(), &models.ExportRequest{
		CatalogID:     catalogID,
		Format:        req.Format,
		QuestionTypes: req.QuestionTypes,
	}, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	contentType := "text/csv"
	if req.Format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// ===== HELPERS =====

func parseCatalogFilters(c *gin.Context) repositories.CatalogFilters {
	filters := repositories.CatalogFilters{
		Limit:     20,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		s := models.CatalogStatus(status)
		filters.Status = &s
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if createdBy := c.Query("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset >= 0 {
		filters.Offset = offset
	}

	return filters
}
