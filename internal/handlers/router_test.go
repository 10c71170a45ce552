package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/services"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/utils"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TEST DOUBLES =====

type stubTokenParser struct {
	userID string
	err    error
}

func (p *stubTokenParser) ParseJwtToken(token string) (*casdoorsdk.Claims, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &casdoorsdk.Claims{User: casdoorsdk.User{Id: p.userID}}, nil
}

type stubEvaluationService struct {
	result  *models.SubmissionResult
	outcome *models.Outcome
	err     error
}

func (s *stubEvaluationService) EvaluateSubmission(ctx context.Context, req *services.EvaluateSubmissionRequest) (*models.SubmissionResult, error) {
	return s.result, s.err
}

func (s *stubEvaluationService) ScoreQuestion(ctx context.Context, questionID string, answer json.RawMessage) (*models.Outcome, error) {
	return s.outcome, s.err
}

type stubCatalogService struct {
	catalog *models.Catalog
	err     error
}

func (s *stubCatalogService) Create(ctx context.Context, req *services.CreateCatalogRequest, userID string) (*models.Catalog, error) {
	return s.catalog, s.err
}
func (s *stubCatalogService) GetByID(ctx context.Context, id uint) (*models.Catalog, error) {
	return s.catalog, s.err
}
func (s *stubCatalogService) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Catalog, error) {
	return s.catalog, s.err
}
func (s *stubCatalogService) Update(ctx context.Context, id uint, req *services.UpdateCatalogRequest, userID string) (*models.Catalog, error) {
	return s.catalog, s.err
}
func (s *stubCatalogService) Delete(ctx context.Context, id uint, userID string) error { return s.err }
func (s *stubCatalogService) List(ctx context.Context, filters repositories.CatalogFilters) ([]*models.Catalog, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []*models.Catalog{s.catalog}, 1, nil
}
func (s *stubCatalogService) Activate(ctx context.Context, id uint, userID string) error {
	return s.err
}
func (s *stubCatalogService) Archive(ctx context.Context, id uint, userID string) error { return s.err }
func (s *stubCatalogService) AddQuestion(ctx context.Context, catalogID uint, question *models.Question, userID string) error {
	return s.err
}
func (s *stubCatalogService) AddQuestions(ctx context.Context, catalogID uint, questions []*models.Question, userID string) error {
	return s.err
}
func (s *stubCatalogService) RemoveQuestion(ctx context.Context, catalogID uint, questionID string, userID string) error {
	return s.err
}
func (s *stubCatalogService) GetStats(ctx context.Context, id uint) (*repositories.CatalogStats, error) {
	return &repositories.CatalogStats{}, s.err
}

type stubImportExportService struct {
	summary  *models.ImportSummary
	data     []byte
	filename string
	err      error
}

func (s *stubImportExportService) ImportQuestionsFromFile(ctx context.Context, file multipart.File, filename string, catalogID uint, userID string) (*models.ImportSummary, error) {
	return s.summary, s.err
}
func (s *stubImportExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error) {
	return s.summary, s.err
}
func (s *stubImportExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error) {
	return s.summary, s.err
}
func (s *stubImportExportService) ExportCatalog(ctx context.Context, req *models.ExportRequest, userID string) ([]byte, string, error) {
	return s.data, s.filename, s.err
}

// ===== HELPERS =====

func testRouter(t *testing.T, eval services.EvaluationService, catalog services.CatalogService, importExport services.ImportExportService, parser TokenParser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	manager := NewHandlerManager(eval, catalog, importExport, parser, validator.New(), logger)

	router := gin.New()
	manager.SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer token")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ===== TESTS =====

func TestHealthCheck(t *testing.T) {
	router := testRouter(t, &stubEvaluationService{}, &stubCatalogService{}, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestEvaluateSubmissionEndpoint(t *testing.T) {
	eval := &stubEvaluationService{result: &models.SubmissionResult{TotalScore: 2, TotalPossible: 3}}
	router := testRouter(t, eval, &stubCatalogService{}, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	body := `{"submission_id":"sub-1","catalog_id":7,"answers":{"q1":{"selected":[0]}}}`
	w := doRequest(router, http.MethodPost, "/api/v1/evaluations", body, true)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2.0, result.TotalScore)
	assert.Equal(t, 3.0, result.TotalPossible)
}

func TestEvaluateSubmission_RequiresToken(t *testing.T) {
	router := testRouter(t, &stubEvaluationService{}, &stubCatalogService{}, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodPost, "/api/v1/evaluations", `{}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEvaluateSubmission_RejectsInvalidToken(t *testing.T) {
	parser := &stubTokenParser{err: errors.New("token expired")}
	router := testRouter(t, &stubEvaluationService{}, &stubCatalogService{}, &stubImportExportService{}, parser)

	w := doRequest(router, http.MethodPost, "/api/v1/evaluations", `{}`, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestEvaluateSubmission_BusinessRuleMapsTo422(t *testing.T) {
	eval := &stubEvaluationService{err: services.NewBusinessRuleError("catalog_active", "catalog is not active", nil)}
	router := testRouter(t, eval, &stubCatalogService{}, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	body := `{"submission_id":"sub-1","catalog_id":7,"answers":{}}`
	w := doRequest(router, http.MethodPost, "/api/v1/evaluations", body, true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_active")
}

func TestGetCatalog_NotFoundMapsTo404(t *testing.T) {
	catalog := &stubCatalogService{err: services.ErrCatalogNotFound}
	router := testRouter(t, &stubEvaluationService{}, catalog, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodGet, "/api/v1/catalogs/5", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCatalog_InvalidIDParam(t *testing.T) {
	router := testRouter(t, &stubEvaluationService{}, &stubCatalogService{}, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodGet, "/api/v1/catalogs/abc", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCatalog(t *testing.T) {
	catalog := &stubCatalogService{catalog: &models.Catalog{ID: 1, Title: "Safety basics"}}
	router := testRouter(t, &stubEvaluationService{}, catalog, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodPost, "/api/v1/catalogs", `{"title":"Safety basics"}`, true)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Safety basics")
}

func TestExportCatalogEndpoint(t *testing.T) {
	importExport := &stubImportExportService{
		data:     []byte("ID,Question Type\n"),
		filename: "catalog-5-questions.csv",
	}
	router := testRouter(t, &stubEvaluationService{}, &stubCatalogService{}, importExport, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodPost, "/api/v1/catalogs/5/export", `{"format":"csv"}`, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "catalog-5-questions.csv")
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestPermissionErrorMapsTo403(t *testing.T) {
	catalog := &stubCatalogService{err: services.NewPermissionError("u1", 5, "catalog", "delete", "not the catalog owner")}
	router := testRouter(t, &stubEvaluationService{}, catalog, &stubImportExportService{}, &stubTokenParser{userID: "u1"})

	w := doRequest(router, http.MethodDelete, "/api/v1/catalogs/5", "", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
