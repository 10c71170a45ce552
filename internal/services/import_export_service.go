package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/events"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/repositories"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

// ImportExportService handles file import/export for catalog questions
type ImportExportService interface {
	// Import operations
	ImportQuestionsFromFile(ctx context.Context, file multipart.File, filename string, catalogID uint, userID string) (*models.ImportSummary, error)
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error)

	// Export operations
	ExportCatalog(ctx context.Context, req *models.ExportRequest, userID string) ([]byte, string, error)
}

type importExportService struct {
	catalogRepo    repositories.CatalogRepository
	questionRepo   repositories.QuestionRepository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewImportExportService(
	catalogRepo repositories.CatalogRepository,
	questionRepo repositories.QuestionRepository,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ImportExportService {
	return &importExportService{
		catalogRepo:    catalogRepo,
		questionRepo:   questionRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
	}
}

// Column layout shared by the CSV and Excel formats.
var exportHeaders = []string{"ID", "Question Type", "Question Text", "Points", "Order", "Content"}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, file multipart.File, filename string, catalogID uint, userID string) (*models.ImportSummary, error) {
	s.logger.Info("Starting file import", "filename", filename, "catalog_id", catalogID, "user_id", userID)

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, file, catalogID, userID)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, file, catalogID, userID)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return s.importRecords(ctx, records, catalogID, userID)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, catalogID uint, userID string) (*models.ImportSummary, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return s.importRecords(ctx, records, catalogID, userID)
}

func (s *importExportService) importRecords(ctx context.Context, records [][]string, catalogID uint, userID string) (*models.ImportSummary, error) {
	start := time.Now()

	if err := s.requireOwnedCatalog(ctx, catalogID, userID); err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, NewValidationError("file", "import must have a header row and at least one data row", len(records))
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}

	requiredColumns := []string{"question type", "question text", "content"}
	for _, col := range requiredColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	summary := &models.ImportSummary{
		TotalRows: len(records) - 1,
	}

	var questions []*models.Question

	for rowIndex, record := range records[1:] {
		question, rowErrors := s.parseRow(record, headerMap, rowIndex+2, catalogID)
		if len(rowErrors) > 0 {
			summary.Errors = append(summary.Errors, rowErrors...)
			summary.ErrorCount++
		} else if question != nil {
			questions = append(questions, question)
			summary.SuccessCount++
		}
		summary.ProcessedRows++
	}

	if len(questions) > 0 {
		if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
			return nil, fmt.Errorf("failed to save imported questions: %w", err)
		}
		for _, question := range questions {
			summary.CreatedQuestions = append(summary.CreatedQuestions, question.ID)
		}
	}

	summary.ProcessingTime = time.Since(start)

	s.logger.Info("Import finished",
		"catalog_id", catalogID,
		"user_id", userID,
		"imported", summary.SuccessCount,
		"errors", summary.ErrorCount,
		"duration", summary.ProcessingTime)

	event := events.NewCatalogImportedEvent(catalogID, userID, summary.SuccessCount, summary.ErrorCount)
	if err := s.eventPublisher.PublishEvaluationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish catalog imported event", "catalog_id", catalogID, "error", err)
	}

	return summary, nil
}

func (s *importExportService) parseRow(record []string, headerMap map[string]int, row int, catalogID uint) (*models.Question, []models.ImportValidationError) {
	var rowErrors []models.ImportValidationError

	field := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	qType := models.QuestionType(field("question type"))
	if !qType.Valid() {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: row, Column: "question type", Value: string(qType),
			Message: "unknown question type", Code: "invalid_type",
		})
	}

	text := field("question text")
	if text == "" {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: row, Column: "question text",
			Message: "question text is required", Code: "required",
		})
	}

	content := field("content")
	if content == "" {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: row, Column: "content",
			Message: "content payload is required", Code: "required",
		})
	} else if !json.Valid([]byte(content)) {
		rowErrors = append(rowErrors, models.ImportValidationError{
			Row: row, Column: "content", Value: content,
			Message: "content must be valid JSON", Code: "invalid_json",
		})
	} else if qType.Valid() {
		if err := s.validator.Question().ValidateContent(qType, []byte(content)); err != nil {
			rowErrors = append(rowErrors, models.ImportValidationError{
				Row: row, Column: "content", Value: content,
				Message: err.Error(), Code: "invalid_content",
			})
		}
	}

	points := 1.0
	if raw := field("points"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			rowErrors = append(rowErrors, models.ImportValidationError{
				Row: row, Column: "points", Value: raw,
				Message: "points must be a number between 0 and 100", Code: "invalid_points",
			})
		} else {
			points = parsed
		}
	}

	order := 0
	if raw := field("order"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			rowErrors = append(rowErrors, models.ImportValidationError{
				Row: row, Column: "order", Value: raw,
				Message: "order must be an integer", Code: "invalid_order",
			})
		} else {
			order = parsed
		}
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors
	}

	id := field("id")
	if id == "" {
		id = watermill.NewUUID()
	}

	return &models.Question{
		ID:        id,
		CatalogID: catalogID,
		Type:      qType,
		Text:      text,
		Points:    points,
		Order:     order,
		Content:   []byte(content),
	}, nil
}

// ===== EXPORT OPERATIONS =====

// ExportCatalog renders the catalog questions in the requested format and
// returns the bytes together with a suggested file name.
func (s *importExportService) ExportCatalog(ctx context.Context, req *models.ExportRequest, userID string) ([]byte, string, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := validator.ToValidationErrors(err); len(ve) > 0 {
			return nil, "", ve
		}
		return nil, "", err
	}

	if _, err := s.catalogRepo.GetByID(ctx, req.CatalogID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrCatalogNotFound
		}
		return nil, "", fmt.Errorf("failed to get catalog: %w", err)
	}

	questions, err := s.questionRepo.GetByCatalog(ctx, req.CatalogID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load catalog questions: %w", err)
	}
	questions = filterByTypes(questions, req.QuestionTypes)

	var data []byte
	switch req.Format {
	case "csv":
		data, err = s.exportCSV(questions)
	case "xlsx":
		data, err = s.exportExcel(questions)
	default:
		return nil, "", ErrExportFormatUnknown
	}
	if err != nil {
		return nil, "", err
	}

	event := events.NewCatalogExportedEvent(req.CatalogID, userID, req.Format, len(questions))
	if err := s.eventPublisher.PublishEvaluationEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish catalog exported event", "catalog_id", req.CatalogID, "error", err)
	}

	filename := fmt.Sprintf("catalog-%d-questions.%s", req.CatalogID, req.Format)
	return data, filename, nil
}

func (s *importExportService) exportCSV(questions []*models.Question) ([]byte, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, question := range questions {
		if err := writer.Write(questionToRow(question)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func (s *importExportService) exportExcel(questions []*models.Question) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range questions {
		for colIndex, value := range questionToRow(question) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func questionToRow(question *models.Question) []string {
	return []string{
		question.ID,
		string(question.Type),
		question.Text,
		strconv.FormatFloat(question.Points, 'f', -1, 64),
		strconv.Itoa(question.Order),
		string(question.Content),
	}
}

func filterByTypes(questions []*models.Question, types []string) []*models.Question {
	if len(types) == 0 {
		return questions
	}

	wanted := make(map[models.QuestionType]bool, len(types))
	for _, t := range types {
		wanted[models.QuestionType(t)] = true
	}

	filtered := make([]*models.Question, 0, len(questions))
	for _, question := range questions {
		if wanted[question.Type] {
			filtered = append(filtered, question)
		}
	}
	return filtered
}

func (s *importExportService) requireOwnedCatalog(ctx context.Context, catalogID uint, userID string) error {
	catalog, err := s.catalogRepo.GetByID(ctx, catalogID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCatalogNotFound
		}
		return fmt.Errorf("failed to get catalog: %w", err)
	}
	if catalog.CreatedBy != userID {
		return NewPermissionError(userID, catalogID, "catalog", "import_questions", "not the catalog owner")
	}
	if catalog.Status == models.CatalogArchived {
		return ErrCatalogNotEditable
	}
	return nil
}
