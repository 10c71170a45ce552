package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// Validator is the main validator instance that combines struct tag
// validation with question content validation.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs struct tag validation and, for question payloads,
// content validation
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	if q, ok := s.(*models.Question); ok {
		return v.questionValidator.ValidateQuestion(q)
	}

	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("catalog_status", validateCatalogStatus)
	validate.RegisterValidation("export_format", validateExportFormat)
	validate.RegisterValidation("ordering_mode", validateOrderingMode)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).Valid()
}

func validateCatalogStatus(fl validator.FieldLevel) bool {
	switch models.CatalogStatus(fl.Field().String()) {
	case models.CatalogDraft, models.CatalogActive, models.CatalogArchived:
		return true
	}
	return false
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xlsx", "csv":
		return true
	}
	return false
}

func validateOrderingMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "strict", "proximity":
		return true
	}
	return false
}
