package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(questionType models.QuestionType, content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("content cannot be empty")
	}

	switch questionType {
	case models.MultipleChoice:
		return v.validateChoiceContent(content)
	case models.Ordering:
		return v.validateOrderingContent(content)
	case models.Matching:
		return v.validateMatchingContent(content)
	case models.FillBlank:
		return v.validateBlankContent(content)
	case models.TrueFalseGroup, models.TrueFalse:
		return v.validateStatementContent(content)
	case models.FreeText:
		return v.validateFreeTextContent(content)
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}

	if question.Points < 0 || question.Points > 100 {
		return fmt.Errorf("question points must be between 0 and 100")
	}

	return v.ValidateContent(question.Type, question.Content)
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

// Private validation methods for each question type

func (v *QuestionValidator) validateChoiceContent(contentBytes []byte) error {
	var content models.ChoiceContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid multiple choice content: %w", err)
	}

	if len(content.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}

	if len(content.Options) > 10 {
		return fmt.Errorf("cannot have more than 10 options")
	}

	for i, option := range content.Options {
		if strings.TrimSpace(option.Text) == "" {
			return fmt.Errorf("option %d text cannot be empty", i+1)
		}
	}

	if content.CorrectCount() == 0 {
		return fmt.Errorf("must have at least 1 correct option")
	}

	return nil
}

func (v *QuestionValidator) validateOrderingContent(contentBytes []byte) error {
	var content models.OrderingContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid ordering content: %w", err)
	}

	if len(content.Steps) < 2 {
		return fmt.Errorf("must have at least 2 steps")
	}

	if len(content.Steps) > 10 {
		return fmt.Errorf("cannot have more than 10 steps")
	}

	seen := make(map[int]bool, len(content.Steps))
	for i, step := range content.Steps {
		if strings.TrimSpace(step.Text) == "" {
			return fmt.Errorf("step %d text cannot be empty", i+1)
		}
		if step.CorrectPosition < 1 || step.CorrectPosition > len(content.Steps) {
			return fmt.Errorf("step %d position must be between 1 and %d", i+1, len(content.Steps))
		}
		if seen[step.CorrectPosition] {
			return fmt.Errorf("duplicate position %d", step.CorrectPosition)
		}
		seen[step.CorrectPosition] = true
	}

	return nil
}

func (v *QuestionValidator) validateMatchingContent(contentBytes []byte) error {
	var content models.MatchingContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid matching content: %w", err)
	}

	if len(content.LeftItems) < 1 {
		return fmt.Errorf("must have at least 1 left item")
	}

	if len(content.RightItems) < 1 {
		return fmt.Errorf("must have at least 1 right item")
	}

	if len(content.LeftItems) > 10 || len(content.RightItems) > 10 {
		return fmt.Errorf("cannot have more than 10 items on each side")
	}

	if len(content.Pairs) == 0 {
		return fmt.Errorf("must have at least 1 pair")
	}

	leftIDs := make(map[string]bool)
	rightIDs := make(map[string]bool)

	for _, item := range content.LeftItems {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("left items must have both ID and text")
		}
		leftIDs[item.ID] = true
	}

	for _, item := range content.RightItems {
		if item.ID == "" || item.Text == "" {
			return fmt.Errorf("right items must have both ID and text")
		}
		rightIDs[item.ID] = true
	}

	for _, pair := range content.Pairs {
		if !leftIDs[pair.LeftID] {
			return fmt.Errorf("pair references non-existent left item: %s", pair.LeftID)
		}
		if len(pair.RightIDs) == 0 {
			return fmt.Errorf("pair for left item %s must require at least 1 right item", pair.LeftID)
		}
		for _, rightID := range pair.RightIDs {
			if !rightIDs[rightID] {
				return fmt.Errorf("pair references non-existent right item: %s", rightID)
			}
		}
	}

	return nil
}

func (v *QuestionValidator) validateBlankContent(contentBytes []byte) error {
	var content models.BlankContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid fill-in-blank content: %w", err)
	}

	if len(content.Blanks) == 0 {
		return fmt.Errorf("must have at least 1 blank")
	}

	positions := make(map[int]bool, len(content.Blanks))
	for _, blank := range content.Blanks {
		if len(blank.Accepted) == 0 {
			return fmt.Errorf("blank %d must have at least 1 accepted answer", blank.Position)
		}
		for i, answer := range blank.Accepted {
			if strings.TrimSpace(answer) == "" {
				return fmt.Errorf("blank %d accepted answer %d cannot be empty", blank.Position, i+1)
			}
		}
		if positions[blank.Position] {
			return fmt.Errorf("duplicate blank position %d", blank.Position)
		}
		positions[blank.Position] = true
	}

	return nil
}

func (v *QuestionValidator) validateStatementContent(contentBytes []byte) error {
	var content models.StatementContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid true/false content: %w", err)
	}

	if len(content.Statements) == 0 {
		return fmt.Errorf("must have at least 1 statement")
	}

	for i, statement := range content.Statements {
		if strings.TrimSpace(statement.Text) == "" {
			return fmt.Errorf("statement %d text cannot be empty", i+1)
		}
	}

	return nil
}

func (v *QuestionValidator) validateFreeTextContent(contentBytes []byte) error {
	var content models.FreeTextContent
	if err := json.Unmarshal(contentBytes, &content); err != nil {
		return fmt.Errorf("invalid free text content: %w", err)
	}

	if len(content.Keywords) == 0 {
		return fmt.Errorf("must have at least 1 keyword")
	}

	for i, keyword := range content.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("keyword %d cannot be empty", i+1)
		}
	}

	if content.MaxScore < 0 {
		return fmt.Errorf("max score cannot be negative")
	}

	return nil
}
