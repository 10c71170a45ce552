package validator

import (
	"encoding/json"
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestValidateContent(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name    string
		qType   models.QuestionType
		content interface{}
		wantErr string
	}{
		{
			name:  "valid choice",
			qType: models.MultipleChoice,
			content: models.ChoiceContent{Options: []models.ChoiceOption{
				{Text: "A", IsCorrect: true},
				{Text: "B"},
			}},
		},
		{
			name:  "choice without correct option",
			qType: models.MultipleChoice,
			content: models.ChoiceContent{Options: []models.ChoiceOption{
				{Text: "A"},
				{Text: "B"},
			}},
			wantErr: "at least 1 correct option",
		},
		{
			name:    "choice with single option",
			qType:   models.MultipleChoice,
			content: models.ChoiceContent{Options: []models.ChoiceOption{{Text: "A", IsCorrect: true}}},
			wantErr: "at least 2 options",
		},
		{
			name:  "valid ordering",
			qType: models.Ordering,
			content: models.OrderingContent{Steps: []models.OrderingStep{
				{Text: "first", CorrectPosition: 1},
				{Text: "second", CorrectPosition: 2},
			}},
		},
		{
			name:  "ordering with duplicate positions",
			qType: models.Ordering,
			content: models.OrderingContent{Steps: []models.OrderingStep{
				{Text: "first", CorrectPosition: 1},
				{Text: "second", CorrectPosition: 1},
			}},
			wantErr: "duplicate position",
		},
		{
			name:  "ordering with out-of-range position",
			qType: models.Ordering,
			content: models.OrderingContent{Steps: []models.OrderingStep{
				{Text: "first", CorrectPosition: 1},
				{Text: "second", CorrectPosition: 5},
			}},
			wantErr: "position must be between",
		},
		{
			name:  "valid matching",
			qType: models.Matching,
			content: models.MatchingContent{
				LeftItems:  []models.MatchItem{{ID: "l1", Text: "left"}},
				RightItems: []models.MatchItem{{ID: "r1", Text: "right"}},
				Pairs:      []models.MatchPair{{LeftID: "l1", RightIDs: []string{"r1"}}},
			},
		},
		{
			name:  "matching pair references unknown right item",
			qType: models.Matching,
			content: models.MatchingContent{
				LeftItems:  []models.MatchItem{{ID: "l1", Text: "left"}},
				RightItems: []models.MatchItem{{ID: "r1", Text: "right"}},
				Pairs:      []models.MatchPair{{LeftID: "l1", RightIDs: []string{"r9"}}},
			},
			wantErr: "non-existent right item",
		},
		{
			name:  "valid blanks",
			qType: models.FillBlank,
			content: models.BlankContent{Blanks: []models.Blank{
				{Position: 1, Accepted: []string{"five"}},
			}},
		},
		{
			name:  "blank without accepted answers",
			qType: models.FillBlank,
			content: models.BlankContent{Blanks: []models.Blank{
				{Position: 1},
			}},
			wantErr: "at least 1 accepted answer",
		},
		{
			name:  "valid statements",
			qType: models.TrueFalseGroup,
			content: models.StatementContent{Statements: []models.Statement{
				{Text: "s1", IsCorrect: true},
			}},
		},
		{
			name:    "statements empty",
			qType:   models.TrueFalse,
			content: models.StatementContent{},
			wantErr: "at least 1 statement",
		},
		{
			name:    "valid free text",
			qType:   models.FreeText,
			content: models.FreeTextContent{Keywords: []string{"cinq"}},
		},
		{
			name:    "free text without keywords",
			qType:   models.FreeText,
			content: models.FreeTextContent{},
			wantErr: "at least 1 keyword",
		},
		{
			name:    "unsupported type",
			qType:   "essay",
			content: map[string]string{},
			wantErr: "unsupported question type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateContent(tt.qType, raw(t, tt.content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	v := New()

	question := &models.Question{
		ID:     "q1",
		Type:   models.MultipleChoice,
		Text:   "Pick one",
		Points: 1,
		Content: raw(t, models.ChoiceContent{Options: []models.ChoiceOption{
			{Text: "A", IsCorrect: true},
			{Text: "B"},
		}}),
	}
	assert.NoError(t, v.Validate(question))

	question.Text = ""
	assert.Error(t, v.Question().ValidateQuestion(question))
}

func TestCustomTags(t *testing.T) {
	v := New()

	type request struct {
		Type   string `json:"type" validate:"required,question_type"`
		Format string `json:"format" validate:"omitempty,export_format"`
		Mode   string `json:"mode" validate:"omitempty,ordering_mode"`
	}

	assert.NoError(t, v.ValidateStruct(request{Type: "free_text", Format: "csv", Mode: "proximity"}))
	assert.Error(t, v.ValidateStruct(request{Type: "essay"}))
	assert.Error(t, v.ValidateStruct(request{Type: "ordering", Format: "pdf"}))
	assert.Error(t, v.ValidateStruct(request{Type: "ordering", Mode: "loose"}))
}
