package evaluation

import (
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestScoreStatements(t *testing.T) {
	content := models.StatementContent{Statements: []models.Statement{
		{Text: "s1", IsCorrect: true},
		{Text: "s2", IsCorrect: false},
		{Text: "s3", IsCorrect: true},
	}}

	tests := []struct {
		name       string
		values     map[int]*bool
		score      float64
		unanswered int
	}{
		{
			name:   "all correct",
			values: map[int]*bool{0: boolPtr(true), 1: boolPtr(false), 2: boolPtr(true)},
			score:  1.0,
		},
		{
			name:   "two of three",
			values: map[int]*bool{0: boolPtr(true), 1: boolPtr(true), 2: boolPtr(true)},
			score:  2.0 / 3.0,
		},
		{
			name:   "nil statement contributes zero",
			values: map[int]*bool{0: boolPtr(true), 1: nil, 2: nil},
			score:  1.0 / 3.0,
		},
		{
			name:       "every statement nil",
			values:     map[int]*bool{0: nil, 1: nil, 2: nil},
			score:      0,
			unanswered: 1,
		},
		{
			name:       "empty map",
			values:     nil,
			score:      0,
			unanswered: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScoreStatements(content, models.StatementAnswer{Values: tt.values})
			assert.InDelta(t, tt.score, out.Score, 1e-9)
			assert.Equal(t, tt.unanswered, out.Unanswered)
			assert.Equal(t, 1.0, out.PossibleScore)
		})
	}
}

func TestScoreStatements_NoStatements(t *testing.T) {
	out := ScoreStatements(models.StatementContent{}, models.StatementAnswer{})
	assert.Equal(t, 0.0, out.Score)
	assert.Contains(t, out.Details, "data error")
}
