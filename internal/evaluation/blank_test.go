package evaluation

import (
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScoreBlank(t *testing.T) {
	content := models.BlankContent{Blanks: []models.Blank{
		{Position: 1, Accepted: []string{"five", "cinq"}},
		{Position: 2, Accepted: []string{"Morocco"}},
	}}

	tests := []struct {
		name       string
		entries    map[int]string
		score      float64
		unanswered int
	}{
		{
			name:    "case-varied answers accepted",
			entries: map[int]string{1: "Five", 2: "morocco"},
			score:   1.0,
		},
		{
			name:    "alternate accepted answer",
			entries: map[int]string{1: "cinq", 2: "MOROCCO"},
			score:   1.0,
		},
		{
			name:    "one correct one wrong",
			entries: map[int]string{1: "five", 2: "spain"},
			score:   0.5,
		},
		{
			name:    "fuzzy spellings are rejected",
			entries: map[int]string{1: "fivee", 2: "moroco"},
			score:   0.0,
		},
		{
			name:    "surrounding whitespace trimmed",
			entries: map[int]string{1: "  five  ", 2: ""},
			score:   0.5,
		},
		{
			name:       "all blanks empty",
			entries:    map[int]string{1: "", 2: "  "},
			score:      0,
			unanswered: 1,
		},
		{
			name:       "no entries",
			entries:    nil,
			score:      0,
			unanswered: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScoreBlank(content, models.BlankAnswer{Entries: tt.entries})
			assert.InDelta(t, tt.score, out.Score, 1e-9)
			assert.Equal(t, tt.unanswered, out.Unanswered)
		})
	}
}

func TestScoreBlank_DiacriticInsensitive(t *testing.T) {
	content := models.BlankContent{Blanks: []models.Blank{
		{Position: 1, Accepted: []string{"éléphant"}},
	}}
	out := ScoreBlank(content, models.BlankAnswer{Entries: map[int]string{1: "elephant"}})
	assert.Equal(t, 1.0, out.Score)
}

func TestScoreBlank_NoBlanks(t *testing.T) {
	out := ScoreBlank(models.BlankContent{}, models.BlankAnswer{})
	assert.Equal(t, 0.0, out.Score)
	assert.Contains(t, out.Details, "data error")
}
