package evaluation

import (
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func matchingContent() models.MatchingContent {
	return models.MatchingContent{
		LeftItems: []models.MatchItem{
			{ID: "l1", Text: "Capital of Morocco"},
			{ID: "l2", Text: "Primary colors"},
		},
		RightItems: []models.MatchItem{
			{ID: "r1", Text: "Rabat"},
			{ID: "r2", Text: "Red"},
			{ID: "r3", Text: "Blue"},
		},
		Pairs: []models.MatchPair{
			{LeftID: "l1", RightIDs: []string{"r1"}},
			{LeftID: "l2", RightIDs: []string{"r2", "r3"}},
		},
	}
}

func TestScoreMatching(t *testing.T) {
	tests := []struct {
		name       string
		slots      map[string][]string
		score      float64
		unanswered int
	}{
		{
			name:  "all slots by id",
			slots: map[string][]string{"l1": {"r1"}, "l2": {"r2", "r3"}},
			score: 1.0,
		},
		{
			name:  "all slots by display text",
			slots: map[string][]string{"l1": {"Rabat"}, "l2": {"red", "BLUE"}},
			score: 1.0,
		},
		{
			name:  "display text with accents",
			slots: map[string][]string{"l1": {"Rábat"}, "l2": {"", ""}},
			score: 1.0 / 3.0,
		},
		{
			name:  "one multi-slot entry wrong",
			slots: map[string][]string{"l1": {"r1"}, "l2": {"r3", "r2"}},
			score: 1.0 / 3.0,
		},
		{
			name:  "short answer list leaves later slots empty",
			slots: map[string][]string{"l1": {"r1"}, "l2": {"r2"}},
			score: 2.0 / 3.0,
		},
		{
			name:       "every slot empty",
			slots:      map[string][]string{"l1": {""}, "l2": {"", " "}},
			score:      0,
			unanswered: 1,
		},
		{
			name:       "no answer at all",
			slots:      nil,
			score:      0,
			unanswered: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScoreMatching(matchingContent(), models.MatchingAnswer{Slots: tt.slots})
			assert.InDelta(t, tt.score, out.Score, 1e-9)
			assert.Equal(t, tt.unanswered, out.Unanswered)
			assert.Equal(t, 1.0, out.PossibleScore)
		})
	}
}

func TestScoreMatching_NoPairs(t *testing.T) {
	out := ScoreMatching(models.MatchingContent{}, models.MatchingAnswer{})
	assert.Equal(t, 0.0, out.Score)
	assert.Contains(t, out.Details, "data error")
}
