package evaluation

import (
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func orderingContent() models.OrderingContent {
	return models.OrderingContent{Steps: []models.OrderingStep{
		{Text: "prepare", CorrectPosition: 1},
		{Text: "execute", CorrectPosition: 2},
		{Text: "review", CorrectPosition: 3},
	}}
}

func TestScoreOrdering_Strict(t *testing.T) {
	tests := []struct {
		name       string
		positions  map[string]int
		score      float64
		unanswered int
	}{
		{
			name:      "all exact",
			positions: map[string]int{"prepare": 1, "execute": 2, "review": 3},
			score:     1.0,
		},
		{
			name:      "two swapped",
			positions: map[string]int{"prepare": 2, "execute": 1, "review": 3},
			score:     1.0 / 3.0,
		},
		{
			name:      "partially ranked",
			positions: map[string]int{"prepare": 1},
			score:     1.0 / 3.0,
		},
		{
			name:       "nothing ranked",
			positions:  map[string]int{},
			score:      0,
			unanswered: 1,
		},
		{
			name:       "zero ranks are unranked",
			positions:  map[string]int{"prepare": 0, "execute": 0, "review": 0},
			score:      0,
			unanswered: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScoreOrdering(orderingContent(), models.OrderingAnswer{Positions: tt.positions}, OrderingStrict)
			assert.InDelta(t, tt.score, out.Score, 1e-9)
			assert.Equal(t, tt.unanswered, out.Unanswered)
		})
	}
}

func TestScoreOrdering_Proximity(t *testing.T) {
	// A step one position off keeps half its credit on a 3-step question.
	out := ScoreOrdering(orderingContent(), models.OrderingAnswer{
		Positions: map[string]int{"prepare": 2, "execute": 1, "review": 3},
	}, OrderingProximity)

	// review exact: 1/3; prepare and execute off by one: (1/3)*(1/2) each.
	assert.InDelta(t, 1.0/3.0+2.0*(1.0/3.0)*0.5, out.Score, 1e-9)
}

func TestScoreOrdering_ProximityNeverBeatsExact(t *testing.T) {
	answer := models.OrderingAnswer{Positions: map[string]int{"prepare": 1, "execute": 2, "review": 3}}
	strict := ScoreOrdering(orderingContent(), answer, OrderingStrict)
	proximity := ScoreOrdering(orderingContent(), answer, OrderingProximity)
	assert.Equal(t, strict.Score, proximity.Score)
	assert.Equal(t, 1.0, strict.Score)
}

func TestScoreOrdering_NoSteps(t *testing.T) {
	out := ScoreOrdering(models.OrderingContent{}, models.OrderingAnswer{}, OrderingStrict)
	assert.Equal(t, 0.0, out.Score)
	assert.Contains(t, out.Details, "data error")
}
