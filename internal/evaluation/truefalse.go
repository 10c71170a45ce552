package evaluation

import (
	"fmt"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// ScoreStatements grades the true/false forms: each statement contributes
// 1/n when the user's boolean equals the correct one; a nil value
// contributes 0. The question is unanswered only when every statement was
// left nil. Both the single-list and the grouped form share this scorer.
func ScoreStatements(content models.StatementContent, answer models.StatementAnswer) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	n := len(content.Statements)
	if n == 0 {
		out.Details = "data error: true/false question has no statements"
		return out
	}

	answered := 0
	correct := 0
	for idx, stmt := range content.Statements {
		val := answer.Values[idx]
		if val == nil {
			continue
		}
		answered++
		if *val == stmt.IsCorrect {
			correct++
		}
	}

	if answered == 0 {
		out.Unanswered = 1
		out.Details = "no statement answered"
		return out
	}

	out.Score = float64(correct) / float64(n)
	out.Details = fmt.Sprintf("%d/%d statement(s) correct, %d unanswered", correct, n, n-answered)
	return out
}
