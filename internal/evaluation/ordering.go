package evaluation

import (
	"fmt"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// OrderingMode selects how ordering questions award credit.
type OrderingMode string

const (
	// OrderingStrict awards 1/n per step only on an exact rank match.
	// This is the canonical grading behavior.
	OrderingStrict OrderingMode = "strict"
	// OrderingProximity awards graded credit that decays with the
	// distance between the user rank and the correct rank. Used for
	// interactive previews, never for final grading by default.
	OrderingProximity OrderingMode = "proximity"
)

// ScoreOrdering grades a step-ordering question. A rank of 0 or a missing
// entry counts as an unranked step; the question is unanswered only when
// no step received a rank.
func ScoreOrdering(content models.OrderingContent, answer models.OrderingAnswer, mode OrderingMode) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	n := len(content.Steps)
	if n == 0 {
		out.Details = "data error: ordering question has no steps"
		return out
	}

	ranked := 0
	exact := 0
	score := 0.0
	per := 1.0 / float64(n)
	for _, step := range content.Steps {
		rank := answer.Positions[step.Text]
		if rank <= 0 {
			continue
		}
		ranked++
		delta := rank - step.CorrectPosition
		if delta < 0 {
			delta = -delta
		}
		if delta == 0 {
			exact++
			score += per
			continue
		}
		if mode == OrderingProximity && n > 1 {
			score += per * (1.0 - float64(delta)/float64(n-1))
		}
	}

	if ranked == 0 {
		out.Unanswered = 1
		out.Details = "no step ranked"
		return out
	}

	out.Score = clamp01(score)
	out.Details = fmt.Sprintf("%d/%d step(s) at the correct position", exact, n)
	return out
}
