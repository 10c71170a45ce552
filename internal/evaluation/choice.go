package evaluation

import (
	"fmt"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// ScoreChoice grades a single- or multi-answer choice question.
//
// Selecting nothing is unanswered; selecting every option scores 0. A
// single-correct question is all-or-nothing. A multi-correct question
// starts at 1.0 and loses 1/n per missed correct option and per selected
// incorrect option, clamped to [0,1].
func ScoreChoice(content models.ChoiceContent, answer models.ChoiceAnswer) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	total := len(content.Options)
	if total == 0 {
		out.Details = "data error: choice question has no options"
		return out
	}

	selected := make(map[int]bool, len(answer.Selected))
	for _, idx := range answer.Selected {
		if idx >= 0 && idx < total {
			selected[idx] = true
		}
	}

	if len(selected) == 0 {
		out.Unanswered = 1
		out.Details = "no option selected"
		return out
	}

	if len(selected) == total {
		out.Details = "all options selected"
		return out
	}

	correctCount := content.CorrectCount()
	if correctCount == 0 {
		out.Details = "data error: no option marked correct"
		return out
	}

	if correctCount == 1 {
		if len(selected) > 1 {
			out.Details = "multiple options selected on a single-answer question"
			return out
		}
		for idx, opt := range content.Options {
			if opt.IsCorrect && selected[idx] {
				out.Score = 1
				out.Details = "correct"
				return out
			}
		}
		out.Details = "wrong option selected"
		return out
	}

	score := 1.0
	penalty := 1.0 / float64(total)
	missed, wrong := 0, 0
	for idx, opt := range content.Options {
		switch {
		case opt.IsCorrect && !selected[idx]:
			score -= penalty
			missed++
		case !opt.IsCorrect && selected[idx]:
			score -= penalty
			wrong++
		}
	}
	out.Score = clamp01(score)
	out.Details = fmt.Sprintf("%d correct option(s) missed, %d incorrect selected", missed, wrong)
	return out
}
