package evaluation

import (
	"fmt"
	"strings"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// ScoreBlank grades a fill-in-the-blank question. A blank is correct iff
// the normalized user entry equals one of its accepted answers after the
// same normalization; no fuzzy matching is applied here. The question is
// unanswered only when every blank is empty.
func ScoreBlank(content models.BlankContent, answer models.BlankAnswer) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	total := len(content.Blanks)
	if total == 0 {
		out.Details = "data error: blank question has no blanks"
		return out
	}

	correct := 0
	filled := 0
	for _, blank := range content.Blanks {
		entry := strings.TrimSpace(answer.Entries[blank.Position])
		if entry == "" {
			continue
		}
		filled++
		got := Normalize(entry)
		for _, accepted := range blank.Accepted {
			if got == Normalize(accepted) {
				correct++
				break
			}
		}
	}

	if filled == 0 {
		out.Unanswered = 1
		out.Details = "no blank filled"
		return out
	}

	out.Score = float64(correct) / float64(total)
	out.Details = fmt.Sprintf("%d/%d blank(s) correct", correct, total)
	return out
}
