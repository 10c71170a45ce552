package evaluation

import (
	"fmt"
	"strings"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// ScoreMatching grades a pairwise-matching question. Every required right
// id of every pair is one slot; a slot is correct when the user entry
// matches either the right id or the right item's display text after
// normalization. The question is unanswered only when every slot is empty.
func ScoreMatching(content models.MatchingContent, answer models.MatchingAnswer) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	totalSlots := 0
	for _, pair := range content.Pairs {
		totalSlots += len(pair.RightIDs)
	}
	if totalSlots == 0 {
		out.Details = "data error: matching question has no correspondences"
		return out
	}

	rightText := make(map[string]string, len(content.RightItems))
	for _, item := range content.RightItems {
		rightText[item.ID] = item.Text
	}

	correct := 0
	filled := 0
	for _, pair := range content.Pairs {
		entries := answer.Slots[pair.LeftID]
		for slot, rightID := range pair.RightIDs {
			var entry string
			if slot < len(entries) {
				entry = strings.TrimSpace(entries[slot])
			}
			if entry == "" {
				continue
			}
			filled++
			got := Normalize(entry)
			if got == Normalize(rightID) || got == Normalize(rightText[rightID]) {
				correct++
			}
		}
	}

	if filled == 0 {
		out.Unanswered = 1
		out.Details = "no slot filled"
		return out
	}

	out.Score = float64(correct) / float64(totalSlots)
	out.Details = fmt.Sprintf("%d/%d slot(s) matched", correct, totalSlots)
	return out
}
