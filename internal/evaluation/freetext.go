package evaluation

import (
	"fmt"
	"math"
	"strings"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
)

// ScoreFreeText grades a free-text answer against the question's keyword
// set.
//
// The shortcut rule runs first: if the normalized text contains any
// keyword, dictionary variant, or generated variation as a substring, the
// question gets full marks immediately. A terse answer carrying one strong
// signal word is treated as sufficient. Only when no shortcut fires does
// the scorer fall back to per-keyword partial credit, where each keyword is
// sought by substring match, then dictionary variant, then token similarity
// against the keyword and its variants.
func ScoreFreeText(content models.FreeTextContent, answer models.FreeTextAnswer, dict VariantDictionary) models.Outcome {
	out := models.Outcome{PossibleScore: 1, Submission: mustMarshal(answer)}

	if len(content.Keywords) == 0 {
		out.Details = "data error: free-text question has no keywords"
		return out
	}

	maxScore := content.MaxScore
	if maxScore <= 0 {
		maxScore = float64(len(content.Keywords))
	}

	text := Normalize(answer.Text)
	if text == "" {
		out.Unanswered = 1
		out.Details = "empty answer"
		return out
	}

	for _, keyword := range content.Keywords {
		if hit, via := shortcutMatch(text, keyword, dict); hit {
			out.Score = 1
			out.Details = fmt.Sprintf("full credit: %q detected (%s)", Normalize(keyword), via)
			return out
		}
	}

	tokens := strings.Fields(text)
	found := 0
	for _, keyword := range content.Keywords {
		if keywordFound(text, tokens, keyword, dict) {
			found++
		}
	}

	total := len(content.Keywords)
	raw := math.Round(maxScore*float64(found)/float64(total)*10) / 10
	out.Score = clamp01(raw / maxScore)
	out.Details = fmt.Sprintf("%d/%d keyword(s) found (%.1f/%.1f points)", found, total, raw, maxScore)
	return out
}

// shortcutMatch reports whether the text contains the keyword or any of
// its variants as a substring, and how the match was made.
func shortcutMatch(text, keyword string, dict VariantDictionary) (bool, string) {
	kw := Normalize(keyword)
	if kw == "" {
		return false, ""
	}
	if strings.Contains(text, kw) {
		return true, "exact"
	}
	for _, variant := range dict.Lookup(kw) {
		if v := Normalize(variant); v != "" && strings.Contains(text, v) {
			return true, "dictionary variant"
		}
	}
	for _, variant := range GenerateVariations(kw) {
		if variant != "" && strings.Contains(text, variant) {
			return true, "phonetic variant"
		}
	}
	return false, ""
}

// keywordFound applies the partial-credit search order: exact substring,
// dictionary-variant substring, token similarity against the keyword, then
// token similarity against any variant. A keyword counts at most once.
func keywordFound(text string, tokens []string, keyword string, dict VariantDictionary) bool {
	kw := Normalize(keyword)
	if kw == "" {
		return false
	}
	if strings.Contains(text, kw) {
		return true
	}

	variants := dict.Lookup(kw)
	for _, variant := range variants {
		if v := Normalize(variant); v != "" && strings.Contains(text, v) {
			return true
		}
	}

	for _, token := range tokens {
		if Similarity(token, kw) >= SimilarityThreshold {
			return true
		}
	}

	candidates := append([]string{}, variants...)
	candidates = append(candidates, GenerateVariations(kw)...)
	for _, token := range tokens {
		for _, variant := range candidates {
			if Similarity(token, Normalize(variant)) >= SimilarityThreshold {
				return true
			}
		}
	}
	return false
}
