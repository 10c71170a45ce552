package evaluation

import (
	"testing"

	"github.com/kaddourferdaous/etest-evaluation-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScoreFreeText_ShortcutRule(t *testing.T) {
	dict := DefaultVariantDictionary()

	tests := []struct {
		name     string
		keywords []string
		text     string
	}{
		{
			name:     "exact keyword present",
			keywords: []string{"cinq"},
			text:     "il y en a cinq",
		},
		{
			name:     "dictionary variant present",
			keywords: []string{"cinq"},
			text:     "the answer is five plants",
		},
		{
			name:     "transliterated variant present",
			keywords: []string{"cinq"},
			text:     "khamsa exactly",
		},
		{
			name:     "any single keyword suffices for full marks",
			keywords: []string{"eau", "soleil", "cinq"},
			text:     "water only",
		},
		{
			name:     "diacritics in the answer",
			keywords: []string{"securite"},
			text:     "la sécurité avant tout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ScoreFreeText(
				models.FreeTextContent{Keywords: tt.keywords},
				models.FreeTextAnswer{Text: tt.text},
				dict,
			)
			assert.Equal(t, 1.0, out.Score, "shortcut rule must award full credit")
			assert.Equal(t, 0, out.Unanswered)
		})
	}
}

func TestScoreFreeText_FuzzyFallback(t *testing.T) {
	dict := DefaultVariantDictionary()

	// khamssa is not a substring variant of khamsa but passes the 0.7
	// similarity threshold.
	out := ScoreFreeText(
		models.FreeTextContent{Keywords: []string{"khamsa"}},
		models.FreeTextAnswer{Text: "khamssa"},
		dict,
	)
	assert.Equal(t, 1.0, out.Score)
}

func TestScoreFreeText_Unanswered(t *testing.T) {
	out := ScoreFreeText(
		models.FreeTextContent{Keywords: []string{"cinq"}},
		models.FreeTextAnswer{Text: "   "},
		DefaultVariantDictionary(),
	)
	assert.Equal(t, 0.0, out.Score)
	assert.Equal(t, 1, out.Unanswered)
}

func TestScoreFreeText_NoKeywords(t *testing.T) {
	out := ScoreFreeText(models.FreeTextContent{}, models.FreeTextAnswer{Text: "anything"}, nil)
	assert.Equal(t, 0.0, out.Score)
	assert.Contains(t, out.Details, "data error")
}

func TestScoreFreeText_NoMatch(t *testing.T) {
	out := ScoreFreeText(
		models.FreeTextContent{Keywords: []string{"photosynthese"}},
		models.FreeTextAnswer{Text: "completely unrelated"},
		DefaultVariantDictionary(),
	)
	assert.Equal(t, 0.0, out.Score)
	assert.Equal(t, 0, out.Unanswered)
}

func TestScoreFreeText_ScoreBounds(t *testing.T) {
	dict := DefaultVariantDictionary()
	contents := []models.FreeTextContent{
		{Keywords: []string{"cinq", "maroc"}},
		{Keywords: []string{"eau"}, MaxScore: 3},
		{Keywords: []string{"a", "b", "c"}, MaxScore: 0.5},
	}
	answers := []string{"", "five", "morocco water", "zzz"}

	for _, content := range contents {
		for _, text := range answers {
			out := ScoreFreeText(content, models.FreeTextAnswer{Text: text}, dict)
			assert.GreaterOrEqual(t, out.Score, 0.0)
			assert.LessOrEqual(t, out.Score, out.PossibleScore)
		}
	}
}
