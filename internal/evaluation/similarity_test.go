package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"khamsa", "khamssa", 1},
		{"cinq", "cinq", 0},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b), "levenshtein(%q,%q)", tt.a, tt.b)
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{{"khamsa", "hamsa"}, {"maroc", "morocco"}, {"securite", "security"}}
	for _, p := range pairs {
		assert.Equal(t, Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]))
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("cinq", "cinq"))
	assert.Equal(t, 0.0, Similarity("", "cinq"))
	assert.Equal(t, 0.0, Similarity("cinq", ""))

	// khamssa is one insertion away from khamsa over 7 runes.
	assert.InDelta(t, 6.0/7.0, Similarity("khamsa", "khamssa"), 1e-9)
	assert.GreaterOrEqual(t, Similarity("khamsa", "khamssa"), SimilarityThreshold)
}

func TestGenerateVariations(t *testing.T) {
	variations := GenerateVariations("cinq")
	assert.Contains(t, variations, "cinq", "original word always included")
	assert.Contains(t, variations, "kinq", "c substituted by k")
	assert.Contains(t, variations, "sinq", "c substituted by s")

	phVariants := GenerateVariations("phase")
	assert.Contains(t, phVariants, "fase", "ph substituted by f")
}

func TestGenerateVariations_Deterministic(t *testing.T) {
	assert.Equal(t, GenerateVariations("khamsa"), GenerateVariations("khamsa"))
}

func TestVariantDictionary_Lookup(t *testing.T) {
	dict := DefaultVariantDictionary()

	assert.Contains(t, dict.Lookup("cinq"), "five")
	assert.Contains(t, dict.Lookup("CINQ"), "five", "lookup normalizes the keyword")
	assert.Contains(t, dict.Lookup("Maroc"), "morocco")
	assert.Empty(t, dict.Lookup("unknown-word"))

	var nilDict VariantDictionary
	assert.Empty(t, nilDict.Lookup("cinq"))
}
