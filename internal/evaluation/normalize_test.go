package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase", input: "HELLO", expected: "hello"},
		{name: "diacritics removed", input: "Café", expected: "cafe"},
		{name: "french accents", input: "éléphant à l'école", expected: "elephant a l ecole"},
		{name: "punctuation to space", input: "five,plants!", expected: "five plants"},
		{name: "whitespace collapsed", input: "  too   many\tspaces ", expected: "too many spaces"},
		{name: "empty", input: "", expected: ""},
		{name: "only punctuation", input: "?!...", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Café", "  Écran, total!  ", "khamsa", "L'évaluation des acquis"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestNormalize_AccentInsensitiveEquality(t *testing.T) {
	assert.Equal(t, Normalize("Café"), Normalize("cafe"))
	assert.Equal(t, "cafe", Normalize("Café"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"the", "answer", "is", "five"}, Tokenize("The answer, is FIVE."))
	assert.Empty(t, Tokenize("   "))
}
