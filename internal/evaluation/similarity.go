package evaluation

import "sort"

// SimilarityThreshold is the minimum token similarity accepted as a fuzzy
// keyword match by the free-text scorer.
const SimilarityThreshold = 0.7

// Levenshtein computes the classic edit distance between a and b with
// unit-cost insert, delete, and substitute, using a single rolling row of
// the (|b|+1) x (|a|+1) table.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	row := make([]int, len(ar)+1)
	for i := range row {
		row[i] = i
	}
	for j := 1; j <= len(br); j++ {
		prev := row[0]
		row[0] = j
		for i := 1; i <= len(ar); i++ {
			cur := row[i]
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			row[i] = minInt(row[i]+1, row[i-1]+1, prev+cost)
			prev = cur
		}
	}
	return row[len(ar)]
}

// Similarity returns (max(|a|,|b|) - Levenshtein(a,b)) / max(|a|,|b|) in
// [0,1]. Either string being empty yields 0.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return float64(longest-Levenshtein(a, b)) / float64(longest)
}

// phoneticSubstitution is one rewrite rule of the variation generator.
type phoneticSubstitution struct {
	pattern      string
	replacements []string
}

// phoneticTable holds the substitutions applied when expanding a keyword
// into plausible misspellings and transliterations. Multi-rune patterns
// come first so "ph" is rewritten before its individual letters.
// Immutable after init; safe for concurrent use.
var phoneticTable = []phoneticSubstitution{
	{"ph", []string{"f"}},
	{"ch", []string{"sh", "tch"}},
	{"sh", []string{"ch"}},
	{"ou", []string{"u", "oo"}},
	{"oo", []string{"ou", "u"}},
	{"kh", []string{"h", "k"}},
	{"ss", []string{"s"}},
	{"c", []string{"k", "s"}},
	{"k", []string{"c", "q"}},
	{"q", []string{"k"}},
	{"s", []string{"c", "z", "ss"}},
	{"z", []string{"s"}},
	{"f", []string{"ph"}},
	{"g", []string{"j"}},
	{"j", []string{"g"}},
	{"v", []string{"w"}},
	{"w", []string{"v"}},
	{"i", []string{"y", "e"}},
	{"y", []string{"i"}},
	{"e", []string{"i"}},
	{"u", []string{"ou", "oo"}},
}

// GenerateVariations expands a word by applying each phonetic substitution
// at every position it matches, one rewrite per variant. The original word
// is always included. Output is deduplicated and sorted for determinism.
func GenerateVariations(word string) []string {
	word = Normalize(word)
	seen := map[string]struct{}{word: {}}

	for _, sub := range phoneticTable {
		for start := 0; start+len(sub.pattern) <= len(word); start++ {
			if word[start:start+len(sub.pattern)] != sub.pattern {
				continue
			}
			for _, rep := range sub.replacements {
				variant := word[:start] + rep + word[start+len(sub.pattern):]
				seen[variant] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
