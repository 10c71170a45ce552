package evaluation

// VariantDictionary maps a canonical keyword (normalized form) to the
// cross-language and transliterated spellings accepted for it. It is
// consulted before falling back to generated variations or similarity
// scoring, and is immutable after construction, so a single instance is
// safely shared across concurrent evaluations.
type VariantDictionary map[string][]string

// defaultVariantDictionary covers the recurring answer words of the
// training catalogs: French canonical forms with their English and Arabic
// transliteration equivalents.
var defaultVariantDictionary = VariantDictionary{
	"un":       {"one", "1", "wahed", "wahid"},
	"deux":     {"two", "2", "jouj", "ithnane"},
	"trois":    {"three", "3", "tlata", "thalatha"},
	"quatre":   {"four", "4", "rb3a", "arba"},
	"cinq":     {"five", "5", "khamsa", "hamsa", "khamssa"},
	"six":      {"6", "setta", "sitta"},
	"sept":     {"seven", "7", "sb3a", "sabaa"},
	"maroc":    {"morocco", "al maghrib", "maghrib", "maghreb"},
	"eau":      {"water", "ma", "lma"},
	"plante":   {"plant", "plants", "nabta", "nabat"},
	"soleil":   {"sun", "chams", "shams"},
	"securite": {"security", "safety", "amn"},
	"travail":  {"work", "job", "khedma", "amal"},
	"argent":   {"money", "flous", "flouss"},
	"oui":      {"yes", "na3am", "wah"},
	"non":      {"no", "la"},
}

// DefaultVariantDictionary returns the built-in keyword-variant dictionary.
func DefaultVariantDictionary() VariantDictionary {
	return defaultVariantDictionary
}

// Lookup returns the known variants for a keyword (normalized before the
// lookup). The keyword itself is not part of the returned slice.
func (d VariantDictionary) Lookup(keyword string) []string {
	if d == nil {
		return nil
	}
	return d[Normalize(keyword)]
}
