package naming

import (
	"strings"
	"unicode"
)

// irregulars are exact, case-insensitive plural lookups checked before any
// suffix rule.
var irregulars = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"tooth":  "teeth",
	"foot":   "feet",
	"mouse":  "mice",
	"goose":  "geese",
}

// Pluralize converts a singular English noun to its plural form.
//
// Rules are applied in priority order: irregular table, consonant+y → ies,
// s/x/z/ch/sh → es, then a plain "s". This is a heuristic for table and
// route naming, not a linguistic engine; keep the rule order when extending.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}

	lower := strings.ToLower(word)

	if plural, ok := irregulars[lower]; ok {
		return preserveCase(word, plural)
	}

	if strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]) {
		return word[:len(word)-1] + "ies"
	}

	if strings.HasSuffix(lower, "s") ||
		strings.HasSuffix(lower, "x") ||
		strings.HasSuffix(lower, "z") ||
		strings.HasSuffix(lower, "ch") ||
		strings.HasSuffix(lower, "sh") {
		return word + "es"
	}

	return word + "s"
}

// preserveCase applies the case pattern of the original word to the plural
// form: USER → PEOPLE-style all caps, Person → People title case.
func preserveCase(original, plural string) string {
	if original == "" {
		return plural
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(plural)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
