package resolver

import (
	"regexp"
	"strings"
)

// Rule rewrites one naming convention during normalization. Rules run in
// table order; later rules see text already shaped by earlier ones.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

func rule(pattern, replacement string) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(`(?i)` + pattern),
		Replacement: replacement,
	}
}

// normalizationRules is the fixed, hand-maintained rewrite table: corporate
// prefixes and suffixes first, ampersand expansion, then diacritic folding.
var normalizationRules = []Rule{
	rule(`\bFC\b`, ""),
	rule(`\bCF\b`, ""),
	rule(`\bAC\b`, ""),
	rule(`\bSC\b`, ""),
	rule(`\bASC\b`, ""),
	rule(`\bClub\b`, ""),
	rule(`\bOlympique\b`, ""),
	rule(`\bSporting\b`, ""),
	rule(`\bUnited\b`, "Utd"),
	rule(`\bHotspur\b`, ""),
	rule(`&`, "and"),

	rule(`[éèêë]`, "e"),
	rule(`[áàâãä]`, "a"),
	rule(`[íìîï]`, "i"),
	rule(`[óòôõö]`, "o"),
	rule(`[úùûü]`, "u"),
	rule(`ç`, "c"),
	rule(`ñ`, "n"),
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a team name into a stable comparison key: trim,
// apply the rule table in order, collapse internal whitespace, lowercase.
// Total and idempotent; every matching strategy above the exact one relies
// on Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	for _, r := range normalizationRules {
		normalized = r.Pattern.ReplaceAllString(normalized, r.Replacement)
	}

	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")

	return strings.ToLower(strings.TrimSpace(normalized))
}
