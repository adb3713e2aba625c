package parser

import (
	"regexp"
	"strings"
)

// MaxNameLength bounds tournament names in result payloads
const MaxNameLength = 100

const nameKeywords = `Championship|Series|Main Event|Daily|Weekly|Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Turbo|Hyper|Bounty|Million|Classic|Special`

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`((?:[A-Z#][\w'\-.]*\s+){0,4}(?:` + nameKeywords + `)(?:\s+[A-Z][\w'\-.]*){0,3})`),
		regexp.MustCompile(`#\d+[:\s]+([A-Za-z][\w \-']+)`),
	}

	nameStopWords = map[string]bool{
		"GTD": true, "NL": true, "NLH": true, "NLHE": true, "PLO": true, "PLO5": true,
		"AM": true, "PM": true, "ET": true, "PT": true, "UTC": true, "GMT": true, "CET": true,
		"Buy-in": true, "Buy-In": true, "Entry": true,
	}

	whitespace = regexp.MustCompile(`\s+`)
)

// ExtractName finds a descriptive tournament name in text and falls back
// to "<buy-in> Tournament".
func ExtractName(text string, buyIn int64) string {
	for _, pattern := range namePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if name := cleanName(m[1]); name != "" {
			return TruncateName(name)
		}
	}
	return FallbackName(buyIn)
}

// FallbackName synthesizes a name from the buy-in
func FallbackName(buyIn int64) string {
	return FormatMoney(buyIn) + " Tournament"
}

// TruncateName collapses whitespace and cuts to MaxNameLength runes
func TruncateName(name string) string {
	name = strings.TrimSpace(whitespace.ReplaceAllString(name, " "))
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		return strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	return name
}

func cleanName(raw string) string {
	words := strings.Fields(raw)
	for len(words) > 0 && nameStopWords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && nameStopWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
