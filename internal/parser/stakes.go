package parser

import (
	"regexp"
	"strconv"

	"sjsage522/pokerscraper/internal/poker"
)

var (
	stakesPattern = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*/\s*\$?(\d+(?:\.\d+)?)`)

	guaranteeAfterPattern  = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)([KkMm])?\s*(?:GTD|guaranteed|guarantee)\b`)
	guaranteeBeforePattern = regexp.MustCompile(`(?i)\b(?:GTD|guaranteed|guarantee)[:\s]*\$\s*(\d[\d,]*(?:\.\d+)?)([KkMm])?`)
)

// ParseStakes finds the first sb/bb pair inside bounds. Pairs that are part
// of a longer slash chain (dates such as 10/17/2026) are ignored.
func ParseStakes(text string, b Bounds) (poker.Stakes, bool) {
	for _, idx := range stakesPattern.FindAllStringSubmatchIndex(text, -1) {
		if partOfSlashChain(text, idx[0], idx[1]) {
			continue
		}
		sb, err1 := strconv.ParseFloat(text[idx[2]:idx[3]], 64)
		bb, err2 := strconv.ParseFloat(text[idx[4]:idx[5]], 64)
		if err1 != nil || err2 != nil || !b.StakesOK(sb, bb) {
			continue
		}
		stakes, err := poker.NewStakes(MinorUnits(sb), MinorUnits(bb), nil)
		if err != nil {
			continue
		}
		return stakes, true
	}
	return poker.Stakes{}, false
}

func partOfSlashChain(text string, start, end int) bool {
	if start > 0 {
		prev := text[start-1]
		if prev == '/' || prev == '.' || isDigit(prev) {
			return true
		}
	}
	if end < len(text) {
		next := text[end]
		if next == '/' || isDigit(next) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseGuarantee finds an amount next to a GTD/guaranteed keyword and
// returns it in minor units.
func ParseGuarantee(text string) (int64, bool) {
	for _, pattern := range []*regexp.Regexp{guaranteeAfterPattern, guaranteeBeforePattern} {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		units, ok := ParseAmount(m[1] + m[2])
		if !ok || units <= 0 {
			continue
		}
		return MinorUnits(units), true
	}
	return 0, false
}
