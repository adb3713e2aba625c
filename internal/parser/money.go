// Package parser turns free page text and decoded script payloads into
// poker entities. Every function is pure apart from debug logging of
// skipped input; none of them return errors, a fragment that cannot be
// parsed is reported with ok=false and dropped by the caller.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"sjsage522/pokerscraper/logger"
)

var (
	moneyCleaner = strings.NewReplacer(
		"$", "", "€", "", "£", "", "USD", "", "usd", "",
		",", "", " ", "", "\u00a0", "", "\t", "",
	)
	plainNumber = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// maxAmount caps whole-unit amounts well inside int64 cents
const maxAmount = 1e15

// ParseAmount parses a money string into whole currency units, honoring
// K/M multipliers. ok is false for anything that is not a plain amount.
func ParseAmount(s string) (float64, bool) {
	clean := moneyCleaner.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, false
	}

	multiplier := 1.0
	switch clean[len(clean)-1] {
	case 'k', 'K':
		multiplier = 1_000
		clean = clean[:len(clean)-1]
	case 'm', 'M':
		multiplier = 1_000_000
		clean = clean[:len(clean)-1]
	}

	if !plainNumber.MatchString(clean) {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	if v*multiplier > maxAmount {
		return 0, false
	}
	return v * multiplier, true
}

// ParseMoney returns the whole-unit amount of a money string; unparsable
// input yields 0.
func ParseMoney(s string) int64 {
	v, ok := ParseAmount(s)
	if !ok {
		if logger.IsDebugEnabled() && strings.TrimSpace(s) != "" {
			logger.Debug("parser: skipping unparsable amount %q", s)
		}
		return 0
	}
	return int64(v)
}

// MinorUnits converts whole currency units to cents. Amounts that do not
// fit, and NaN, yield 0.
func MinorUnits(units float64) int64 {
	if math.IsNaN(units) || math.Abs(units) > maxAmount {
		return 0
	}
	return int64(math.Round(units * 100))
}

// FormatMoney renders minor units as a dollar string, "$55" or "$2.20"
func FormatMoney(minor int64) string {
	if minor%100 == 0 {
		return fmt.Sprintf("$%d", minor/100)
	}
	return fmt.Sprintf("$%d.%02d", minor/100, minor%100)
}
