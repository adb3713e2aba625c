package parser

import (
	"strings"

	"sjsage522/pokerscraper/internal/poker"
)

// Checked in order: every PLO5 text also contains "plo".
var variantMarkers = []struct {
	variant poker.Variant
	markers []string
}{
	{poker.VariantPLO5, []string{"plo5", "plo-5", "5-card", "5 card", "five card", "5card"}},
	{poker.VariantPLO, []string{"plo", "omaha"}},
	{poker.VariantMixed, []string{"mixed", "horse", "8-game", "8 game"}},
}

// DetectVariant classifies free text, defaulting to no-limit hold'em
func DetectVariant(text string) poker.Variant {
	lower := strings.ToLower(text)
	for _, vm := range variantMarkers {
		for _, marker := range vm.markers {
			if strings.Contains(lower, marker) {
				return vm.variant
			}
		}
	}
	return poker.VariantNLHE
}

// ParseVariantName maps a payload value such as "PLO5" or "Pot Limit Omaha"
func ParseVariantName(s string) poker.Variant {
	switch v := poker.Variant(strings.ToUpper(strings.TrimSpace(s))); v {
	case poker.VariantNLHE, poker.VariantPLO, poker.VariantPLO5, poker.VariantMixed, poker.VariantOther:
		return v
	}
	return DetectVariant(s)
}
