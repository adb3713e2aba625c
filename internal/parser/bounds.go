package parser

// Bounds reject numbers that parse but are implausible for a provider,
// e.g. a leaderboard score "500/1000" read as stakes. Values are whole currency units.
type Bounds struct {
	BuyInMin  float64
	BuyInMax  float64
	StakesMin float64
	StakesMax float64
}

// DefaultBounds covers online tournament buy-ins and cash stakes up to 100/200
func DefaultBounds() Bounds {
	return Bounds{
		BuyInMin:  0.5,
		BuyInMax:  100_000,
		StakesMin: 0.01,
		StakesMax: 200,
	}
}

// WithOverrides replaces every non-zero field with the given value
func (b Bounds) WithOverrides(o Bounds) Bounds {
	if o.BuyInMin > 0 {
		b.BuyInMin = o.BuyInMin
	}
	if o.BuyInMax > 0 {
		b.BuyInMax = o.BuyInMax
	}
	if o.StakesMin > 0 {
		b.StakesMin = o.StakesMin
	}
	if o.StakesMax > 0 {
		b.StakesMax = o.StakesMax
	}
	return b
}

// BuyInOK reports whether a whole-unit buy-in is plausible
func (b Bounds) BuyInOK(units float64) bool {
	return units >= b.BuyInMin && units <= b.BuyInMax && units > 0
}

// StakesOK reports whether min <= sb < bb <= max
func (b Bounds) StakesOK(sb, bb float64) bool {
	return sb >= b.StakesMin && sb < bb && bb <= b.StakesMax && sb > 0
}
