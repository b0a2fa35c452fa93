package engine

import "github.com/ericogr/clash-of-gods/internal/dice"

// Tier is the outcome band of an attack roll.
type Tier string

const (
	TierMiss   Tier = "miss"
	TierSlight Tier = "slight"
	TierNormal Tier = "normal"
	TierCrit   Tier = "crit"
)

// TierFor maps a d20 roll to its band: 1-5 miss, 6-15 slight, 16-19
// normal, 20 crit.
func TierFor(roll int) Tier {
	switch {
	case roll <= 5:
		return TierMiss
	case roll <= 15:
		return TierSlight
	case roll < dice.Sides:
		return TierNormal
	default:
		return TierCrit
	}
}

// Bonus is the flat damage the tier adds on top of base damage.
func (t Tier) Bonus() int {
	switch t {
	case TierSlight, TierCrit:
		return 20
	}
	return 0
}

// TrueDamage reports whether the tier ignores damage reduction.
func (t Tier) TrueDamage() bool { return t == TierNormal }

// totalFor combines base damage with the tier. A miss always deals zero.
func totalFor(t Tier, base int) int {
	if t == TierMiss {
		return 0
	}
	return base + t.Bonus()
}

// Effect roll bands.
const (
	effectFailMax = 10
	effectCrit    = dice.Sides
)
