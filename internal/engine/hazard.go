package engine

import "github.com/ericogr/clash-of-gods/internal/game"

// Hazard is an arena-wide effect applied to living combatants at round end
// while its flag is on.
type Hazard interface {
	Name() string
	Apply(a Arena, living []*game.Combatant)
}

// HazardThunderstorm is the flag name of the stock hazard.
const HazardThunderstorm = "thunderstorm"

// Thunderstorm strikes everyone except the immune combatant, harder when flying.
type Thunderstorm struct {
	Immune       string
	FlyingDamage int
	GroundDamage int
}

func DefaultThunderstorm() Thunderstorm {
	return Thunderstorm{Immune: "ZEUS", FlyingDamage: 8, GroundDamage: 4}
}

func (Thunderstorm) Name() string { return HazardThunderstorm }

func (h Thunderstorm) Apply(a Arena, living []*game.Combatant) {
	for _, c := range living {
		if c.ID == h.Immune {
			continue
		}
		dmg := h.GroundDamage
		if c.CanFly {
			dmg = h.FlyingDamage
		}
		a.Logf("Thunderstorm zaps %s for %d.", c.Name, applyDamage(c, dmg))
	}
}
