package engine

import (
	"fmt"

	"github.com/ericogr/clash-of-gods/internal/game"
)

// HasStatus reports whether c carries an unexpired status with key.
func HasStatus(c *game.Combatant, key string) bool {
	for _, s := range c.Statuses {
		if s.Key == key && s.Duration > 0 {
			return true
		}
	}
	return false
}

// HasAnyStatus reports whether c carries at least one unexpired status.
func HasAnyStatus(c *game.Combatant) bool {
	for _, s := range c.Statuses {
		if s.Duration > 0 {
			return true
		}
	}
	return false
}

// statusPower returns the power of the live status with key, or 0.
func statusPower(c *game.Combatant, key string) int {
	for _, s := range c.Statuses {
		if s.Key == key && s.Duration > 0 {
			return s.Power
		}
	}
	return 0
}

// AddStatus applies eff to c. An existing instance with the same key keeps
// the larger duration and the larger power; magnitudes never stack.
func AddStatus(c *game.Combatant, eff game.Effect) {
	for i := range c.Statuses {
		s := &c.Statuses[i]
		if s.Key != eff.Key {
			continue
		}
		s.Duration = max(s.Duration, eff.Duration)
		s.Power = max(s.Power, eff.Power)
		return
	}
	eff.Boost = nil
	c.Statuses = append(c.Statuses, eff)
}

// TickStatuses runs the end-of-round pass for one combatant: damage over
// time and regeneration first, then every duration drops by one and
// expired instances are removed.
func TickStatuses(c *game.Combatant) []string {
	if len(c.Statuses) == 0 {
		return nil
	}
	lines := make([]string, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		switch s.Key {
		case game.StatusBurn, game.StatusPoison:
			dealt := applyDamage(c, tickPower(s.Power, game.DefaultDoTPower))
			lines = append(lines, fmt.Sprintf("%s suffers %d from %s.", c.Name, dealt, s.Key))
		case game.StatusRegen:
			healed := heal(c, tickPower(s.Power, game.DefaultRegenPower))
			lines = append(lines, fmt.Sprintf("%s regenerates %d HP.", c.Name, healed))
		}
	}
	kept := c.Statuses[:0]
	for _, s := range c.Statuses {
		s.Duration--
		if s.Duration > 0 {
			kept = append(kept, s)
		}
	}
	c.Statuses = kept
	return lines
}

// tickPower treats a zero power as the default and never goes negative.
func tickPower(power, def int) int {
	if power == 0 {
		return def
	}
	if power < 0 {
		return 0
	}
	return power
}
