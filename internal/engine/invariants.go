package engine

import (
	"fmt"

	"github.com/ericogr/clash-of-gods/internal/game"
)

// Validate checks the structural invariants that must hold between engine
// calls.
func Validate(b *game.Battle) error {
	seen := make(map[string]bool, len(b.Order))
	for _, e := range b.Order {
		c := b.Find(e.CombatantID)
		if c == nil {
			return fmt.Errorf("%w: order holds unknown id %q", ErrInvariant, e.CombatantID)
		}
		if c.Defeated() {
			return fmt.Errorf("%w: order holds defeated %q", ErrInvariant, e.CombatantID)
		}
		if seen[e.CombatantID] {
			return fmt.Errorf("%w: %q appears twice in order", ErrInvariant, e.CombatantID)
		}
		seen[e.CombatantID] = true
	}
	if b.Phase == game.PhaseOver && len(b.Order) > 0 && (b.TurnIndex < 0 || b.TurnIndex >= len(b.Order)) {
		return fmt.Errorf("%w: turn index %d outside final order of %d", ErrInvariant, b.TurnIndex, len(b.Order))
	}
	if b.Phase == game.PhaseCombat {
		if len(b.Order) == 0 {
			return fmt.Errorf("%w: empty order in combat", ErrInvariant)
		}
		if b.TurnIndex < 0 || b.TurnIndex >= len(b.Order) {
			return fmt.Errorf("%w: turn index %d outside order of %d", ErrInvariant, b.TurnIndex, len(b.Order))
		}
	}
	for i := range b.Teams {
		for _, c := range b.Teams[i] {
			if c.Stats.HP < 0 {
				return fmt.Errorf("%w: %q has negative HP", ErrInvariant, c.ID)
			}
		}
	}
	return nil
}
