package engine

import "github.com/ericogr/clash-of-gods/internal/game"

// pruneOrder removes id from the turn order, keeping the cursor on the
// combatant that currently holds the turn.
func pruneOrder(b *game.Battle, id string) {
	for i, e := range b.Order {
		if e.CombatantID != id {
			continue
		}
		b.Order = append(b.Order[:i], b.Order[i+1:]...)
		if i < b.TurnIndex {
			b.TurnIndex--
		}
		return
	}
}

// applyDamage subtracts amount from HP, clamping at zero, and returns the
// amount actually removed.
func applyDamage(c *game.Combatant, amount int) int {
	if amount <= 0 || c.Stats.HP <= 0 {
		return 0
	}
	if amount > c.Stats.HP {
		amount = c.Stats.HP
	}
	c.Stats.HP -= amount
	return amount
}

// heal adds amount to HP. There is no max HP in this rule set.
func heal(c *game.Combatant, amount int) int {
	if amount <= 0 {
		return 0
	}
	c.Stats.HP += amount
	return amount
}

// opponentOf returns the other team index.
func opponentOf(team int) int { return 1 - team }
