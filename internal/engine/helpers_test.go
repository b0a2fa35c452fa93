package engine

import (
	"testing"

	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/game"
)

func strike(power int) game.Ability {
	return game.Ability{ID: "strike", Name: "Strike", Power: power, Type: game.Physical}
}

func fighter(id string, hp, str int, abs ...game.Ability) game.Combatant {
	if len(abs) == 0 {
		abs = []game.Ability{strike(10)}
	}
	return game.Combatant{ID: id, Name: id, Stats: game.Stats{HP: hp, STR: str}, Abilities: abs}
}

// combat builds a battle already in round one with the given turn order.
func combat(t *testing.T, teamA, teamB []game.Combatant, order ...string) *game.Battle {
	t.Helper()
	b := game.NewBattle(teamA, teamB)
	b.Phase = game.PhaseCombat
	b.Round = 1
	for i, id := range order {
		if b.Find(id) == nil {
			t.Fatalf("order names unknown combatant %q", id)
		}
		b.Order = append(b.Order, game.InitiativeEntry{CombatantID: id, Roll: 20 - i})
	}
	if err := Validate(b); err != nil {
		t.Fatalf("fixture invalid: %v", err)
	}
	return b
}

func scripted(values ...int) *Engine { return New(dice.Script(values...)) }

func scriptedRoller(values ...int) dice.Roller { return dice.Script(values...) }

func lastLines(b *game.Battle, n int) []string {
	if n > len(b.Log) {
		n = len(b.Log)
	}
	return b.Log[len(b.Log)-n:]
}

func expectLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines %q, got %d lines %q", len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
