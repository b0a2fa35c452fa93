package engine

import (
	"fmt"
	"sort"

	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/game"
)

// maxInitiativePasses bounds the tie re-roll loop. A fair d20 clears ties
// among eight combatants in a handful of passes.
const maxInitiativePasses = 1000

// RollInitiative gives every living combatant a d20 and re-rolls each
// group of equal values, only within that group, until all values are
// distinct. The result is sorted by roll, highest first.
//
// Draws happen in input order; re-rolls walk tied groups by ascending
// value and, inside a group, in input order.
func RollInitiative(living []*game.Combatant, r dice.Roller) ([]game.InitiativeEntry, error) {
	if len(living) > dice.Sides {
		return nil, fmt.Errorf("%w: %d combatants cannot hold distinct d20 rolls", ErrInitiativeStalled, len(living))
	}
	order := make([]game.InitiativeEntry, len(living))
	for i, c := range living {
		order[i] = game.InitiativeEntry{CombatantID: c.ID, Roll: r.D20()}
	}

	for pass := 0; ; pass++ {
		groups := make(map[int][]int, len(order))
		for i, e := range order {
			groups[e.Roll] = append(groups[e.Roll], i)
		}
		values := make([]int, 0, len(groups))
		for v, idx := range groups {
			if len(idx) > 1 {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			break
		}
		if pass >= maxInitiativePasses {
			return nil, fmt.Errorf("%w: ties remain after %d passes", ErrInitiativeStalled, pass)
		}
		sort.Ints(values)
		for _, v := range values {
			for _, i := range groups[v] {
				order[i].Roll = r.D20()
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].Roll > order[j].Roll })
	return order, nil
}

// formatOrder renders "Name d20(n), ..." for the opening log line.
func formatOrder(b *game.Battle) string {
	out := ""
	for i, e := range b.Order {
		if i > 0 {
			out += ", "
		}
		name := e.CombatantID
		if c := b.Find(e.CombatantID); c != nil {
			name = c.Name
		}
		out += fmt.Sprintf("%s d20(%d)", name, e.Roll)
	}
	return out
}
