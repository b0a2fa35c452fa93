package engine

import (
	"sort"

	"github.com/ericogr/clash-of-gods/internal/game"
)

// advanceTurn is the single exit of every completed turn.
func (e *Engine) advanceTurn(bc *battleContext) error {
	bc.b.TurnIndex++
	if bc.b.TurnIndex < len(bc.b.Order) {
		return nil
	}
	return e.endRound(bc)
}

// endRound applies hazards, then status ticks, then either ends the match
// or opens the next round with fresh initiative.
func (e *Engine) endRound(bc *battleContext) error {
	b := bc.b
	living := b.Living()
	for _, name := range activeHazards(b.Hazards) {
		h, ok := e.hazards[name]
		if !ok {
			continue
		}
		h.Apply(bc, living)
	}
	defeatFallen(bc, living)

	for _, c := range b.Living() {
		bc.add(TickStatuses(c)...)
		if c.Defeated() {
			bc.Defeat(c)
		}
	}

	if over, err := e.checkWin(bc); over || err != nil {
		return err
	}

	order, err := RollInitiative(b.Living(), bc.rng)
	if err != nil {
		return err
	}
	b.Round++
	b.Order = order
	b.TurnIndex = 0
	bc.Logf("Round %d begins! Initiative set.", b.Round)
	return nil
}

func defeatFallen(bc *battleContext, cs []*game.Combatant) {
	for _, c := range cs {
		if c.Defeated() {
			bc.Defeat(c)
		}
	}
}

func activeHazards(flags map[string]bool) []string {
	out := make([]string, 0, len(flags))
	for name, on := range flags {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// checkWin ends the match when a team's summed HP is gone. Both teams
// falling together is a draw.
func (e *Engine) checkWin(bc *battleContext) (bool, error) {
	b := bc.b
	aDown := b.TeamHP(0) <= 0
	bDown := b.TeamHP(1) <= 0
	switch {
	case aDown && bDown:
		b.Winner = game.WinnerDraw
		bc.add("Both teams have fallen. Draw!")
	case aDown:
		b.Winner = game.WinnerTeamB
		bc.Logf("Team %s has fallen. GG!", game.TeamName(0))
	case bDown:
		b.Winner = game.WinnerTeamA
		bc.Logf("Team %s has fallen. GG!", game.TeamName(1))
	default:
		return false, nil
	}
	// A round-end wipe leaves the cursor past the survivors.
	if b.TurnIndex >= len(b.Order) {
		b.TurnIndex = 0
	}
	return true, transition(b, eventFinish)
}
