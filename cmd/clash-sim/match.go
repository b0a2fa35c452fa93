package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/roster"
)

// maxTurns stops matches that regeneration keeps alive forever.
const maxTurns = 5000

var errStalled = errors.New("match did not finish")

// runMatch plays one battle to the end with both sides picking a random
// ability against a random living enemy.
func runMatch(eng *engine.Engine, lib *roster.Library, teamA, teamB []string, storm bool, agent *rand.Rand) (*game.Battle, error) {
	a, b, err := lib.Draft(teamA, teamB)
	if err != nil {
		return nil, err
	}
	battle := game.NewBattle(a, b)
	if storm {
		if _, err := eng.ToggleHazard(battle, engine.HazardThunderstorm); err != nil {
			return nil, err
		}
	}
	if _, err := eng.Start(battle); err != nil {
		return nil, err
	}
	for turn := 0; battle.Phase == game.PhaseCombat; turn++ {
		if turn >= maxTurns {
			return battle, errStalled
		}
		act, ok := choose(battle, agent)
		if !ok {
			return battle, fmt.Errorf("no legal action in round %d", battle.Round)
		}
		if _, err := eng.Resolve(battle, act); err != nil {
			return battle, err
		}
	}
	return battle, nil
}

func choose(b *game.Battle, agent *rand.Rand) (engine.Action, bool) {
	cur := b.Current()
	if cur == nil || len(cur.Abilities) == 0 {
		return engine.Action{}, false
	}
	var enemies []string
	for _, c := range b.Teams[1-b.TeamOf(cur.ID)] {
		if !c.Defeated() {
			enemies = append(enemies, c.ID)
		}
	}
	if len(enemies) == 0 {
		return engine.Action{}, false
	}
	return engine.Action{
		AttackerID: cur.ID,
		AbilityID:  cur.Abilities[agent.Intn(len(cur.Abilities))].ID,
		TargetID:   enemies[agent.Intn(len(enemies))],
	}, true
}

type tally struct {
	Runs       int
	WinsA      int
	WinsB      int
	Draws      int
	Unfinished int
	SumRounds  int
	Errors     int
}

func (t *tally) add(b *game.Battle, err error) {
	t.Runs++
	switch {
	case errors.Is(err, errStalled):
		t.Unfinished++
		return
	case err != nil:
		t.Errors++
		return
	}
	t.SumRounds += b.Round
	switch b.Winner {
	case game.WinnerTeamA:
		t.WinsA++
	case game.WinnerTeamB:
		t.WinsB++
	case game.WinnerDraw:
		t.Draws++
	}
}

func (t *tally) summary(matchup string) map[string]any {
	ratio := func(n int) float64 {
		if t.Runs == 0 {
			return 0
		}
		return float64(n) / float64(t.Runs)
	}
	finished := t.WinsA + t.WinsB + t.Draws
	avg := 0.0
	if finished > 0 {
		avg = float64(t.SumRounds) / float64(finished)
	}
	return map[string]any{
		"matchup":    matchup,
		"runs":       t.Runs,
		"wins_a":     t.WinsA,
		"wins_b":     t.WinsB,
		"draws":      t.Draws,
		"unfinished": t.Unfinished,
		"errors":     t.Errors,
		"win_rate_a": ratio(t.WinsA),
		"win_rate_b": ratio(t.WinsB),
		"avg_rounds": avg,
	}
}
