package engine

import (
	"fmt"

	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/game"
)

// --- Battle context and helpers ----------------------------------------

// battleContext carries one transaction: the working copy of the battle,
// the dice and the log lines produced so far.
type battleContext struct {
	b      *game.Battle
	rng    dice.Roller
	lines  []string
	fallen map[string]bool
}

func newBattleContext(b *game.Battle, rng dice.Roller) *battleContext {
	return &battleContext{b: b, rng: rng, lines: make([]string, 0, 8), fallen: map[string]bool{}}
}

func (bc *battleContext) add(msgs ...string) { bc.lines = append(bc.lines, msgs...) }

// Logf appends a formatted log line.
func (bc *battleContext) Logf(format string, args ...any) { bc.add(fmt.Sprintf(format, args...)) }

// Defeat prunes a combatant that just reached 0 HP from the live order
// and records it once.
func (bc *battleContext) Defeat(c *game.Combatant) {
	if bc.fallen[c.ID] {
		return
	}
	bc.fallen[c.ID] = true
	pruneOrder(bc.b, c.ID)
	bc.Logf("%s is defeated!", c.Name)
}

func (bc *battleContext) report() *Report {
	return &Report{
		Lines:  bc.lines,
		Round:  bc.b.Round,
		Over:   bc.b.Phase == game.PhaseOver,
		Winner: bc.b.Winner,
	}
}

// Arena is the narrow view of a battle in progress given to special rules
// and hazards.
type Arena interface {
	Logf(format string, args ...any)
	Defeat(c *game.Combatant)
}

// Report lists what one engine call did.
type Report struct {
	Lines  []string `json:"lines"`
	Round  int      `json:"round"`
	Over   bool     `json:"over"`
	Winner string   `json:"winner,omitempty"`
}
