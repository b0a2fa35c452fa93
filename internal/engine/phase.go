package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/ericogr/clash-of-gods/internal/game"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
)

func newPhaseMachine(current game.Phase) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: eventStart, Src: []string{string(game.PhaseDraft)}, Dst: string(game.PhaseCombat)},
			{Name: eventFinish, Src: []string{string(game.PhaseCombat)}, Dst: string(game.PhaseOver)},
		},
		fsm.Callbacks{},
	)
}

// transition moves b to the phase reached by event, failing when the
// current phase does not allow it.
func transition(b *game.Battle, event string) error {
	m := newPhaseMachine(b.Phase)
	if err := m.Event(context.Background(), event); err != nil {
		return fmt.Errorf("%w: %s from %s: %v", ErrPhaseTransition, event, b.Phase, err)
	}
	b.Phase = game.Phase(m.Current())
	return nil
}
