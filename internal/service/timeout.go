package service

import (
	"time"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/logging"
)

// HandleTimedOutBattle auto-passes the combatant holding the turn once the
// turn deadline has gone by. Battles no longer in combat are skipped.
func HandleTimedOutBattle(repo BattleRepo, eng *engine.Engine, key string, turnTimeout time.Duration) (*engine.Report, error) {
	unlock := lockBattle(key)
	defer unlock()

	rec, err := load(repo, key)
	if err != nil {
		return nil, err
	}
	if rec.State.Phase != game.PhaseCombat {
		return nil, nil
	}
	if rec.TurnDeadline.IsZero() || rec.TurnDeadline.After(now()) {
		return nil, ErrTurnNotExpired
	}
	cur := rec.State.Current()
	rep, err := eng.Pass(&rec.State, "")
	if err != nil {
		return nil, err
	}
	if cur != nil {
		logging.Info("turn timed out; auto-passing", logging.Fields{constants.LogFieldBattleKey: key, constants.LogFieldCombatant: cur.ID})
	}
	finish(repo, rec, turnTimeout, true)
	if err := repo.UpdateBattle(rec); err != nil {
		return rep, err
	}
	return rep, nil
}
