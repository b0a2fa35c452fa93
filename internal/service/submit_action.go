package service

import (
	"time"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/logging"
)

// SubmitAction resolves an attack by the combatant holding the turn and
// persists the battle.
func SubmitAction(repo BattleRepo, eng *engine.Engine, key string, act engine.Action, turnTimeout time.Duration) (*game.BattleRecord, *engine.Report, error) {
	return mutate(repo, key, turnTimeout, true, func(b *game.Battle) (*engine.Report, error) {
		return eng.Resolve(b, act)
	})
}

// PassTurn ends the current turn without acting. An empty actorID passes
// for whoever holds the turn.
func PassTurn(repo BattleRepo, eng *engine.Engine, key, actorID string, turnTimeout time.Duration) (*game.BattleRecord, *engine.Report, error) {
	return mutate(repo, key, turnTimeout, true, func(b *game.Battle) (*engine.Report, error) {
		return eng.Pass(b, actorID)
	})
}

// ToggleHazard flips an arena hazard. The turn deadline is left alone.
func ToggleHazard(repo BattleRepo, eng *engine.Engine, key, name string) (*game.BattleRecord, *engine.Report, error) {
	return mutate(repo, key, 0, false, func(b *game.Battle) (*engine.Report, error) {
		return eng.ToggleHazard(b, name)
	})
}

// mutate loads the battle under its lock, applies fn and saves the result.
// A rejected transition leaves the stored battle untouched.
func mutate(repo BattleRepo, key string, turnTimeout time.Duration, endsTurn bool, fn func(b *game.Battle) (*engine.Report, error)) (*game.BattleRecord, *engine.Report, error) {
	unlock := lockBattle(key)
	defer unlock()

	rec, err := load(repo, key)
	if err != nil {
		return nil, nil, err
	}
	rep, err := fn(&rec.State)
	if err != nil {
		if rec.State.Phase == game.PhaseOver {
			releaseBattle(key)
		}
		return nil, nil, err
	}
	finish(repo, rec, turnTimeout, endsTurn)
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, rep, err
	}
	return rec, rep, nil
}

// finish refreshes the deadline and, once per battle, folds a final
// result into the leaderboard.
func finish(repo BattleRepo, rec *game.BattleRecord, turnTimeout time.Duration, endsTurn bool) {
	if rec.State.Phase != game.PhaseCombat {
		rec.TurnDeadline = time.Time{}
	} else if endsTurn {
		rec.TurnDeadline = deadline(turnTimeout)
	}
	if rec.State.Phase != game.PhaseOver {
		return
	}
	// No further writes are accepted once the match is over.
	releaseBattle(rec.Key)
	if rec.StatsCounted {
		return
	}
	if err := repo.UpdateStatsOnBattleEnd(rec); err != nil {
		logging.Error("failed to update character stats", err, logging.Fields{constants.LogFieldBattleKey: rec.Key})
		return
	}
	rec.StatsCounted = true
	logging.Info("battle finished", logging.Fields{constants.LogFieldBattleKey: rec.Key, constants.LogFieldWinner: rec.State.Winner, constants.LogFieldRound: rec.State.Round})
}
