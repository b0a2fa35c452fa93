package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/logging"
	"github.com/ericogr/clash-of-gods/internal/roster"
)

// StartRequest names the characters for each side plus hazards switched
// on before round one.
type StartRequest struct {
	TeamA   []string `json:"team_a"`
	TeamB   []string `json:"team_b"`
	Hazards []string `json:"hazards"`
}

// StartBattle drafts both teams from the library, starts combat and
// persists the new battle under a fresh uuid key.
func StartBattle(repo BattleCreator, eng *engine.Engine, lib *roster.Library, req StartRequest, turnTimeout time.Duration) (*game.BattleRecord, error) {
	teamA, teamB, err := lib.Draft(req.TeamA, req.TeamB)
	if err != nil {
		return nil, err
	}
	b := game.NewBattle(teamA, teamB)
	// Listed hazards are switched on; repeating a name must not toggle it back off.
	for _, h := range req.Hazards {
		h = strings.TrimSpace(h)
		if b.Hazards[h] {
			continue
		}
		if _, err := eng.ToggleHazard(b, h); err != nil {
			return nil, err
		}
	}
	if _, err := eng.Start(b); err != nil {
		return nil, err
	}

	rec := &game.BattleRecord{
		Key:          uuid.NewString(),
		State:        *b,
		TurnDeadline: deadline(turnTimeout),
	}
	if err := repo.CreateBattle(rec); err != nil {
		return nil, err
	}
	logging.Info("battle started", logging.Fields{constants.LogFieldBattleKey: rec.Key, "team_a": req.TeamA, "team_b": req.TeamB})
	return rec, nil
}
