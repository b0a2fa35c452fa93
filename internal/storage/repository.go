package storage

import (
	"errors"
	"time"

	"github.com/ericogr/clash-of-gods/internal/game"
)

// ErrNotFound is returned when a battle key has no record.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	CreateBattle(r *game.BattleRecord) error
	GetBattleByKey(key string) (*game.BattleRecord, error)
	UpdateBattle(r *game.BattleRecord) error
	// ListRecentBattles returns the newest battles first.
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	// FindTimedOutBattles returns battles still in combat whose turn
	// deadline is set and at or before now.
	FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error)
	// UpdateStatsOnBattleEnd folds a finished battle into the leaderboard.
	// It is a no-op for battles already counted.
	UpdateStatsOnBattleEnd(r *game.BattleRecord) error
	// Leaderboard
	GetTopCharacters(limit int) ([]game.CharacterStats, error)
}
