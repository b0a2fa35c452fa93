package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrTurnNotExpired = errors.New("turn deadline has not passed")
)

// BattleRepo is the slice of storage the mutation paths need.
type BattleRepo interface {
	GetBattleByKey(key string) (*game.BattleRecord, error)
	UpdateBattle(r *game.BattleRecord) error
	UpdateStatsOnBattleEnd(r *game.BattleRecord) error
}

// BattleCreator persists new battles.
type BattleCreator interface {
	CreateBattle(r *game.BattleRecord) error
}

// now is replaced in tests.
var now = time.Now

// battleLocks serializes mutations per battle key. Each battle is owned by
// one writer at a time; reads go through the repository directly. Entries
// are removed when a battle ends.
var battleLocks sync.Map

func lockBattle(key string) func() {
	v, _ := battleLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// releaseBattle drops the lock entry of a finished battle. Holders of the
// old mutex still unlock it normally.
func releaseBattle(key string) { battleLocks.Delete(key) }

func load(repo BattleRepo, key string) (*game.BattleRecord, error) {
	rec, err := repo.GetBattleByKey(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	if rec == nil {
		return nil, ErrBattleNotFound
	}
	return rec, nil
}

// deadline returns the next turn deadline, or the zero time when turns
// never expire.
func deadline(turnTimeout time.Duration) time.Time {
	if turnTimeout <= 0 {
		return time.Time{}
	}
	return now().Add(turnTimeout)
}
