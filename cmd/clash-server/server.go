package main

import (
	"context"
	"errors"
	"time"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/logging"
	"github.com/ericogr/clash-of-gods/internal/service"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

const scanInterval = time.Second

// startTimeoutScanner auto-passes turns whose deadline has passed until
// ctx is cancelled. Battles are handled one at a time to keep SQLite
// writes serialized.
func startTimeoutScanner(ctx context.Context, repo storage.Repository, eng *engine.Engine, turnTimeout time.Duration) {
	if turnTimeout <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(scanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				scanOnce(repo, eng, turnTimeout, now)
			}
		}
	}()
}

func scanOnce(repo storage.Repository, eng *engine.Engine, turnTimeout time.Duration, now time.Time) {
	battles, err := repo.FindTimedOutBattles(now)
	if err != nil {
		logging.Error("timeout scanner failed", err, nil)
		return
	}
	for _, b := range battles {
		_, err := service.HandleTimedOutBattle(repo, eng, b.Key, turnTimeout)
		// A player may have acted between the scan and the lock.
		if err != nil && !errors.Is(err, service.ErrTurnNotExpired) {
			logging.Error("failed to expire turn", err, logging.Fields{constants.LogFieldBattleKey: b.Key})
		}
	}
}
