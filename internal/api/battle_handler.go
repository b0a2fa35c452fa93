package api

import (
	"time"

	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/roster"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo        storage.Repository
	eng         *engine.Engine
	lib         *roster.Library
	turnTimeout time.Duration
}

// NewBattleHandler creates a BattleHandler over the repository, engine and
// character library. turnTimeout bounds each turn; zero disables it.
func NewBattleHandler(repo storage.Repository, eng *engine.Engine, lib *roster.Library, turnTimeout time.Duration) *BattleHandler {
	return &BattleHandler{repo: repo, eng: eng, lib: lib, turnTimeout: turnTimeout}
}
