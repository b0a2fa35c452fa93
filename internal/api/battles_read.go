package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/dedupe"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/service"
	"github.com/ericogr/clash-of-gods/internal/storage"
)

// ListCharacters returns the whole character library in load order.
func (h *BattleHandler) ListCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, h.lib.List())
}

// GetCharacter returns one library entry by id or display name.
func (h *BattleHandler) GetCharacter(c *gin.Context) {
	ch, ok := h.lib.Get(strings.TrimSpace(c.Param(constants.ParamCharacterID)))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterNotFound})
		return
	}
	c.JSON(http.StatusOK, ch)
}

type battleSummary struct {
	Key          string     `json:"key"`
	Phase        game.Phase `json:"phase"`
	Round        int        `json:"round"`
	Winner       string     `json:"winner"`
	CreatedAt    time.Time  `json:"created_at"`
	TurnDeadline time.Time  `json:"turn_deadline"`
}

// ListBattles returns the newest battles without their full state.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidLimit})
		return
	}
	recs, err := h.repo.ListRecentBattles(limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out := make([]battleSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, battleSummary{
			Key:          r.Key,
			Phase:        r.Phase,
			Round:        r.Round,
			Winner:       r.Winner,
			CreatedAt:    r.CreatedAt,
			TurnDeadline: r.TurnDeadline,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns the full record of one battle. Concurrent polls for
// the same key share a single repository read.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	key := strings.TrimSpace(c.Param(constants.ParamBattleKey))
	v, err, _ := dedupe.BattleGroup.Do("battle:"+key, func() (interface{}, error) {
		rec, err := h.repo.GetBattleByKey(key)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && rec == nil) {
			return nil, service.ErrBattleNotFound
		}
		if err != nil {
			return nil, err
		}
		return MarshalIntoSnakeTimestamps(rec)
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListLeaderboard returns character stats ordered by wins.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidLimit})
		return
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (interface{}, error) {
		stats, err := h.repo.GetTopCharacters(limit)
		if err != nil {
			return nil, err
		}
		return MarshalIntoSnakeTimestamps(stats)
	})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, v)
}
