package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/service"
)

type actionRequest struct {
	AttackerID string `json:"attacker_id" binding:"required"`
	AbilityID  string `json:"ability_id" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
}

type passRequest struct {
	CombatantID string `json:"combatant_id"`
}

type hazardRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBattle drafts two teams and starts a new battle.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req service.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rec, err := service.StartBattle(h.repo, h.eng, h.lib, req, h.turnTimeout)
	if err != nil {
		abortWith(c, err)
		return
	}
	h.respond(c, http.StatusCreated, rec, nil)
}

// SubmitAction resolves the current combatant's ability use.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	act := engine.Action{AttackerID: req.AttackerID, AbilityID: req.AbilityID, TargetID: req.TargetID}
	rec, rep, err := service.SubmitAction(h.repo, h.eng, battleKey(c), act, h.turnTimeout)
	if err != nil {
		abortWith(c, err)
		return
	}
	h.respond(c, http.StatusOK, rec, rep)
}

// PassTurn skips the current turn. An empty body passes for whoever holds
// the turn.
func (h *BattleHandler) PassTurn(c *gin.Context) {
	var req passRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	rec, rep, err := service.PassTurn(h.repo, h.eng, battleKey(c), req.CombatantID, h.turnTimeout)
	if err != nil {
		abortWith(c, err)
		return
	}
	h.respond(c, http.StatusOK, rec, rep)
}

// ToggleHazard flips an arena hazard. It takes effect at the next round end.
func (h *BattleHandler) ToggleHazard(c *gin.Context) {
	var req hazardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	rec, rep, err := service.ToggleHazard(h.repo, h.eng, battleKey(c), strings.TrimSpace(req.Name))
	if err != nil {
		abortWith(c, err)
		return
	}
	h.respond(c, http.StatusOK, rec, rep)
}

func battleKey(c *gin.Context) string {
	return strings.TrimSpace(c.Param(constants.ParamBattleKey))
}

// respond writes {key, battle, report}. The report is omitted for calls
// that did not run an engine step.
func (h *BattleHandler) respond(c *gin.Context, code int, rec *game.BattleRecord, rep *engine.Report) {
	out, err := MarshalIntoSnakeTimestamps(rec)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	body := gin.H{"key": rec.Key, "battle": out}
	if rep != nil {
		body["report"] = rep
	}
	c.JSON(code, body)
}
