package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/roster"
	"github.com/ericogr/clash-of-gods/internal/service"
)

// statusFor maps domain errors onto HTTP status codes and the public
// message shown to clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, roster.ErrUnknownCharacter),
		errors.Is(err, roster.ErrDuplicateCharacter),
		errors.Is(err, engine.ErrTeamSize),
		errors.Is(err, engine.ErrDuplicateCombatant),
		errors.Is(err, engine.ErrMalformedCombatant):
		return http.StatusBadRequest, constants.ErrInvalidTeams
	case errors.Is(err, engine.ErrUnknownHazard),
		errors.Is(err, engine.ErrUnknownCombatant),
		errors.Is(err, engine.ErrUnknownAbility),
		errors.Is(err, engine.ErrInvalidTarget):
		return http.StatusBadRequest, constants.ErrInvalidRequest
	case errors.Is(err, engine.ErrBattleOver):
		return http.StatusConflict, constants.ErrBattleAlreadyOver
	case errors.Is(err, engine.ErrBattleNotActive):
		return http.StatusConflict, constants.ErrBattleNotInCombat
	case errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrCombatantDefeated):
		return http.StatusConflict, constants.ErrNotCombatantsTurn
	case errors.Is(err, engine.ErrInvariant),
		errors.Is(err, engine.ErrPhaseTransition),
		errors.Is(err, engine.ErrInitiativeStalled):
		return http.StatusInternalServerError, constants.ErrInternalBattleViolation
	default:
		return http.StatusInternalServerError, constants.ErrFailedUpdateBattle
	}
}

// abortWith writes the mapped error. Server errors are attached to the
// context so the request logger records them.
func abortWith(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(code, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{constants.JSONKeyError: msg, constants.JSONKeyDetails: err.Error()})
}

// parseLimit reads ?limit=N, defaulting when absent and capping at the
// maximum page size.
func parseLimit(c *gin.Context) (int, bool) {
	s := c.Query(constants.QueryLimit)
	if s == "" {
		return constants.DefaultListLimit, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, constants.MaxListLimit), true
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients consistently
// receive snake_case timestamps.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range map[string]string{"ID": "id", "CreatedAt": "created_at", "UpdatedAt": "updated_at", "DeletedAt": "deleted_at"} {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals v into JSON, decodes it back into
// generic values and normalizes the gorm.Model keys.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}
