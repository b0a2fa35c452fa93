package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/clash-of-gods/internal/constants"
	"github.com/ericogr/clash-of-gods/internal/logging"
)

// NewRouter wires every route under the API prefix plus the health probe.
func NewRouter(h *BattleHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteCharacters, h.ListCharacters)
		apiRoutes.GET(constants.RouteCharacterByID, h.GetCharacter)

		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, h.ListBattles)
		apiRoutes.GET(constants.RouteBattleByKey, h.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, h.SubmitAction)
		apiRoutes.POST(constants.RouteBattlePass, h.PassTurn)
		apiRoutes.POST(constants.RouteBattleHazard, h.ToggleHazard)

		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, h.Version)
	}
	return router
}

// RequestLogger logs one line per request through the shared logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logging.Fields{
			constants.LogFieldPath: c.FullPath(),
			"method":               c.Request.Method,
			"status":               c.Writer.Status(),
			"latency_ms":           time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			logging.Error("request failed", c.Errors.Last(), fields)
			return
		}
		logging.Debug("request", fields)
	}
}

// Health reports that the process is serving.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
