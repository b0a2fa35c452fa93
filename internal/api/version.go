package api

import (
	"net/http"

	"github.com/ericogr/clash-of-gods/internal/version"
	"github.com/gin-gonic/gin"
)

// Version returns build metadata injected at build time together with the
// rules and hazards this server's engine was configured with.
func (h *BattleHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
		"rules":   h.eng.Rules(),
		"hazards": h.eng.Hazards(),
		"roster":  h.lib.Len(),
	})
}
