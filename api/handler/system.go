package handler

import (
	"net/http"

	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-gonic/gin"
)

// Ping handles /rest/ping and /rest/ping.view. Answered locally with the
// proxy's identity so liveness does not depend on Navidrome being up.
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, subsonic.Ping())
}

// Health is the unauthenticated probe for container orchestrators.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cache_entries": h.cache.Len()})
}
