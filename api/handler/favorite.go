package handler

import (
	"log/slog"
	"net/http"

	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-gonic/gin"
)

// Favorite translates a star/rate action on a Deezer preview track into a
// deemix download-queue request. The caller always gets a success envelope:
// a failed background download must never surface as a failed favorite
// toggle in the client UI, so queue errors are logged and swallowed.
func (h *Handler) Favorite(c *gin.Context, trackID string) {
	if err := h.deemix.QueueTrack(c.Request.Context(), trackID); err != nil {
		slog.Warn("queueing deezer download failed", "track", trackID, "error", err)
	} else {
		slog.Info("queued deezer track for download", "track", trackID)
	}
	c.JSON(http.StatusOK, subsonic.OK())
}
