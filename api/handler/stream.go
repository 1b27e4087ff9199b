package handler

import (
	"log/slog"
	"net/http"

	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-gonic/gin"
)

// Stream relays the 30-second Deezer preview for trackID. The track record
// is fetched first because preview URLs are time-limited and must be
// resolved per request; caching headers are suppressed for the same reason.
func (h *Handler) Stream(c *gin.Context, trackID string) error {
	ctx := c.Request.Context()

	track, err := h.deezer.Track(ctx, trackID)
	if err != nil {
		slog.Warn("resolving deezer track for stream failed", "track", trackID, "error", err)
		c.JSON(http.StatusNotFound, subsonic.Failure(subsonic.ErrorDataNotFound, "Track not found"))
		return nil
	}
	if track.Preview == "" {
		c.JSON(http.StatusInternalServerError, subsonic.Failure(subsonic.ErrorGeneric, "No preview available"))
		return nil
	}

	body, _, err := h.deezer.Open(ctx, track.Preview)
	if err != nil {
		slog.Warn("opening deezer preview failed", "track", trackID, "error", err)
		c.JSON(http.StatusInternalServerError, subsonic.Failure(subsonic.ErrorGeneric, "Streaming failed"))
		return nil
	}
	defer func() { _ = body.Close() }()

	header := c.Writer.Header()
	header.Set("Content-Type", "audio/mpeg")
	header.Set("Accept-Ranges", "bytes")
	header.Set("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	if err := relayBody(c.Writer, body); err != nil {
		// Client disconnect or upstream drop mid-stream; headers are out,
		// so just log and release the upstream connection.
		slog.Debug("preview stream ended early", "track", trackID, "error", err)
	}
	return nil
}
