package handler

import (
	"github.com/gin-gonic/gin"
)

// Passthrough forwards the request verbatim to Navidrome. Everything the
// proxy does not recognise as its own lands here, so Navidrome's behavior
// is the floor for anything not enriched.
func (h *Handler) Passthrough(c *gin.Context) error {
	return h.navidrome.Forward(c.Writer, c.Request)
}
