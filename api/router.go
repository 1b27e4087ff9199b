// Package api wires the gin engine: middleware, the explicitly served
// endpoints (ping, health, metrics), and the catch-all dispatcher.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/adamivangrgic/subsonic-deezer-proxy/api/handler"
	"github.com/adamivangrgic/subsonic-deezer-proxy/api/middleware"
	"github.com/adamivangrgic/subsonic-deezer-proxy/config"
	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the proxy's http.Handler. Every path not explicitly
// registered lands in the dispatcher, which classifies it into one of the
// five handling modes.
func NewRouter(cfg config.Config, h *handler.Handler) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, subsonic.Failure(subsonic.ErrorGeneric, "internal error"))
		}),
		middleware.RequestID(),
		corsMiddleware(cfg),
	)

	// Liveness — answered by the proxy itself, never forwarded.
	r.GET("/rest/ping", h.Ping)
	r.GET("/rest/ping.view", h.Ping)

	// Operational endpoints outside the Subsonic path space.
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(h.Dispatch)
	return r
}

// corsMiddleware allows configured origins to make credentialed requests;
// unknown origins get a wildcard without credentials so public resources
// (covers, streams) still work from web players.
func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		allowed[strings.ToLower(o)] = true
	}

	return cors.New(cors.Config{
		AllowOriginWithContextFunc: func(c *gin.Context, origin string) bool {
			if !allowed[strings.ToLower(origin)] {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Writer.Header().Del("Access-Control-Allow-Credentials")
			}
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Authorization", "User-Agent", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
