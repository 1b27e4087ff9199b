package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adamivangrgic/subsonic-deezer-proxy/ids"
	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-gonic/gin"
)

// Mode is the handling mode a request is classified into. Exactly one mode
// matches any request; passthrough is the catch-all.
type Mode string

const (
	ModeStream      Mode = "stream"
	ModeSearch      Mode = "search"
	ModeCover       Mode = "cover"
	ModeFavorite    Mode = "favorite"
	ModePassthrough Mode = "passthrough"
)

// streamPaths, searchPath and favoritePaths follow Subsonic path
// conventions; clients may append ".view", so matching is prefix-based.
var (
	streamPaths   = []string{"/rest/stream", "/rest/download"}
	favoritePaths = []string{"/rest/setRating", "/rest/star", "/rest/unstar"}
)

const (
	searchPath = "/rest/search"
	coverPath  = "/rest/getCoverArt"
)

// Classify selects the handling mode for a request from its path and query
// parameters. IDs that are not in a namespace the proxy owns fall through
// to passthrough untouched.
func Classify(path string, query url.Values) Mode {
	id := query.Get("id")

	if hasAnyPrefix(path, streamPaths) {
		if _, ok := ids.TrackID(id); ok {
			return ModeStream
		}
	}
	if strings.HasPrefix(path, searchPath) && query.Get("query") != "" {
		return ModeSearch
	}
	if strings.HasPrefix(path, coverPath) {
		if _, ok := ids.CoverAlbumID(id); ok {
			return ModeCover
		}
	}
	if hasAnyPrefix(path, favoritePaths) {
		if _, ok := ids.TrackID(id); ok {
			return ModeFavorite
		}
	}
	return ModePassthrough
}

// Dispatch classifies the request, runs the matching mode handler, and
// converts any handler error into a protocol-shaped failure. Elapsed time
// per mode is recorded for diagnostics; it never affects routing.
func (h *Handler) Dispatch(c *gin.Context) {
	start := time.Now()
	query := c.Request.URL.Query()
	mode := Classify(c.Request.URL.Path, query)

	var err error
	switch mode {
	case ModeStream:
		trackID, _ := ids.TrackID(query.Get("id"))
		err = h.Stream(c, trackID)
	case ModeSearch:
		err = h.Search(c, query.Get("query"))
	case ModeCover:
		albumID, _ := ids.CoverAlbumID(query.Get("id"))
		err = h.Cover(c, albumID)
	case ModeFavorite:
		trackID, _ := ids.TrackID(query.Get("id"))
		h.Favorite(c, trackID)
	default:
		err = h.Passthrough(c)
	}

	dispatchDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Error("dispatch failed",
			"mode", mode,
			"path", c.Request.URL.Path,
			"error", err,
		)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, subsonic.Failure(subsonic.ErrorGeneric, "internal error"))
		}
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
