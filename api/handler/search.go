package handler

import (
	"log/slog"
	"net/http"

	"github.com/adamivangrgic/subsonic-deezer-proxy/backend"
	"github.com/adamivangrgic/subsonic-deezer-proxy/cache"
	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json"

// Search runs the merge pipeline: the Navidrome search and the Deezer
// search run concurrently, translated Deezer tracks are appended after the
// Navidrome songs, and the merged envelope is cached under the query.
//
// The Deezer leg is pure enrichment — on any failure it degrades to zero
// appended songs and the Navidrome response is relayed unmodified. A
// Navidrome failure propagates, since there is no fallback for the
// resource of record.
func (h *Handler) Search(c *gin.Context, query string) error {
	key := cache.SearchKey(query)
	if cached, ok := h.cache.Get(key); ok {
		c.Data(http.StatusOK, jsonContentType, cached)
		return nil
	}

	ctx := c.Request.Context()

	// Deezer leg in the background while Navidrome runs. The channel is
	// buffered so an abandoned leg never leaks its goroutine.
	deezerCh := make(chan []subsonic.SongRecord, 1)
	go func() {
		tracks, err := h.deezer.Search(ctx, query)
		if err != nil {
			slog.Warn("deezer search failed, merging nothing", "query", query, "error", err)
			deezerCh <- nil
			return
		}
		songs := make([]subsonic.SongRecord, 0, len(tracks))
		for _, t := range tracks {
			songs = append(songs, backend.TranslateTrack(t))
		}
		deezerCh <- songs
	}()

	body, status, contentType, err := h.navidrome.ForwardBuffered(ctx, c.Request)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = jsonContentType
	}
	if status != http.StatusOK {
		c.Data(status, contentType, body)
		return nil
	}

	songs := <-deezerCh
	if len(songs) == 0 {
		c.Data(status, contentType, body)
		return nil
	}

	merged, ok, err := subsonic.MergeSearch(body, songs)
	if err != nil {
		// Merge itself is enrichment too: fall back to the original.
		slog.Warn("search merge failed, relaying original", "query", query, "error", err)
		c.Data(status, contentType, body)
		return nil
	}
	if !ok {
		// Not a successful subsonic search document — relay untouched.
		c.Data(status, contentType, body)
		return nil
	}

	h.cache.Set(key, merged)
	c.Data(http.StatusOK, jsonContentType, merged)
	return nil
}
