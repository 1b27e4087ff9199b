// Package handler implements the proxy's dispatch modes: search merging,
// preview streaming, cover art, favorite-triggered downloads, and verbatim
// passthrough to the Subsonic server.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/adamivangrgic/subsonic-deezer-proxy/backend"
	"github.com/adamivangrgic/subsonic-deezer-proxy/cache"
	"github.com/adamivangrgic/subsonic-deezer-proxy/config"
)

// Handler holds the proxy's backend clients and cache. One instance serves
// all requests; every field is safe for concurrent use.
type Handler struct {
	cfg       config.Config
	navidrome *backend.Navidrome
	deezer    *backend.Deezer
	deemix    *backend.Deemix
	cache     *cache.Store
}

func New(cfg config.Config, navidrome *backend.Navidrome, deezer *backend.Deezer, deemix *backend.Deemix, store *cache.Store) *Handler {
	return &Handler{
		cfg:       cfg,
		navidrome: navidrome,
		deezer:    deezer,
		deemix:    deemix,
		cache:     store,
	}
}

// relayBody copies src to w in chunks, flushing after every write so media
// reaches the client as it arrives. Stops pulling from src as soon as the
// client write fails (disconnect).
func relayBody(w http.ResponseWriter, src io.Reader) error {
	flusher, canFlush := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			if canFlush {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
