package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adamivangrgic/subsonic-deezer-proxy/cache"
	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// maxCoverBytes bounds how much image data one cover fetch will buffer.
const maxCoverBytes = 8 << 20

// Cover serves album cover art from Deezer, caching the raw bytes. Covers
// are immutable per album, so clients may cache them for a day. Any failure
// is a protocol-shaped not-found rather than a relayed upstream error.
func (h *Handler) Cover(c *gin.Context, albumID string) error {
	key := cache.CoverKey(albumID)
	if img, ok := h.cache.Get(key); ok {
		h.writeCover(c, img, "")
		return nil
	}

	ctx := c.Request.Context()

	album, err := h.deezer.Album(ctx, albumID)
	if err != nil {
		slog.Warn("deezer album lookup failed", "album", albumID, "error", err)
		h.coverNotFound(c)
		return nil
	}
	coverURL := album.CoverURL()
	if coverURL == "" {
		h.coverNotFound(c)
		return nil
	}

	body, contentType, err := h.deezer.Open(ctx, coverURL)
	if err != nil {
		slog.Warn("fetching deezer cover failed", "album", albumID, "error", err)
		h.coverNotFound(c)
		return nil
	}
	defer func() { _ = body.Close() }()

	img, err := io.ReadAll(io.LimitReader(body, maxCoverBytes))
	if err != nil {
		slog.Warn("reading deezer cover failed", "album", albumID, "error", err)
		h.coverNotFound(c)
		return nil
	}

	h.cache.Set(key, img)
	h.writeCover(c, img, contentType)
	return nil
}

// writeCover serves image bytes with a sniffed content type when the
// upstream one is missing or not an image (cache hits carry no type at all).
func (h *Handler) writeCover(c *gin.Context, img []byte, contentType string) {
	if !strings.HasPrefix(contentType, "image/") {
		contentType = mimetype.Detect(img).String()
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, img)
}

func (h *Handler) coverNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, subsonic.Failure(subsonic.ErrorDataNotFound, "Cover art not found"))
}
