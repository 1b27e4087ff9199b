// Package ids handles the identifier namespaces the proxy routes on.
//
// Subsonic item IDs are overloaded to encode origin and type in one string:
//
//	"ext_{trackID}"       — a Deezer preview track injected by the proxy
//	"ext_album_{albumID}" — the virtual parent album of an injected track
//	"al-{albumID}"        — an album-scoped cover-art ID
//	"{digits}"            — a bare numeric album ID
//
// Anything else belongs to the Subsonic server and is passed through
// untouched. Parsing is total: every string maps to exactly one
// (origin, kind) pair or is rejected as not ours.
package ids

import (
	"strings"
)

const (
	trackPrefix = "ext_"
	albumPrefix = "ext_album_"
	coverPrefix = "al-"
)

// Track builds the proxy-scoped ID for a Deezer track.
func Track(deezerID string) string { return trackPrefix + deezerID }

// Album builds the proxy-scoped parent ID for a Deezer album.
func Album(deezerID string) string { return albumPrefix + deezerID }

// Cover builds the album-scoped cover-art ID emitted on injected songs.
func Cover(albumID string) string { return coverPrefix + albumID }

// TrackID returns the Deezer track ID encoded in id and whether id is a
// proxy-injected track at all. Album IDs share the "ext_" prefix but are
// never tracks.
func TrackID(id string) (string, bool) {
	if strings.HasPrefix(id, albumPrefix) {
		return "", false
	}
	raw, ok := strings.CutPrefix(id, trackPrefix)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

// IsExternal reports whether id was minted by the proxy (track or album).
func IsExternal(id string) bool {
	return strings.HasPrefix(id, trackPrefix)
}

// CoverAlbumID resolves a getCoverArt id parameter to the album it names.
// All three album namespaces are accepted: "ext_album_{n}" / "ext_{n}",
// "al-{n}", and a bare numeric ID. Returns false for anything that is not
// album-scoped, in which case the request is not ours.
func CoverAlbumID(id string) (string, bool) {
	if raw, ok := strings.CutPrefix(id, albumPrefix); ok && raw != "" {
		return raw, true
	}
	if raw, ok := strings.CutPrefix(id, trackPrefix); ok && raw != "" {
		return raw, true
	}
	if raw, ok := strings.CutPrefix(id, coverPrefix); ok && raw != "" {
		return raw, true
	}
	if id != "" && isDigits(id) {
		return id, true
	}
	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
