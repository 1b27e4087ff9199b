package backend

import (
	"fmt"
	"strconv"

	"github.com/adamivangrgic/subsonic-deezer-proxy/ids"
	"github.com/adamivangrgic/subsonic-deezer-proxy/subsonic"
)

// Preview tracks are all 320kbps mp3; the true file size of a preview is
// unknown, so a fixed size keeps clients that insist on one happy.
const (
	previewSize    = 1024 * 1024
	previewBitRate = 320
	previewMIME    = "audio/mpeg"
	previewSuffix  = "mp3"
)

// placeholderTime fills display timestamps the protocol requires but Deezer
// does not supply. Deterministic so cached and fresh records are identical.
const placeholderTime = "2023-01-01T00:00:00.000Z"

// TranslateTrack maps one Deezer track to the song record shape Navidrome
// returns. Total: every required field is populated for any well-formed
// track, with missing optional upstream fields falling back to defaults.
func TranslateTrack(t Track) subsonic.SongRecord {
	trackID := strconv.FormatInt(t.ID, 10)
	albumID := strconv.FormatInt(t.Album.ID, 10)
	artistID := strconv.FormatInt(t.Artist.ID, 10)

	title := t.Title
	if t.TitleShort != "" {
		title = t.TitleShort
	}

	position := t.TrackPosition
	if position <= 0 {
		position = 1
	}

	year := 0
	if len(t.Album.ReleaseDate) >= 4 {
		year, _ = strconv.Atoi(t.Album.ReleaseDate[:4])
	}

	return subsonic.SongRecord{
		ID:                    ids.Track(trackID),
		Parent:                ids.Album(albumID),
		IsDir:                 false,
		Title:                 title,
		Album:                 t.Album.Title,
		Artist:                t.Artist.Name + " - preview",
		Track:                 position,
		Year:                  year,
		Genre:                 "Deezer",
		CoverArt:              ids.Cover(albumID),
		Size:                  previewSize,
		ContentType:           previewMIME,
		Suffix:                previewSuffix,
		TranscodedContentType: previewMIME,
		TranscodedSuffix:      previewSuffix,
		Duration:              t.Duration,
		BitRate:               previewBitRate,
		Path:                  fmt.Sprintf("Deezer/%s/%s/%s.mp3", t.Artist.Name, t.Album.Title, title),
		AlbumID:               ids.Cover(albumID),
		ArtistID:              "ar-" + artistID,
		Type:                  "music",
		IsVideo:               false,
		Created:               placeholderTime,
		Starred:               placeholderTime,
		Played:                placeholderTime,
		PlayCount:             0,
		DiscNumber:            1,
		UserRating:            0,
		BPM:                   0,
		Comment:               "",
		SortName:              "",
		MusicBrainzID:         "",
		Genres:                []string{},
	}
}
