// Package subsonic holds the protocol envelope and record types the proxy
// emits, plus the search-response merge that injects Deezer tracks into a
// Navidrome result.
package subsonic

// Version is the Subsonic API version the proxy reports in every envelope.
const Version = "1.16.1"

// ProxyType and ProxyVersion identify this service in the ping envelope.
const (
	ProxyType    = "subsonic-deezer-proxy"
	ProxyVersion = "0.2.0"
)

// Protocol error codes used by the proxy.
const (
	ErrorGeneric      = 0
	ErrorDataNotFound = 70
)

// Envelope is the outer protocol document wrapping every JSON response.
type Envelope struct {
	Response Response `json:"subsonic-response"`
}

// Response is the payload of an envelope. Optional sections are omitted
// when empty so passthrough-shaped responses stay minimal.
type Response struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Type          string `json:"type,omitempty"`
	ServerVersion string `json:"serverVersion,omitempty"`
	Error         *Error `json:"error,omitempty"`
}

// Error is the protocol error element carried by failed envelopes.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OK returns the fixed protocol-success envelope.
func OK() Envelope {
	return Envelope{Response: Response{Status: "ok", Version: Version}}
}

// Ping returns the liveness envelope carrying the proxy's identity.
func Ping() Envelope {
	e := OK()
	e.Response.Type = ProxyType
	e.Response.ServerVersion = ProxyVersion
	return e
}

// Failure returns a protocol-shaped failure envelope.
func Failure(code int, message string) Envelope {
	return Envelope{Response: Response{
		Status:  "failed",
		Version: Version,
		Error:   &Error{Code: code, Message: message},
	}}
}

// SongRecord is the canonical song unit inside search results. Every field
// Subsonic clients expect is present and marshalled unconditionally —
// partial records break picky clients, so nothing here is omitempty.
type SongRecord struct {
	ID                    string   `json:"id"`
	Parent                string   `json:"parent"`
	IsDir                 bool     `json:"isDir"`
	Title                 string   `json:"title"`
	Album                 string   `json:"album"`
	Artist                string   `json:"artist"`
	Track                 int      `json:"track"`
	Year                  int      `json:"year"`
	Genre                 string   `json:"genre"`
	CoverArt              string   `json:"coverArt"`
	Size                  int64    `json:"size"`
	ContentType           string   `json:"contentType"`
	Suffix                string   `json:"suffix"`
	TranscodedContentType string   `json:"transcodedContentType"`
	TranscodedSuffix      string   `json:"transcodedSuffix"`
	Duration              int      `json:"duration"`
	BitRate               int      `json:"bitRate"`
	Path                  string   `json:"path"`
	AlbumID               string   `json:"albumId"`
	ArtistID              string   `json:"artistId"`
	Type                  string   `json:"type"`
	IsVideo               bool     `json:"isVideo"`
	Created               string   `json:"created"`
	Starred               string   `json:"starred"`
	Played                string   `json:"played"`
	PlayCount             int      `json:"playCount"`
	DiscNumber            int      `json:"discNumber"`
	UserRating            int      `json:"userRating"`
	BPM                   int      `json:"bpm"`
	Comment               string   `json:"comment"`
	SortName              string   `json:"sortName"`
	MusicBrainzID         string   `json:"musicBrainzId"`
	Genres                []string `json:"genres"`
}
