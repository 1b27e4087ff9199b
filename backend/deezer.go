package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// searchPageSize caps how many catalog tracks one search fetches, bounding
// merge cost per query.
const searchPageSize = 250

// Artist is the artist reference embedded in Deezer track records.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AlbumRef is the album reference embedded in Deezer track records.
type AlbumRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Track is one Deezer search/track result.
type Track struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	TitleShort    string   `json:"title_short"`
	Duration      int      `json:"duration"`
	TrackPosition int      `json:"track_position"`
	Preview       string   `json:"preview"`
	Artist        Artist   `json:"artist"`
	Album         AlbumRef `json:"album"`
}

// Album is a full Deezer album record, fetched for cover art.
type Album struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	CoverXL  string `json:"cover_xl"`
	CoverBig string `json:"cover_big"`
}

// CoverURL returns the best available cover image URL, or "" when the album
// has none.
func (a Album) CoverURL() string {
	if a.CoverXL != "" {
		return a.CoverXL
	}
	return a.CoverBig
}

// Deezer is the catalog-provider client. All lookups are enrichment: callers
// degrade to empty results on error rather than failing the user request.
type Deezer struct {
	baseURL string
	json    *http.Client
	stream  *http.Client
}

func NewDeezer(baseURL string, metadataTimeout, streamTimeout time.Duration) *Deezer {
	return &Deezer{
		baseURL: strings.TrimRight(baseURL, "/"),
		json:    newJSONClient(metadataTimeout),
		stream:  newStreamClient(streamTimeout),
	}
}

// Search returns up to searchPageSize tracks matching query.
func (d *Deezer) Search(ctx context.Context, query string) ([]Track, error) {
	u := d.baseURL + "/search?" + url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(searchPageSize)},
	}.Encode()

	var out struct {
		Data []Track `json:"data"`
	}
	if err := d.getJSON(ctx, u, &out); err != nil {
		return nil, fmt.Errorf("deezer search %q: %w", query, err)
	}
	return out.Data, nil
}

// Album fetches one album record by its Deezer ID.
func (d *Deezer) Album(ctx context.Context, id string) (Album, error) {
	var out Album
	if err := d.getJSON(ctx, d.baseURL+"/album/"+url.PathEscape(id), &out); err != nil {
		return Album{}, fmt.Errorf("deezer album %s: %w", id, err)
	}
	return out, nil
}

// Track fetches one track record by its Deezer ID. Used to resolve the
// time-limited preview URL right before streaming.
func (d *Deezer) Track(ctx context.Context, id string) (Track, error) {
	var out Track
	if err := d.getJSON(ctx, d.baseURL+"/track/"+url.PathEscape(id), &out); err != nil {
		return Track{}, fmt.Errorf("deezer track %s: %w", id, err)
	}
	return out, nil
}

// Open issues a streaming GET against rawURL (a preview or cover image URL
// taken from a Deezer record) and returns the body for relaying. The caller
// must close it. Non-200 responses are drained and reported as an error.
func (d *Deezer) Open(ctx context.Context, rawURL string) (body io.ReadCloser, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building deezer stream request: %w", err)
	}
	resp, err := d.stream.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("deezer stream request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("deezer stream returned status %d", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (d *Deezer) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.json.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
