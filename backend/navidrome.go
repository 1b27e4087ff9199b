package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// hopByHop are request/response headers owned by the transport, never
// relayed between the client and Navidrome.
var hopByHop = map[string]bool{
	"Host":              true,
	"Content-Length":    true,
	"Transfer-Encoding": true,
	"Connection":        true,
}

// Navidrome forwards requests verbatim to the Subsonic server of record.
// It is the availability floor: failures here propagate to the caller,
// unlike the enrichment backends.
type Navidrome struct {
	baseURL string
	json    *http.Client
	stream  *http.Client
}

func NewNavidrome(baseURL string, metadataTimeout, streamTimeout time.Duration) *Navidrome {
	return &Navidrome{
		baseURL: strings.TrimRight(baseURL, "/"),
		json:    newJSONClient(metadataTimeout),
		stream:  newStreamClient(streamTimeout),
	}
}

// Forward relays r to Navidrome and streams the response back to w without
// buffering. Method, query string and body pass through; hop-by-hop headers
// are dropped in both directions, plus Content-Encoding on the way back
// since the transfer is relayed identity-encoded.
func (n *Navidrome) Forward(w http.ResponseWriter, r *http.Request) error {
	req, err := n.newRequest(r.Context(), r)
	if err != nil {
		return err
	}
	req.Body = r.Body

	resp, err := n.stream.Do(req)
	if err != nil {
		return fmt.Errorf("navidrome request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	header := w.Header()
	for k, vals := range resp.Header {
		if hopByHop[k] || k == "Content-Encoding" {
			continue
		}
		for _, v := range vals {
			header.Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	// Flush-on-write so streamed media reaches the client as it arrives.
	flusher, canFlush := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		nr, readErr := resp.Body.Read(buf)
		if nr > 0 {
			if _, writeErr := w.Write(buf[:nr]); writeErr != nil {
				// Client went away — stop pulling from upstream.
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

// ForwardBuffered relays r to Navidrome and returns the full response body.
// Used by the search path, which needs the document in hand to merge into.
func (n *Navidrome) ForwardBuffered(ctx context.Context, r *http.Request) (body []byte, status int, contentType string, err error) {
	req, err := n.newRequest(ctx, r)
	if err != nil {
		return nil, 0, "", err
	}

	resp, err := n.json.Do(req)
	if err != nil {
		return nil, 0, "", fmt.Errorf("navidrome request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, "", fmt.Errorf("reading navidrome response: %w", err)
	}
	return body, resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

func (n *Navidrome) newRequest(ctx context.Context, r *http.Request) (*http.Request, error) {
	u := n.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building navidrome request: %w", err)
	}
	for k, vals := range r.Header {
		if hopByHop[k] || k == "Accept-Encoding" {
			continue
		}
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	// Identity encoding end to end: the response is relayed with its
	// Content-Encoding header stripped, so compressed bytes would corrupt.
	req.Header.Set("Accept-Encoding", "identity")
	return req, nil
}
