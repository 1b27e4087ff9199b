package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// deezerTrackURL is the public track URL format deemix accepts in its queue.
const deezerTrackURL = "https://www.deezer.com/track/"

// sessionCookie is the cookie deemix issues on a successful ARL login.
const sessionCookie = "connect.sid"

// ErrNotConfigured is returned when no deemix URL or ARL credential was
// supplied. The favorite-trigger handler logs it like any other queue
// failure and still acknowledges the client.
var ErrNotConfigured = errors.New("deemix: not configured")

// Deemix queues full-quality downloads against a deemix web instance.
//
// The instance authenticates via a session cookie obtained by posting the
// long-lived ARL credential to its login endpoint. The session is acquired
// lazily on the first queue request and kept in memory; a 401/403 from the
// queue endpoint invalidates it and triggers one re-login retry.
type Deemix struct {
	baseURL string
	arl     string
	http    *http.Client

	mu      sync.Mutex
	session string // "connect.sid=<value>", empty when unauthenticated
}

func NewDeemix(baseURL, arl string, timeout time.Duration) *Deemix {
	return &Deemix{
		baseURL: strings.TrimRight(baseURL, "/"),
		arl:     arl,
		http:    newJSONClient(timeout),
	}
}

// QueueTrack asks deemix to download the Deezer track with the given ID.
// Any returned error means the track was not queued; nothing is retried
// beyond the single session-refresh attempt.
func (d *Deemix) QueueTrack(ctx context.Context, trackID string) error {
	if d.baseURL == "" || d.arl == "" {
		return ErrNotConfigured
	}

	session, err := d.ensureSession(ctx, false)
	if err != nil {
		return err
	}

	status, err := d.addToQueue(ctx, session, trackID)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// Stale session — reacquire once and retry.
		if session, err = d.ensureSession(ctx, true); err != nil {
			return err
		}
		if status, err = d.addToQueue(ctx, session, trackID); err != nil {
			return err
		}
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("deemix addToQueue returned status %d", status)
	}
	return nil
}

func (d *Deemix) addToQueue(ctx context.Context, session, trackID string) (int, error) {
	payload, err := json.Marshal(struct {
		URL     string `json:"url"`
		Bitrate *int   `json:"bitrate"`
	}{URL: deezerTrackURL + trackID})
	if err != nil {
		return 0, fmt.Errorf("deemix: marshalling queue payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/addToQueue", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("deemix: building queue request: %w", err)
	}
	d.setBrowserHeaders(req.Header)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", session)

	resp, err := d.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("deemix queue request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}

// ensureSession returns the held session cookie, logging in first when none
// is held or when force is set.
func (d *Deemix) ensureSession(ctx context.Context, force bool) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != "" && !force {
		return d.session, nil
	}
	d.session = ""

	session, err := d.login(ctx)
	if err != nil {
		return "", err
	}
	d.session = session
	return session, nil
}

// login posts the ARL credential and extracts the session cookie.
func (d *Deemix) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(struct {
		ARL   string `json:"arl"`
		Force bool   `json:"force"`
		Child int    `json:"child"`
	}{ARL: d.arl, Force: true})
	if err != nil {
		return "", fmt.Errorf("deemix: marshalling login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/loginArl", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("deemix: building login request: %w", err)
	}
	d.setBrowserHeaders(req.Header)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("deemix login request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deemix login returned status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return sessionCookie + "=" + c.Value, nil
		}
	}
	return "", errors.New("deemix login succeeded but no session cookie received")
}

// setBrowserHeaders applies the header set deemix's web API expects from its
// own frontend. Requests without them are rejected as cross-origin.
func (d *Deemix) setBrowserHeaders(h http.Header) {
	h.Set("Origin", d.baseURL)
	h.Set("Referer", d.baseURL+"/")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:145.0) Gecko/20100101 Firefox/145.0")
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("DNT", "1")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-origin")
}
