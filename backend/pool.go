// Package backend provides the HTTP clients for the proxy's three upstream
// roles: the Navidrome server being proxied, the Deezer catalog API, and the
// deemix download queue. Each role owns its own pooled transport so a slow
// upstream never starves the others' connections.
package backend

import (
	"net"
	"net/http"
	"time"
)

// newJSONClient builds a client for metadata calls: bounded total timeout,
// short dial and header deadlines.
func newJSONClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   10,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// newStreamClient builds a client for binary media: the header deadline is
// bounded but the body is not, since previews and passthrough downloads run
// as long as the listener keeps pulling. Compression is disabled so relayed
// bytes are never buffered or reshaped in flight.
func newStreamClient(headerTimeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: headerTimeout,
		MaxIdleConnsPerHost:   20,
		DisableCompression:    true,
	}
	return &http.Client{Transport: transport, Timeout: 0}
}
