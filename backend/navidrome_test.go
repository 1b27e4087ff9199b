package backend_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adamivangrgic/subsonic-deezer-proxy/backend"
)

var _ = Describe("Navidrome", func() {
	var (
		upstream *httptest.Server
		client   *backend.Navidrome
		received *http.Request
		respond  func(w http.ResponseWriter)
	)

	BeforeEach(func() {
		respond = func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"subsonic-response":{"status":"ok","version":"1.16.1"}}`))
		}
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r.Clone(context.Background())
			body, _ := io.ReadAll(r.Body)
			received.Body = io.NopCloser(strings.NewReader(string(body)))
			respond(w)
		}))
		DeferCleanup(upstream.Close)
		client = backend.NewNavidrome(upstream.URL, 2*time.Second, 2*time.Second)
	})

	Describe("Forward", func() {
		It("relays method, path, query, body and headers", func() {
			req := httptest.NewRequest(http.MethodPost, "/rest/scrobble?id=42&u=admin", strings.NewReader("payload"))
			req.Header.Set("X-Custom", "kept")
			rec := httptest.NewRecorder()

			Expect(client.Forward(rec, req)).To(Succeed())

			Expect(received.Method).To(Equal(http.MethodPost))
			Expect(received.URL.Path).To(Equal("/rest/scrobble"))
			Expect(received.URL.RawQuery).To(Equal("id=42&u=admin"))
			Expect(received.Header.Get("X-Custom")).To(Equal("kept"))
			body, _ := io.ReadAll(received.Body)
			Expect(string(body)).To(Equal("payload"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"status":"ok"`))
		})

		It("requests identity encoding from the upstream", func() {
			req := httptest.NewRequest(http.MethodGet, "/rest/getAlbumList", nil)
			req.Header.Set("Accept-Encoding", "gzip, br")
			Expect(client.Forward(httptest.NewRecorder(), req)).To(Succeed())
			Expect(received.Header.Get("Accept-Encoding")).To(Equal("identity"))
		})

		It("strips hop-by-hop and encoding headers from the relayed response", func() {
			respond = func(w http.ResponseWriter) {
				w.Header().Set("Content-Encoding", "gzip")
				w.Header().Set("X-Upstream", "kept")
				_, _ = w.Write([]byte("data"))
			}
			rec := httptest.NewRecorder()
			Expect(client.Forward(rec, httptest.NewRequest(http.MethodGet, "/rest/x", nil))).To(Succeed())
			Expect(rec.Header().Get("Content-Encoding")).To(BeEmpty())
			Expect(rec.Header().Get("X-Upstream")).To(Equal("kept"))
		})

		It("relays non-200 statuses as-is", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte("unauthorized"))
			}
			rec := httptest.NewRecorder()
			Expect(client.Forward(rec, httptest.NewRequest(http.MethodGet, "/rest/x", nil))).To(Succeed())
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(Equal("unauthorized"))
		})

		It("propagates a transport failure", func() {
			down := backend.NewNavidrome("http://127.0.0.1:1", time.Second, time.Second)
			err := down.Forward(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rest/x", nil))
			Expect(err).To(MatchError(ContainSubstring("navidrome request failed")))
		})
	})

	Describe("ForwardBuffered", func() {
		It("returns the body, status and content type", func() {
			req := httptest.NewRequest(http.MethodGet, "/rest/search3?query=test", nil)
			body, status, contentType, err := client.ForwardBuffered(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusOK))
			Expect(contentType).To(Equal("application/json"))
			Expect(string(body)).To(ContainSubstring(`"status":"ok"`))
		})
	})
})
