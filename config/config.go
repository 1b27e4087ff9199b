package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// NavidromeURL is the base URL of the Subsonic-compatible server being
	// proxied. Every request the proxy does not handle itself is forwarded
	// here verbatim.
	NavidromeURL string `env:"NAVIDROME_URL" envDefault:"http://localhost:4533"`
	// DeezerAPIURL is the base URL of the Deezer public API.
	DeezerAPIURL string `env:"DEEZER_API_URL" envDefault:"https://api.deezer.com"`
	// DeemixURL is the base URL of the deemix web instance used to queue
	// full-quality downloads. Leave empty to disable the favorite-trigger
	// download path (triggers still acknowledge with a success envelope).
	DeemixURL string `env:"DEEMIX_URL"`
	// DeezerARL is the long-lived ARL credential submitted to deemix's
	// loginArl endpoint to obtain a session cookie.
	DeezerARL string `env:"DEEZER_ARL"`
	// ListenAddr is the address the proxy HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":4534"`
	// MetadataTimeout bounds JSON API calls to Navidrome, Deezer and deemix.
	MetadataTimeout time.Duration `env:"METADATA_TIMEOUT" envDefault:"10s"`
	// StreamTimeout bounds the time to first byte on preview and image
	// streams. The body itself may run longer; only headers are deadlined.
	StreamTimeout time.Duration `env:"STREAM_TIMEOUT" envDefault:"30s"`
	// CacheTTL is how long merged search envelopes and cover-art bytes stay
	// valid. Entries older than this are treated as absent.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	// ShutdownTimeout is the maximum duration to wait for in-flight requests
	// to complete during graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	// CORSOrigins is a set of origins (comma-separated) allowed to make
	// credentialed cross-origin requests, for browser-based Subsonic clients.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load parses configuration from environment variables.
// Returns an error if a value cannot be parsed into the expected type.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
