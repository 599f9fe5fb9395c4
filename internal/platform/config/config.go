package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: LINK_CHECK_CONCURRENCY must be 1-100")
	errCandidatesOutOfRange  = errors.New("config: MAX_CANDIDATES must be 1-16")
	errInvalidRemoteURL      = errors.New("config: REMOTE_SYNTH_URL must be an absolute http(s) URL")
	errInvalidRemoteTimeout  = errors.New("config: REMOTE_SYNTH_TIMEOUT must be positive")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port                 string        `env:"PORT"                   envDefault:"8080"`
	LogLevel             string        `env:"LOG_LEVEL"              envDefault:"ERROR"`
	RemoteSynthURL       string        `env:"REMOTE_SYNTH_URL"`
	RemoteSynthTimeout   time.Duration `env:"REMOTE_SYNTH_TIMEOUT"   envDefault:"20s"`
	LinkAudit            bool          `env:"LINK_AUDIT"             envDefault:"false"`
	LinkCheckConcurrency int           `env:"LINK_CHECK_CONCURRENCY" envDefault:"10"`
	MaxCandidates        int           `env:"MAX_CANDIDATES"         envDefault:"4"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.validate()
}

// RemoteEnabled reports whether a remote synthesis endpoint is configured.
func (c Config) RemoteEnabled() bool {
	return c.RemoteSynthURL != ""
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LinkCheckConcurrency < 1 || c.LinkCheckConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.LinkCheckConcurrency)
	}

	if c.MaxCandidates < 1 || c.MaxCandidates > 16 {
		return fmt.Errorf("%w: got %d", errCandidatesOutOfRange, c.MaxCandidates)
	}

	if c.RemoteEnabled() {
		u, err := url.Parse(c.RemoteSynthURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidRemoteURL, c.RemoteSynthURL)
		}
		if c.RemoteSynthTimeout <= 0 {
			return fmt.Errorf("%w: got %s", errInvalidRemoteTimeout, c.RemoteSynthTimeout)
		}
	}

	return nil
}
