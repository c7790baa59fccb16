package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/FocuswithJustin/scriptorium/internal/logging"
)

// Validate checks the settings every command relies on. Load calls it;
// mail settings are checked separately by ValidateMail.
func (c *Config) Validate() error {
	if c.Corpus.Path == "" {
		return errors.New("corpus.path must be set")
	}
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Cache.CitationEntries < 0 {
		return fmt.Errorf("cache: citation_entries must be >= 0 (got %d)", c.Cache.CitationEntries)
	}
	if c.Cache.DailyTTL <= 0 {
		return fmt.Errorf("cache: daily_ttl must be > 0 (got %v)", c.Cache.DailyTTL)
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search: default_limit must be > 0 (got %d)", c.Search.DefaultLimit)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port must be in 0..65535 (got %d)", s.Port)
	}
	for _, t := range []struct {
		name string
		d    time.Duration
	}{
		{"read_timeout", s.ReadTimeout},
		{"write_timeout", s.WriteTimeout},
		{"idle_timeout", s.IdleTimeout},
		{"shutdown_timeout", s.ShutdownTimeout},
	} {
		if t.d <= 0 {
			return fmt.Errorf("%s must be > 0 (got %v)", t.name, t.d)
		}
	}
	if s.RateLimitRPM < 0 {
		return fmt.Errorf("rate_limit_rpm must be >= 0 (got %d)", s.RateLimitRPM)
	}
	if s.RateLimitRPM > 0 && s.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be > 0 when rate limiting is on (got %d)", s.RateLimitBurst)
	}
	return nil
}

// ValidateMail checks that every SMTP setting the email job needs is present.
func (c *Config) ValidateMail() error {
	m := c.Mail
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"host", m.Host},
		{"username", m.Username},
		{"password", m.Password},
		{"from", m.From},
		{"to", m.To},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("mail: missing %v", missing)
	}
	if m.Port <= 0 || m.Port > 65535 {
		return fmt.Errorf("mail: port must be in 1..65535 (got %d)", m.Port)
	}
	return nil
}
