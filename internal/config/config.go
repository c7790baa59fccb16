// Package config loads the scriptorium configuration from YAML, the
// environment and built-in defaults.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the root configuration.
type Config struct {
	Corpus CorpusConfig `yaml:"corpus"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`
	Mail   MailConfig   `yaml:"mail"`
}

// CorpusConfig locates the source text and its snapshot cache.
type CorpusConfig struct {
	Path        string `yaml:"path"         env:"SCRIPTORIUM_CORPUS_PATH"  env-default:"bom.txt"`
	SnapshotDir string `yaml:"snapshot_dir" env:"SCRIPTORIUM_SNAPSHOT_DIR"`
	NoSnapshot  bool   `yaml:"no_snapshot"  env:"SCRIPTORIUM_NO_SNAPSHOT"`
}

// SnapshotDirOrDefault returns SnapshotDir, or a scriptorium directory under
// the system temp dir when unset.
func (c CorpusConfig) SnapshotDirOrDefault() string {
	if c.SnapshotDir != "" {
		return c.SnapshotDir
	}
	return filepath.Join(os.TempDir(), "scriptorium")
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SCRIPTORIUM_SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SCRIPTORIUM_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SCRIPTORIUM_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SCRIPTORIUM_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SCRIPTORIUM_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SCRIPTORIUM_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitRPM    int           `yaml:"rate_limit_rpm"   env:"SCRIPTORIUM_RATE_LIMIT_RPM"          env-default:"120"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"SCRIPTORIUM_RATE_LIMIT_BURST"        env-default:"20"`
	AllowedOrigins  []string      `yaml:"allowed_origins"  env:"SCRIPTORIUM_ALLOWED_ORIGINS"         env-separator:","`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SCRIPTORIUM_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"SCRIPTORIUM_LOG_FORMAT" env-default:"text"`
}

// CacheConfig sizes the in-process caches.
type CacheConfig struct {
	CitationEntries int           `yaml:"citation_entries" env:"SCRIPTORIUM_CACHE_CITATION_ENTRIES" env-default:"256"`
	DailyTTL        time.Duration `yaml:"daily_ttl"        env:"SCRIPTORIUM_CACHE_DAILY_TTL"        env-default:"24h"`
}

// SearchConfig configures the full-text index.
type SearchConfig struct {
	DSN          string `yaml:"dsn"           env:"SCRIPTORIUM_SEARCH_DSN"           env-default:":memory:"`
	DefaultLimit int    `yaml:"default_limit" env:"SCRIPTORIUM_SEARCH_DEFAULT_LIMIT" env-default:"10"`
}

// MailConfig holds SMTP settings for the random-verse email.
type MailConfig struct {
	Host     string `yaml:"host"     env:"SCRIPTORIUM_MAIL_HOST"`
	Port     int    `yaml:"port"     env:"SCRIPTORIUM_MAIL_PORT"     env-default:"587"`
	Username string `yaml:"username" env:"SCRIPTORIUM_MAIL_USERNAME"`
	Password string `yaml:"password" env:"SCRIPTORIUM_MAIL_PASSWORD"`
	From     string `yaml:"from"     env:"SCRIPTORIUM_MAIL_FROM"`
	To       string `yaml:"to"       env:"SCRIPTORIUM_MAIL_TO"`
}

// Addr returns host:port of the SMTP server.
func (m MailConfig) Addr() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}
