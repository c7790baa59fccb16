package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate runs the test in an empty directory with no config path set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	return dir
}

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
corpus:
  path: "/srv/bom.txt"
  snapshot_dir: "/var/cache/scriptorium"
  no_snapshot: true

server:
  host: "0.0.0.0"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "3s"
  rate_limit_rpm: 60
  rate_limit_burst: 5
  allowed_origins:
    - "https://example.org"
    - "https://www.example.org"

log:
  level: "debug"
  format: "json"

cache:
  citation_entries: 32
  daily_ttl: "12h"

search:
  dsn: "/var/lib/scriptorium/search.db"
  default_limit: 25

mail:
  host: "smtp.example.org"
  port: 465
  username: "bot"
  password: "hunter2"
  from: "Verse Bot <bot@example.org>"
  to: "reader@example.org"
`

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "bom.txt", cfg.Corpus.Path)
	require.False(t, cfg.Corpus.NoSnapshot)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	require.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, 120, cfg.Server.RateLimitRPM)
	require.Equal(t, 20, cfg.Server.RateLimitBurst)
	require.Empty(t, cfg.Server.AllowedOrigins)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, 256, cfg.Cache.CitationEntries)
	require.Equal(t, 24*time.Hour, cfg.Cache.DailyTTL)
	require.Equal(t, ":memory:", cfg.Search.DSN)
	require.Equal(t, 10, cfg.Search.DefaultLimit)
	require.Equal(t, 587, cfg.Mail.Port)
}

func TestLoad_YAML(t *testing.T) {
	dir := isolate(t)
	path := writeYAML(t, dir, "custom.yaml", validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/srv/bom.txt", cfg.Corpus.Path)
	require.Equal(t, "/var/cache/scriptorium", cfg.Corpus.SnapshotDirOrDefault())
	require.True(t, cfg.Corpus.NoSnapshot)
	require.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep their defaults")
	require.Equal(t, []string{"https://example.org", "https://www.example.org"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 12*time.Hour, cfg.Cache.DailyTTL)
	require.Equal(t, 25, cfg.Search.DefaultLimit)
	require.Equal(t, "smtp.example.org:465", cfg.Mail.Addr())
	require.NoError(t, cfg.ValidateMail())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	path := writeYAML(t, dir, "custom.yaml", validYAML)
	t.Setenv("SCRIPTORIUM_SERVER_PORT", "9999")
	t.Setenv("SCRIPTORIUM_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_PathResolution(t *testing.T) {
	t.Run("env path", func(t *testing.T) {
		dir := isolate(t)
		path := writeYAML(t, dir, "from-env.yaml", "server:\n  port: 7070\n")
		t.Setenv(EnvConfigPath, path)

		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("default path in working directory", func(t *testing.T) {
		dir := isolate(t)
		writeYAML(t, dir, "scriptorium.yaml", "server:\n  port: 6060\n")

		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 6060, cfg.Server.Port)
	})

	t.Run("explicit path wins over env", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvConfigPath, writeYAML(t, dir, "env.yaml", "server:\n  port: 1111\n"))
		path := writeYAML(t, dir, "flag.yaml", "server:\n  port: 2222\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 2222, cfg.Server.Port)
	})

	t.Run("explicit missing file", func(t *testing.T) {
		dir := isolate(t)
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("env missing file", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv(EnvConfigPath, filepath.Join(dir, "absent.yaml"))
		_, err := Load("")
		require.Error(t, err)
	})
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)

	_, err := Load(writeYAML(t, dir, "bad-level.yaml", "log:\n  level: loud\n"))
	require.ErrorContains(t, err, "validate")

	_, err = Load(writeYAML(t, dir, "broken.yaml", "server: [port\n"))
	require.ErrorContains(t, err, "read")
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"ephemeral port", func(c *Config) { c.Server.Port = 0 }, ""},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "port"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "read_timeout"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
		{"negative rpm", func(c *Config) { c.Server.RateLimitRPM = -1 }, "rate_limit_rpm"},
		{"rpm without burst", func(c *Config) { c.Server.RateLimitBurst = 0 }, "rate_limit_burst"},
		{"rate limiting off", func(c *Config) { c.Server.RateLimitRPM, c.Server.RateLimitBurst = 0, 0 }, ""},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log"},
		{"negative cache size", func(c *Config) { c.Cache.CitationEntries = -1 }, "citation_entries"},
		{"zero daily ttl", func(c *Config) { c.Cache.DailyTTL = 0 }, "daily_ttl"},
		{"zero search limit", func(c *Config) { c.Search.DefaultLimit = 0 }, "default_limit"},
		{"no corpus", func(c *Config) { c.Corpus.Path = "" }, "corpus.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateMail(t *testing.T) {
	isolate(t)
	cfg, err := Default()
	require.NoError(t, err)

	err = cfg.ValidateMail()
	require.ErrorContains(t, err, "host")
	require.ErrorContains(t, err, "password")

	cfg.Mail = MailConfig{Host: "smtp", Port: 587, Username: "u", Password: "p", From: "a@b", To: "c@d"}
	require.NoError(t, cfg.ValidateMail())

	cfg.Mail.Port = 0
	require.ErrorContains(t, cfg.ValidateMail(), "port")
}

func TestYAMLMasksPassword(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load(writeYAML(t, dir, "custom.yaml", validYAML))
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	require.NotContains(t, string(out), "hunter2")
	require.Contains(t, string(out), maskedPassword)
	require.Equal(t, "hunter2", cfg.Mail.Password, "YAML must not modify the config")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, cfg.Server, back.Server)
	require.Equal(t, cfg.Cache, back.Cache)
	require.Equal(t, maskedPassword, back.Mail.Password)
}

func TestSnapshotDirOrDefault(t *testing.T) {
	require.Equal(t, filepath.Join(os.TempDir(), "scriptorium"), CorpusConfig{}.SnapshotDirOrDefault())
	require.Equal(t, "/x", CorpusConfig{SnapshotDir: "/x"}.SnapshotDirOrDefault())
}
