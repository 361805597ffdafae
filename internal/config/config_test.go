package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DATABASE_URI", "BASE_URL", "ENABLE_HTTPS", "NOTES_LIST_LIMIT", "CORS_ORIGINS", "TOKEN_FILE", "CONFIG_FILE", "REQUEST_TIMEOUT"} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)
	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "localhost:8081", cfg.BaseURL)
	assert.Equal(t, "http://localhost:8081", cfg.ServerURL)
	assert.Equal(t, 50, cfg.NotesListLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, strings.HasSuffix(cfg.TokenFile, filepath.Join("NoteKeeper", "token")), cfg.TokenFile)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestNewConfig_BaseURLAndHTTPS(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("NOTES_LIST_LIMIT", "10")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "example.com:443", cfg.BaseURL)
	assert.Equal(t, "https://example.com:443", cfg.ServerURL)
	assert.Equal(t, 10, cfg.NotesListLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")

	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, "localhost:8081", cfg.BaseURL)
	assert.True(t, strings.HasPrefix(cfg.ServerURL, "http://localhost:8081"))
}

func TestNewConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "notekeeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database_uri: /tmp/from-file.db\nbase_url: file.host:9000\nnotes_list_limit: 25\ncors_origins: [\"http://file.test\"]\nrequest_timeout: 5s\n",
	), 0o600))
	t.Setenv("CONFIG_FILE", path)
	// окружение перекрывает файл
	t.Setenv("BASE_URL", "env.host:7000")

	resetFlagSet(t)
	cfg := NewConfig()

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "/tmp/from-file.db", cfg.DatabaseDSN)
	assert.Equal(t, "env.host:7000", cfg.BaseURL)
	assert.Equal(t, 25, cfg.NotesListLimit)
	assert.Equal(t, []string{"http://file.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestConfigFileFromArgs(t *testing.T) {
	assert.Equal(t, "a.yaml", configFileFromArgs([]string{"-config", "a.yaml", "notes"}))
	assert.Equal(t, "b.yaml", configFileFromArgs([]string{"--config=b.yaml"}))
	assert.Equal(t, "", configFileFromArgs([]string{"notes", "config"}))
	assert.Equal(t, "", configFileFromArgs([]string{"-config"}))
}
