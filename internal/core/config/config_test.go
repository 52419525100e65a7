package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadE(t *testing.T) {
	p := writeConfig(t, `
app:
  admin:
    port: 9001
db:
  driver: postgres
  dsn: postgres://localhost/rental
redis:
  addr: 127.0.0.1:6379
`)
	c, err := LoadE(p)
	require.NoError(t, err)

	assert.Equal(t, 9001, c.App.Admin.Port)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	// defaults fill the rest
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 30, c.Cache.AnalyticsTTLSec)
	assert.Equal(t, 120, c.JWT.AccessTokenTTLMin)
}

func TestLoadEEnvOverride(t *testing.T) {
	p := writeConfig(t, "db:\n  driver: sqlite\n  dsn: a.db\n")
	t.Setenv("APP_DB_DSN", "b.db")
	c, err := LoadE(p)
	require.NoError(t, err)
	assert.Equal(t, "b.db", c.DB.DSN)
}

func TestLoadEMissingFile(t *testing.T) {
	_, err := LoadE(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
