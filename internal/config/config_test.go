package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestParse_MemoryDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 8080
jwt:
  secret: ` + secret + `
store:
  driver: MEMORY
custody:
  enable_faucet: true
`))
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.True(t, cfg.Custody.EnableFaucet)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 300, cfg.JWT.SessionClockSkew)
	assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.ReconcileEscrow)
	assert.Equal(t, "0 0 * * * *", cfg.Scheduler.ReportElapsedRentals)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestParse_Postgres(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 8080
database:
  host: db
  user: rentby
  password: pw
  database: escrow
jwt:
  secret: ` + secret + `
`))
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://rentby:pw@db:5432/escrow?sslmode=disable", cfg.GetDatabaseConnectionString())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CUSTODY_ENABLE_FAUCET", "true")

	cfg, err := Parse([]byte("server:\n  port: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Custody.EnableFaucet)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad port", "server:\n  port: 0\n", "invalid server port"},
		{"missing db host", "server:\n  port: 80\njwt:\n  secret: " + secret + "\n", "database host is required"},
		{"unknown driver", "server:\n  port: 80\nstore:\n  driver: redis\n", "unknown store driver"},
		{"short secret", "server:\n  port: 80\nstore:\n  driver: memory\njwt:\n  secret: short\n", "at least 32 characters"},
		{"missing secret", "server:\n  port: 80\nstore:\n  driver: memory\n", "JWT secret is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 80\nstore:\n  driver: memory\njwt:\n  secret: "+secret+"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("Health"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("CompleteRental"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("SomethingNew"))
}

func TestLoad_DotEnv(t *testing.T) {
	if _, ok := os.LookupEnv("LOG_FORMAT"); ok {
		t.Skip("LOG_FORMAT set in environment")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { os.Unsetenv("LOG_FORMAT") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=json\n"), 0o600))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: memory\njwt:\n  secret: "+secret+"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}
