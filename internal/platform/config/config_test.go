package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "erp-interno", cfg.ServiceName)
	assert.Equal(t, "1.0.0", cfg.ServiceVersion)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.False(t, cfg.Production())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(KeyEnvironment, "Production")
	t.Setenv(KeyPostgresDSN, "postgres://erp@localhost/erp")
	t.Setenv(KeyAllowedOrigins, "https://a.example.com, https://b.example.com,")
	t.Setenv(KeyAutoMigrate, "yes")
	t.Setenv(KeyInternalKey, "s3cret")

	cfg, err := LoadFrom(NewViper())
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "s3cret", cfg.InternalKey)
}

func TestProductionHasNoOriginDefault(t *testing.T) {
	t.Setenv(KeyEnvironment, EnvProduction)
	t.Setenv(KeyPostgresDSN, "postgres://erp@localhost/erp")

	cfg, err := LoadFrom(NewViper())
	require.NoError(t, err)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestProductionRequiresDatabase(t *testing.T) {
	t.Setenv(KeyEnvironment, EnvProduction)

	_, err := LoadFrom(NewViper())
	assert.Error(t, err)
}

func TestExplicitOverridesWin(t *testing.T) {
	t.Setenv(KeyHTTPPort, "9000")
	v := NewViper()
	v.Set(KeyHTTPPort, "9100")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.HTTPPort)
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ERP_DOTENV_PROBE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ERP_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("ERP_DOTENV_PROBE"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("ON", false))
	assert.False(t, parseBool("n", true))
	assert.True(t, parseBool("maybe", true))
	assert.False(t, parseBool("", false))
}
