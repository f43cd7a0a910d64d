package main

import (
	"testing"

	"erpinterno/internal/platform/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for name := range flagKeys {
		fs.String(name, "", "")
	}
	return fs
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv(config.KeyHTTPPort, "9000")
	v := config.NewViper()
	fs := testFlags()
	require.NoError(t, bindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--port", "9200", "--log-format", "text"}))

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "9200", cfg.HTTPPort)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestUnsetFlagsKeepDefaults(t *testing.T) {
	v := config.NewViper()
	fs := testFlags()
	require.NoError(t, bindFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)

	migrate, _, err := root.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", migrate.Name())
}
