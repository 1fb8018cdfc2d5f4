package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutEnvFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd) //nolint:errcheck

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 100, cfg.Query.MaxPageSize)
}

func TestLoadHonoursEnvironmentOverrides(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd) //nolint:errcheck

	t.Setenv("QUERY_MAX_PAGE_SIZE", "50")
	t.Setenv("API_PREFIX", "/api/v2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, 50, cfg.Query.MaxPageSize)
}
