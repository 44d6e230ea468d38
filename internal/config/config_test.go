package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HEALTHPULSE_DATA_DIR", "")
	t.Setenv("HEALTHPULSE_CHART_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".local", cfg.DataDir)
	require.Equal(t, "./data", cfg.ChartDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HEALTHPULSE_DATA_DIR", "/tmp/hp")
	t.Setenv("HEALTHPULSE_CHART_DIR", "/tmp/charts")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/hp", cfg.DataDir)
	require.Equal(t, "/tmp/charts", cfg.ChartDir)
}
