package config

import (
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 3*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, "term", cfg.DefaultSignal)
	assert.Contains(t, cfg.Protected, "init")
	assert.InDelta(t, 0.5, cfg.CPUMatchTolerance, 1e-9)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, Default().RefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, Default().DefaultSignal, cfg.DefaultSignal)
}
