package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Game:     GameConfig{Lives: 3, PlayTime: 180 * time.Second, Level: "world1-1.json"},
		Viewport: ViewportConfig{Width: 400, Height: 240, Scale: 2},
		Physics:  PhysicsConfig{Gravity: 650, StepHz: 60},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
		Prefabs:  PrefabsConfig{Dir: "prefabs"},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, validConfig(), cfg)
	assert.InDelta(t, 1.0/60, cfg.Physics.StepSeconds(), 1e-12)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game:
  lives: 5
  play_time: 90s
viewport:
  width: 320
logging:
  level: debug
debug: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Game.Lives)
	assert.Equal(t, 90*time.Second, cfg.Game.PlayTime)
	assert.Equal(t, 320, cfg.Viewport.Width)
	assert.Equal(t, 240, cfg.Viewport.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PLATFORMER_GAME_LIVES", "7")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Game.Lives)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Game.Lives = 0
	cfg.Viewport.Width = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.lives")
	assert.Contains(t, err.Error(), "viewport")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidateRejectsNonPositiveLives(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Game.Lives = rapid.IntRange(-1000, 0).Draw(t, "lives")
		if cfg.Validate() == nil {
			t.Fatalf("lives %d accepted", cfg.Game.Lives)
		}
	})
}
