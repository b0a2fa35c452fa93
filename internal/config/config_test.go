package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := writeFile(t, "cfg.json", `{}`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, cfg.ServerAddress)
	assert.Equal(t, DefaultTurnTimeout, cfg.TurnTimeout)
	assert.Equal(t, "reaper", cfg.SpecialRules["THANATOS"])
	assert.Equal(t, "ZEUS", cfg.Thunderstorm.Immune)
	assert.Empty(t, cfg.RosterPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	p := writeFile(t, "cfg.json", `{
		"server": {"address": ":9999"},
		"roster_path": "chars.yaml",
		"turn_timeout_seconds": 30,
		"special_rules": {"HADES": "reaper"},
		"hazards": {"thunderstorm": {"immune": "POSEIDON", "ground_damage": 6}},
		"logging": {"level": "debug"}
	}`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, filepath.Join(filepath.Dir(p), "chars.yaml"), cfg.RosterPath)
	assert.Equal(t, 30*time.Second, cfg.TurnTimeout)
	assert.Equal(t, map[string]string{"HADES": "reaper"}, cfg.SpecialRules)
	assert.Equal(t, "POSEIDON", cfg.Thunderstorm.Immune)
	assert.Equal(t, 8, cfg.Thunderstorm.FlyingDamage)
	assert.Equal(t, 6, cfg.Thunderstorm.GroundDamage)
	assert.Equal(t, "debug", cfg.Logging.Level)

	rb, err := cfg.RuleBook()
	require.NoError(t, err)
	assert.Equal(t, []string{"HADES=reaper"}, rb.Bindings())
	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"bad-json":     `{`,
		"unknown-rule": `{"special_rules": {"ARES": "vampire"}}`,
		"neg-timeout":  `{"turn_timeout_seconds": -1}`,
		"neg-storm":    `{"hazards": {"thunderstorm": {"flying_damage": -2}}}`,
	}
	for name, body := range cases {
		_, err := LoadConfig(writeFile(t, "cfg.json", body))
		assert.Error(t, err, name)
	}
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CLASH_DB", "/tmp/x.db")
	t.Setenv("CLASH_SEED", "42")
	var e Env
	require.NoError(t, ParseEnv(&e))
	assert.Equal(t, "/tmp/x.db", e.DBPath)
	assert.Equal(t, int64(42), e.Seed)
	assert.Equal(t, "clash_config.json", e.ConfigPath)

	t.Setenv("CLASH_SEED", "many")
	assert.Error(t, ParseEnv(&Env{}))
}
