package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ericogr/clash-of-gods/internal/engine"
	"github.com/ericogr/clash-of-gods/internal/logging"
)

type hazardEntry struct {
	Immune       string `json:"immune"`
	FlyingDamage *int   `json:"flying_damage"`
	GroundDamage *int   `json:"ground_damage"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	RosterPath         string            `json:"roster_path"`
	TurnTimeoutSeconds *int              `json:"turn_timeout_seconds"`
	SpecialRules       map[string]string `json:"special_rules"`
	Hazards            struct {
		Thunderstorm *hazardEntry `json:"thunderstorm"`
	} `json:"hazards"`
	Logging logging.Options `json:"logging"`
}

// LoadedConfig holds the server settings and the engine tuning.
type LoadedConfig struct {
	ServerAddress string
	// RosterPath is resolved against the config file directory when relative.
	RosterPath  string
	TurnTimeout time.Duration
	// SpecialRules maps combatant ids to rule names (berserker, unerring, reaper).
	SpecialRules map[string]string
	Thunderstorm engine.Thunderstorm
	Logging      logging.Options
}

const (
	DefaultAddress     = ":8080"
	DefaultTurnTimeout = 2 * time.Minute
)

// Default returns the built-in configuration used when no file is given.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: DefaultAddress,
		TurnTimeout:   DefaultTurnTimeout,
		SpecialRules: map[string]string{
			"ARES":     "berserker",
			"ARTEMIS":  "unerring",
			"THANATOS": "reaper",
		},
		Thunderstorm: engine.DefaultThunderstorm(),
	}
}

// LoadConfig reads the JSON configuration file at path. Omitted sections
// keep their defaults; an explicit empty special_rules object disables
// every special rule.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := Default()
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if p := strings.TrimSpace(rc.RosterPath); p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		out.RosterPath = p
	}
	if rc.TurnTimeoutSeconds != nil {
		if *rc.TurnTimeoutSeconds < 0 {
			return nil, fmt.Errorf("config file %s: turn_timeout_seconds must not be negative", path)
		}
		out.TurnTimeout = time.Duration(*rc.TurnTimeoutSeconds) * time.Second
	}
	if rc.SpecialRules != nil {
		out.SpecialRules = make(map[string]string, len(rc.SpecialRules))
		for id, name := range rc.SpecialRules {
			if _, err := engine.RuleByName(name); err != nil {
				return nil, fmt.Errorf("config file %s: special_rules[%s]: %w", path, id, err)
			}
			out.SpecialRules[id] = name
		}
	}
	if h := rc.Hazards.Thunderstorm; h != nil {
		if h.Immune != "" {
			out.Thunderstorm.Immune = h.Immune
		}
		if h.FlyingDamage != nil {
			out.Thunderstorm.FlyingDamage = *h.FlyingDamage
		}
		if h.GroundDamage != nil {
			out.Thunderstorm.GroundDamage = *h.GroundDamage
		}
		if out.Thunderstorm.FlyingDamage < 0 || out.Thunderstorm.GroundDamage < 0 {
			return nil, fmt.Errorf("config file %s: thunderstorm damage must not be negative", path)
		}
	}
	out.Logging = rc.Logging
	return out, nil
}

// RuleBook builds the engine rule bindings from SpecialRules.
func (c *LoadedConfig) RuleBook() (*engine.RuleBook, error) {
	rb := engine.NewRuleBook()
	ids := make([]string, 0, len(c.SpecialRules))
	for id := range c.SpecialRules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r, err := engine.RuleByName(c.SpecialRules[id])
		if err != nil {
			return nil, fmt.Errorf("special rule for %s: %w", id, err)
		}
		rb.Bind(id, r)
	}
	return rb, nil
}

// EngineOptions returns the engine options this configuration implies.
func (c *LoadedConfig) EngineOptions() ([]engine.Option, error) {
	rb, err := c.RuleBook()
	if err != nil {
		return nil, err
	}
	return []engine.Option{engine.WithRules(rb), engine.WithHazard(c.Thunderstorm)}, nil
}
