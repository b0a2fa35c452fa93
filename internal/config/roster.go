package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/keys"
)

type rawStats struct {
	HP  *int `json:"HP" yaml:"HP"`
	STR int  `json:"STR" yaml:"STR"`
	MAG int  `json:"MAG" yaml:"MAG"`
	WIS int  `json:"WIS" yaml:"WIS"`
}

type rawCharacter struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	CanFly    bool           `json:"canFly" yaml:"canFly"`
	Stats     *rawStats      `json:"stats" yaml:"stats"`
	Passive   game.Passive   `json:"passive" yaml:"passive"`
	Abilities []game.Ability `json:"abilities" yaml:"abilities"`
}

type rawRoster struct {
	Characters []rawCharacter `json:"characters" yaml:"characters"`
}

// LoadRoster reads a character library from a JSON or YAML file, chosen by
// extension. The file holds either a bare list or {"characters": [...]}.
// Every entry is validated before any is returned.
func LoadRoster(path string) ([]game.Combatant, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}
	entries, err := decodeRoster(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}
	out, err := buildRoster(entries)
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return out, nil
}

// ParseRoster decodes roster bytes in the given format ("json" or "yaml").
func ParseRoster(b []byte, format string) ([]game.Combatant, error) {
	entries, err := decodeRoster(b, "."+strings.TrimPrefix(format, "."))
	if err != nil {
		return nil, err
	}
	return buildRoster(entries)
}

func decodeRoster(b []byte, ext string) ([]rawCharacter, error) {
	var list []rawCharacter
	var wrapped rawRoster
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &list); err == nil {
			return list, nil
		}
		if err := yaml.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(b, &list); err == nil {
			return list, nil
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
	}
	return wrapped.Characters, nil
}

// buildRoster validates raw entries and converts them into combatants.
func buildRoster(entries []rawCharacter) ([]game.Combatant, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}
	out := make([]game.Combatant, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("entry %d: missing 'name'", i)
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = keys.CharacterID(name)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate character id '%s'", id)
		}
		seen[id] = struct{}{}
		if e.Stats == nil {
			return nil, fmt.Errorf("character '%s': missing 'stats'", id)
		}
		if e.Stats.HP == nil {
			return nil, fmt.Errorf("character '%s': missing 'stats.HP'", id)
		}
		if *e.Stats.HP <= 0 {
			return nil, fmt.Errorf("character '%s': stats.HP must be positive", id)
		}
		if len(e.Abilities) == 0 {
			return nil, fmt.Errorf("character '%s': at least one ability is required", id)
		}
		abilities, err := checkAbilities(id, e.Abilities)
		if err != nil {
			return nil, err
		}
		out = append(out, game.Combatant{
			ID:        id,
			Name:      name,
			CanFly:    e.CanFly,
			Stats:     game.Stats{HP: *e.Stats.HP, STR: e.Stats.STR, MAG: e.Stats.MAG, WIS: e.Stats.WIS},
			Passive:   e.Passive,
			Abilities: abilities,
		})
	}
	return out, nil
}

func checkAbilities(owner string, in []game.Ability) ([]game.Ability, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]game.Ability, 0, len(in))
	for _, a := range in {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("character '%s': ability missing 'name'", owner)
		}
		if a.ID == "" {
			a.ID = keys.CharacterID(a.Name)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("character '%s': duplicate ability id '%s'", owner, a.ID)
		}
		seen[a.ID] = struct{}{}
		switch a.Type {
		case game.Physical, game.Magical:
		case "":
			a.Type = game.Physical
		default:
			return nil, fmt.Errorf("character '%s': ability '%s' has unknown type '%s'", owner, a.ID, a.Type)
		}
		for _, eff := range a.Effects {
			if strings.TrimSpace(eff.Key) == "" {
				return nil, fmt.Errorf("character '%s': ability '%s' has an effect without 'key'", owner, a.ID)
			}
			if eff.Duration <= 0 {
				return nil, fmt.Errorf("character '%s': ability '%s' effect '%s' needs a positive duration", owner, a.ID, eff.Key)
			}
		}
		if a.Bonus != nil {
			if err := a.Bonus.Validate(); err != nil {
				return nil, fmt.Errorf("character '%s': ability '%s': %w", owner, a.ID, err)
			}
		}
		out = append(out, a)
	}
	return out, nil
}
