// Package roster holds the character library that battles draft from.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ericogr/clash-of-gods/internal/game"
	"github.com/ericogr/clash-of-gods/internal/keys"
)

var (
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrDuplicateCharacter = errors.New("character drafted twice")
)

// Library is an immutable set of character templates. Every accessor
// returns deep copies so callers can never alter the templates.
type Library struct {
	byID  map[string]game.Combatant
	order []string
}

// New builds a library, rejecting duplicate ids.
func New(chars []game.Combatant) (*Library, error) {
	l := &Library{byID: make(map[string]game.Combatant, len(chars))}
	for _, c := range chars {
		if _, dup := l.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCharacter, c.ID)
		}
		l.byID[c.ID] = c.Clone()
		l.order = append(l.order, c.ID)
	}
	return l, nil
}

func (l *Library) Len() int { return len(l.order) }

// IDs returns character ids sorted alphabetically.
func (l *Library) IDs() []string {
	out := append([]string(nil), l.order...)
	sort.Strings(out)
	return out
}

// Get returns a copy of the character with id. Lookups accept display
// names too, normalized the same way ids are derived.
func (l *Library) Get(id string) (game.Combatant, bool) {
	c, ok := l.byID[id]
	if !ok {
		c, ok = l.byID[keys.CharacterID(id)]
	}
	if !ok {
		return game.Combatant{}, false
	}
	return c.Clone(), true
}

// List returns copies of every character in load order.
func (l *Library) List() []game.Combatant {
	out := make([]game.Combatant, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id].Clone())
	}
	return out
}

// Draft resolves both teams, refusing unknown ids and any character that
// appears more than once across the two teams.
func (l *Library) Draft(teamA, teamB []string) ([]game.Combatant, []game.Combatant, error) {
	seen := map[string]bool{}
	pick := func(ids []string) ([]game.Combatant, error) {
		out := make([]game.Combatant, 0, len(ids))
		for _, raw := range ids {
			c, ok := l.Get(strings.TrimSpace(raw))
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCharacter, raw)
			}
			if seen[c.ID] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateCharacter, c.ID)
			}
			seen[c.ID] = true
			out = append(out, c)
		}
		return out, nil
	}
	a, err := pick(teamA)
	if err != nil {
		return nil, nil, err
	}
	b, err := pick(teamB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
