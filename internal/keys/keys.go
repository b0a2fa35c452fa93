package keys

import (
	"sort"
	"strings"
)

// CharacterID derives a roster id from a display name: trimmed,
// upper-cased, inner whitespace collapsed to single underscores.
func CharacterID(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), "_"))
}

// TeamKey produces a canonical key for a team of character ids.
// Behavior: normalizes each id with CharacterID, drops empties, sorts the
// parts and joins with "+". Two teams with the same members share a key
// regardless of draft order.
func TeamKey(ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		s := CharacterID(id)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// MatchupKey joins two team keys as "a vs b".
func MatchupKey(teamA, teamB []string) string {
	return TeamKey(teamA) + " vs " + TeamKey(teamB)
}
