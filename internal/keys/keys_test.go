package keys

import "testing"

func TestCharacterID(t *testing.T) {
	cases := map[string]string{
		"Ares":          "ARES",
		"  lady  luck ": "LADY_LUCK",
		"Hermes\tSwift": "HERMES_SWIFT",
		"":              "",
	}
	for in, want := range cases {
		if got := CharacterID(in); got != want {
			t.Fatalf("CharacterID(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestTeamKeyIgnoresOrder(t *testing.T) {
	a := TeamKey([]string{"zeus", "ARES", " ", "Hera"})
	b := TeamKey([]string{"HERA", "ares", "ZEUS"})
	if a != b || a != "ARES+HERA+ZEUS" {
		t.Fatalf("expected matching canonical keys, got %q and %q", a, b)
	}
	if got := MatchupKey([]string{"b", "a"}, []string{"c"}); got != "A+B vs C" {
		t.Fatalf("unexpected matchup key %q", got)
	}
}
