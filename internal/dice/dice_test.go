package dice

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRandomStaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		r := New(seed)
		for i := 0; i < 200; i++ {
			if v := r.D20(); v < 1 || v > Sides {
				rt.Fatalf("roll %d out of range", v)
			}
		}
	})
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if x, y := a.D20(), b.D20(); x != y {
			t.Fatalf("roll %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestZeroSeedMatchesSeedOne(t *testing.T) {
	a, b := New(0), New(1)
	if a.D20() != b.D20() {
		t.Fatalf("expected zero seed to behave like seed 1")
	}
}

func TestSequenceReplaysThenFallsBack(t *testing.T) {
	s := &Sequence{Values: []int{3, 17}, Fallback: Script(9)}
	got := []int{s.D20(), s.D20(), s.D20(), s.D20()}
	want := []int{3, 17, 9, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d: got %d want %d", i, got[i], want[i])
		}
	}
	if s.Remaining() != 0 {
		t.Fatalf("expected no remaining values, got %d", s.Remaining())
	}
}

func TestScriptRepeatsLastValue(t *testing.T) {
	s := Script(5)
	s.D20()
	if v := s.D20(); v != 5 {
		t.Fatalf("expected last value to repeat, got %d", v)
	}
	if v := Script().D20(); v != 1 {
		t.Fatalf("expected empty script to return 1, got %d", v)
	}
}
