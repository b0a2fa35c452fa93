// Package dice provides the d20 source used by the combat engine.
package dice

import (
	"math/rand"
	"sync"
)

// Sides of the only die the rules use.
const Sides = 20

// Roller draws one uniform value in [1, 20].
type Roller interface {
	D20() int
}

// Random is a seeded, goroutine-safe Roller.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Random seeded with seed. A zero seed is replaced by 1 so
// runs stay reproducible.
func New(seed int64) *Random {
	if seed == 0 {
		seed = 1
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) D20() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(Sides) + 1
}

// Sequence replays fixed values in order and then defers to Fallback.
// Without a Fallback an exhausted Sequence keeps returning its last value,
// or 1 when it was empty.
type Sequence struct {
	Values   []int
	Fallback Roller
	next     int
}

// Script is shorthand for a Sequence with no fallback.
func Script(values ...int) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) D20() int {
	if s.next < len(s.Values) {
		v := s.Values[s.next]
		s.next++
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.D20()
	}
	if len(s.Values) == 0 {
		return 1
	}
	return s.Values[len(s.Values)-1]
}

// Remaining reports how many scripted values have not been consumed.
func (s *Sequence) Remaining() int { return len(s.Values) - s.next }
