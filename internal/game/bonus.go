package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ConditionKind names the predicates a conditional bonus can test.
type ConditionKind string

const (
	CondTargetHasStatus ConditionKind = "target_has_status"
	CondAttackerHPBelow ConditionKind = "attacker_hp_below"
	CondTargetHPBelow   ConditionKind = "target_hp_below"
)

// Condition is the parsed form of Bonus.When.
type Condition struct {
	Kind      ConditionKind
	Status    string
	Threshold int
}

// ParseCondition parses "kind:arg" strings such as "target_hp_below:60".
func ParseCondition(s string) (Condition, error) {
	kind, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || arg == "" {
		return Condition{}, fmt.Errorf("condition %q: expected kind:argument", s)
	}
	c := Condition{Kind: ConditionKind(kind)}
	switch c.Kind {
	case CondTargetHasStatus:
		c.Status = arg
	case CondAttackerHPBelow, CondTargetHPBelow:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Condition{}, fmt.Errorf("condition %q: threshold: %w", s, err)
		}
		c.Threshold = n
	default:
		return Condition{}, fmt.Errorf("condition %q: unknown kind %q", s, kind)
	}
	return c, nil
}

// Validate checks a bonus definition without evaluating it.
func (b *Bonus) Validate() error {
	switch b.Kind {
	case BonusFlat:
		return nil
	case BonusStat:
		if _, ok := StatValue(Stats{}, b.Stat); !ok {
			return fmt.Errorf("stat bonus: unknown stat %q", b.Stat)
		}
		return nil
	case BonusConditional:
		_, err := ParseCondition(b.When)
		return err
	default:
		return fmt.Errorf("unknown bonus kind %q", b.Kind)
	}
}

// StatValue looks a stat up by its upper-case name.
func StatValue(s Stats, name string) (int, bool) {
	switch strings.ToUpper(name) {
	case "HP":
		return s.HP, true
	case "STR":
		return s.STR, true
	case "MAG":
		return s.MAG, true
	case "WIS":
		return s.WIS, true
	}
	return 0, false
}
