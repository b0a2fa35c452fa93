package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericogr/clash-of-gods/internal/game"
)

// HitContext is the state of one attack as it moves through the pipeline.
type HitContext struct {
	Attacker *game.Combatant
	Target   *game.Combatant
	Ability  *game.Ability
	Roll     int
	Tier     Tier
	Base     int
	Total    int
	Dealt    int
}

// Rule is a per-combatant special rule. A rule implements any subset of
// DamageModifier, OutcomeOverride and PostDamageEffect; the resolver
// calls each hook at its fixed stage.
type Rule interface {
	Name() string
}

// DamageModifier adds to the base damage before the tier is applied.
type DamageModifier interface {
	ModifyDamage(hc *HitContext) int
}

// OutcomeOverride may replace the rolled tier.
type OutcomeOverride interface {
	OverrideOutcome(hc *HitContext) (Tier, bool)
}

// PostDamageEffect runs after damage has been applied.
type PostDamageEffect interface {
	AfterDamage(a Arena, hc *HitContext)
}

// RuleBook binds rules to combatant ids.
type RuleBook struct {
	byID map[string]Rule
}

// NewRuleBook returns an empty rule book.
func NewRuleBook() *RuleBook { return &RuleBook{byID: map[string]Rule{}} }

// DefaultRuleBook binds the stock rules to ARES, ARTEMIS and THANATOS.
func DefaultRuleBook() *RuleBook {
	rb := NewRuleBook()
	rb.Bind("ARES", DefaultBerserker())
	rb.Bind("ARTEMIS", Unerring{})
	rb.Bind("THANATOS", DefaultReaper())
	return rb
}

// Bind attaches r to the combatant id, replacing any earlier rule.
func (rb *RuleBook) Bind(id string, r Rule) { rb.byID[id] = r }

// For returns the rule bound to id, or nil.
func (rb *RuleBook) For(id string) Rule {
	if rb == nil {
		return nil
	}
	return rb.byID[id]
}

// Bindings lists "id=rule" pairs sorted by id.
func (rb *RuleBook) Bindings() []string {
	if rb == nil {
		return nil
	}
	out := make([]string, 0, len(rb.byID))
	for id, r := range rb.byID {
		out = append(out, id+"="+r.Name())
	}
	sort.Strings(out)
	return out
}

// RuleByName builds a stock rule from its configuration name.
func RuleByName(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "berserker":
		return DefaultBerserker(), nil
	case "unerring":
		return Unerring{}, nil
	case "reaper":
		return DefaultReaper(), nil
	}
	return nil, fmt.Errorf("unknown special rule %q", name)
}

// BerserkerStep is one HP threshold of the berserker bonus.
type BerserkerStep struct {
	Below int
	Bonus int
}

// Berserker hits harder the lower the attacker's HP. Steps are checked in
// order and the first match wins.
type Berserker struct {
	Steps []BerserkerStep
}

// DefaultBerserker grants +10 below 1 HP, +5 below 75 and +2 below 120.
func DefaultBerserker() Berserker {
	return Berserker{Steps: []BerserkerStep{{Below: 1, Bonus: 10}, {Below: 75, Bonus: 5}, {Below: 120, Bonus: 2}}}
}

// Name implements Rule.
func (Berserker) Name() string { return "berserker" }

// ModifyDamage returns the bonus of the first step the attacker is under.
func (r Berserker) ModifyDamage(hc *HitContext) int {
	for _, s := range r.Steps {
		if hc.Attacker.Stats.HP < s.Below {
			return s.Bonus
		}
	}
	return 0
}

// Unerring turns a miss against a target carrying any status into a slight hit.
type Unerring struct{}

// Name implements Rule.
func (Unerring) Name() string { return "unerring" }

// OverrideOutcome upgrades a miss only; other tiers are kept.
func (Unerring) OverrideOutcome(hc *HitContext) (Tier, bool) {
	if hc.Tier == TierMiss && HasAnyStatus(hc.Target) {
		return TierSlight, true
	}
	return hc.Tier, false
}

// Reaper executes a wounded target and heals the attacker.
type Reaper struct {
	Threshold int
	Heal      int
}

// DefaultReaper executes below 40 HP and heals 25.
func DefaultReaper() Reaper { return Reaper{Threshold: 40, Heal: 25} }

// Name implements Rule.
func (Reaper) Name() string { return "reaper" }

// AfterDamage sets a wounded target to 0 HP and heals the attacker.
func (r Reaper) AfterDamage(a Arena, hc *HitContext) {
	hp := hc.Target.Stats.HP
	if hp <= 0 || hp >= r.Threshold {
		return
	}
	a.Logf("Embrace of Death: %s is instantly taken by %s!", hc.Target.Name, hc.Attacker.Name)
	hc.Target.Stats.HP = 0
	a.Defeat(hc.Target)
	heal(hc.Attacker, r.Heal)
}
