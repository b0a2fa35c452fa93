package engine

import (
	"fmt"
	"sort"

	"github.com/ericogr/clash-of-gods/internal/dice"
	"github.com/ericogr/clash-of-gods/internal/game"
)

// Engine resolves battle transitions. It holds no battle state; every call
// works on the battle it is given and either commits all of its changes
// or none.
type Engine struct {
	roller  dice.Roller
	rules   *RuleBook
	hazards map[string]Hazard
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default rule bindings.
func WithRules(rb *RuleBook) Option {
	return func(e *Engine) { e.rules = rb }
}

// WithHazard registers h under its name, replacing any hazard with the same name.
func WithHazard(h Hazard) Option {
	return func(e *Engine) { e.hazards[h.Name()] = h }
}

// New returns an engine using r for every die roll.
func New(r dice.Roller, opts ...Option) *Engine {
	e := &Engine{
		roller:  r,
		rules:   DefaultRuleBook(),
		hazards: map[string]Hazard{HazardThunderstorm: DefaultThunderstorm()},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Hazards lists the registered hazard names in sorted order.
func (e *Engine) Hazards() []string {
	out := make([]string, 0, len(e.hazards))
	for name := range e.hazards {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Rules lists the special-rule bindings as "id=rule".
func (e *Engine) Rules() []string { return e.rules.Bindings() }

// Action is one attack request.
type Action struct {
	AttackerID string `json:"attacker_id"`
	AbilityID  string `json:"ability_id"`
	TargetID   string `json:"target_id"`
}

// transact runs fn on a copy of b and commits the copy only when fn and
// the invariant check both succeed.
func (e *Engine) transact(b *game.Battle, fn func(bc *battleContext) error) (*Report, error) {
	next := b.Clone()
	bc := newBattleContext(next, e.roller)
	if err := fn(bc); err != nil {
		return nil, err
	}
	if err := Validate(next); err != nil {
		return nil, err
	}
	next.Log = append(next.Log, bc.lines...)
	*b = *next
	return bc.report(), nil
}

// Start validates both rosters, rolls round one initiative and moves the
// battle into combat.
func (e *Engine) Start(b *game.Battle) (*Report, error) {
	return e.transact(b, func(bc *battleContext) error {
		if err := validateRosters(bc.b); err != nil {
			return err
		}
		if err := transition(bc.b, eventStart); err != nil {
			return err
		}
		order, err := RollInitiative(bc.b.Living(), bc.rng)
		if err != nil {
			return err
		}
		bc.b.Round = 1
		bc.b.Order = order
		bc.b.TurnIndex = 0
		if bc.b.Hazards == nil {
			bc.b.Hazards = map[string]bool{}
		}
		bc.Logf("Round 1 begins! Initiative: %s", formatOrder(bc.b))
		return nil
	})
}

func validateRosters(b *game.Battle) error {
	seen := map[string]bool{}
	for i, t := range b.Teams {
		if len(t) != game.TeamSize {
			return fmt.Errorf("%w: team %s has %d", ErrTeamSize, game.TeamName(i), len(t))
		}
		for _, c := range t {
			switch {
			case c.ID == "":
				return fmt.Errorf("%w: %q has no id", ErrMalformedCombatant, c.Name)
			case c.Stats.HP <= 0:
				return fmt.Errorf("%w: %s starts with %d HP", ErrMalformedCombatant, c.ID, c.Stats.HP)
			case len(c.Abilities) == 0:
				return fmt.Errorf("%w: %s has no abilities", ErrMalformedCombatant, c.ID)
			case seen[c.ID]:
				return fmt.Errorf("%w: %s", ErrDuplicateCombatant, c.ID)
			}
			seen[c.ID] = true
		}
	}
	return nil
}

// Resolve performs one attack by the combatant holding the turn.
func (e *Engine) Resolve(b *game.Battle, act Action) (*Report, error) {
	return e.transact(b, func(bc *battleContext) error {
		attacker, err := turnHolder(bc.b, act.AttackerID)
		if err != nil {
			return err
		}
		ab := attacker.Ability(act.AbilityID)
		if ab == nil {
			return fmt.Errorf("%w: %s has no %q", ErrUnknownAbility, attacker.ID, act.AbilityID)
		}
		target := bc.b.Find(act.TargetID)
		if target == nil {
			return fmt.Errorf("%w: target %q", ErrUnknownCombatant, act.TargetID)
		}
		if bc.b.TeamOf(target.ID) != opponentOf(bc.b.TeamOf(attacker.ID)) {
			return fmt.Errorf("%w: %s and %s are allies", ErrInvalidTarget, attacker.ID, target.ID)
		}
		if target.Defeated() {
			return fmt.Errorf("%w: target %s", ErrCombatantDefeated, target.ID)
		}

		if HasStatus(attacker, game.StatusStun) || HasStatus(attacker, game.StatusSleep) {
			bc.Logf("%s is disabled and loses the turn.", attacker.Name)
			return e.advanceTurn(bc)
		}

		e.attack(bc, attacker, target, ab)
		attacker.LastCast = ab.ID
		if over, err := e.checkWin(bc); over || err != nil {
			return err
		}
		return e.advanceTurn(bc)
	})
}

// Pass ends the turn without acting. An empty actorID means the current
// turn holder.
func (e *Engine) Pass(b *game.Battle, actorID string) (*Report, error) {
	return e.transact(b, func(bc *battleContext) error {
		if actorID == "" {
			if err := checkCombat(bc.b); err != nil {
				return err
			}
			actorID = bc.b.Order[bc.b.TurnIndex].CombatantID
		}
		actor, err := turnHolder(bc.b, actorID)
		if err != nil {
			return err
		}
		bc.Logf("%s does nothing.", actor.Name)
		return e.advanceTurn(bc)
	})
}

// ToggleHazard flips an arena hazard. The change takes effect at the next
// round end.
func (e *Engine) ToggleHazard(b *game.Battle, name string) (*Report, error) {
	return e.transact(b, func(bc *battleContext) error {
		if bc.b.Phase == game.PhaseOver {
			return ErrBattleOver
		}
		if _, ok := e.hazards[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHazard, name)
		}
		if bc.b.Hazards == nil {
			bc.b.Hazards = map[string]bool{}
		}
		on := !bc.b.Hazards[name]
		bc.b.Hazards[name] = on
		if on {
			bc.Logf("%s activated.", name)
		} else {
			bc.Logf("%s deactivated.", name)
		}
		return nil
	})
}

func checkCombat(b *game.Battle) error {
	switch b.Phase {
	case game.PhaseCombat:
		if len(b.Order) == 0 || b.TurnIndex >= len(b.Order) {
			return fmt.Errorf("%w: no turn holder", ErrInvariant)
		}
		return nil
	case game.PhaseOver:
		return ErrBattleOver
	}
	return ErrBattleNotActive
}

// turnHolder returns the combatant with id after checking it exists, is
// alive and holds the turn.
func turnHolder(b *game.Battle, id string) (*game.Combatant, error) {
	if err := checkCombat(b); err != nil {
		return nil, err
	}
	c := b.Find(id)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCombatant, id)
	}
	if c.Defeated() {
		return nil, fmt.Errorf("%w: %s", ErrCombatantDefeated, id)
	}
	if cur := b.Order[b.TurnIndex].CombatantID; cur != id {
		return nil, fmt.Errorf("%w: %s acts now, not %s", ErrNotYourTurn, cur, id)
	}
	return c, nil
}

// attack runs the damage pipeline: roll, base damage, damage modifier,
// outcome override, mitigation, application, post-damage rule, effects.
func (e *Engine) attack(bc *battleContext, attacker, target *game.Combatant, ab *game.Ability) {
	hc := &HitContext{Attacker: attacker, Target: target, Ability: ab, Roll: bc.rng.D20()}
	hc.Tier = TierFor(hc.Roll)
	rule := e.rules.For(attacker.ID)

	hc.Base = baseDamage(attacker, target, ab)
	if m, ok := rule.(DamageModifier); ok {
		hc.Base += m.ModifyDamage(hc)
	}
	hc.Total = totalFor(hc.Tier, hc.Base)
	if o, ok := rule.(OutcomeOverride); ok {
		if t, changed := o.OverrideOutcome(hc); changed {
			hc.Tier = t
			hc.Total = totalFor(t, hc.Base)
		}
	}

	hc.Dealt = applyDamage(target, mitigate(hc.Total, hc.Tier, target))
	bc.Logf("%s uses %s on %s - roll %d (%s). Deals %d damage.", attacker.Name, ab.Name, target.Name, hc.Roll, hc.Tier, hc.Dealt)
	if target.Defeated() {
		bc.Defeat(target)
	}
	if p, ok := rule.(PostDamageEffect); ok {
		p.AfterDamage(bc, hc)
	}
	if len(ab.Effects) > 0 {
		rollEffects(bc, target, ab.Effects)
	}
}

// rollEffects makes one d20 check for the whole effect list.
func rollEffects(bc *battleContext, target *game.Combatant, effects []game.Effect) {
	roll := bc.rng.D20()
	if roll <= effectFailMax {
		bc.Logf("Effect check d20(%d) fails.", roll)
		return
	}
	crit := roll >= effectCrit
	if crit {
		bc.Logf("Effect check d20(%d): CRITICAL EFFECT!", roll)
	} else {
		bc.Logf("Effect check d20(%d): success.", roll)
	}
	for _, eff := range effects {
		if crit {
			eff = boosted(eff)
		}
		AddStatus(target, eff)
	}
}

// boosted applies an effect's critical boost, or one extra round when it
// declares none.
func boosted(eff game.Effect) game.Effect {
	if eff.Boost == nil {
		eff.Duration++
		return eff
	}
	eff.Duration += eff.Boost.Duration
	eff.Power += eff.Boost.Power
	return eff
}
