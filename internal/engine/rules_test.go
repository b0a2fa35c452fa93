package engine

import (
	"testing"

	"github.com/ericogr/clash-of-gods/internal/game"
)

func named(c game.Combatant, name string) game.Combatant {
	c.Name = name
	return c
}

func TestReaper_ExecutesWoundedTarget(t *testing.T) {
	th := named(fighter("THANATOS", 100, 0), "Thanatos")
	battle := combat(t, []game.Combatant{th}, []game.Combatant{fighter("B1", 45, 0)}, "THANATOS", "B1")
	rep, err := scripted(10).Resolve(battle, Action{AttackerID: "THANATOS", AbilityID: "strike", TargetID: "B1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLines(t, rep.Lines, []string{
		"Thanatos uses Strike on B1 - roll 10 (slight). Deals 30 damage.",
		"Embrace of Death: B1 is instantly taken by Thanatos!",
		"B1 is defeated!",
		"Team B has fallen. GG!",
	})
	if hp := battle.Find("THANATOS").Stats.HP; hp != 125 {
		t.Fatalf("expected reaper heal to 125, got %d", hp)
	}
}

func TestReaper_AppliesOnMiss(t *testing.T) {
	th := named(fighter("THANATOS", 100, 0), "Thanatos")
	battle := combat(t,
		[]game.Combatant{th},
		[]game.Combatant{fighter("B1", 30, 0), fighter("B2", 100, 0)},
		"THANATOS", "B1", "B2")
	if _, err := scripted(1).Resolve(battle, Action{AttackerID: "THANATOS", AbilityID: "strike", TargetID: "B1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if battle.Find("B1").Stats.HP != 0 {
		t.Fatalf("expected B1 executed")
	}
	if len(battle.Order) != 2 || battle.Current().ID != "B2" {
		t.Fatalf("expected B1 pruned and B2 next, got %+v", battle.Order)
	}
}

func TestReaper_SparesHealthyTarget(t *testing.T) {
	battle := combat(t,
		[]game.Combatant{fighter("THANATOS", 100, 0)},
		[]game.Combatant{fighter("B1", 70, 0)},
		"THANATOS", "B1")
	if _, err := scripted(10).Resolve(battle, Action{AttackerID: "THANATOS", AbilityID: "strike", TargetID: "B1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hp := battle.Find("B1").Stats.HP; hp != 40 {
		t.Fatalf("expected B1 left at 40, got %d", hp)
	}
	if battle.Find("THANATOS").Stats.HP != 100 {
		t.Fatalf("no heal expected without an execute")
	}
}

func TestBerserker_Thresholds(t *testing.T) {
	for _, tc := range []struct {
		hp   int
		want int
	}{
		{70, 15}, {100, 12}, {119, 12}, {120, 10}, {200, 10},
	} {
		battle := combat(t,
			[]game.Combatant{fighter("ARES", tc.hp, 0)},
			[]game.Combatant{fighter("B1", 100, 0)},
			"ARES", "B1")
		if _, err := scripted(16).Resolve(battle, Action{AttackerID: "ARES", AbilityID: "strike", TargetID: "B1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := 100 - battle.Find("B1").Stats.HP; got != tc.want {
			t.Fatalf("HP %d: expected %d damage, got %d", tc.hp, tc.want, got)
		}
	}
}

func TestBerserker_StepOrder(t *testing.T) {
	hc := &HitContext{Attacker: &game.Combatant{Stats: game.Stats{HP: 0}}}
	if got := DefaultBerserker().ModifyDamage(hc); got != 10 {
		t.Fatalf("expected +10 below 1 HP, got %d", got)
	}
}

func TestUnerring_UpgradesMissOnAfflictedTarget(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status bool
		want   int
		line   string
	}{
		{"afflicted", true, 30, "ARTEMIS uses Strike on B1 - roll 2 (slight). Deals 30 damage."},
		{"clean", false, 0, "ARTEMIS uses Strike on B1 - roll 2 (miss). Deals 0 damage."},
	} {
		b := fighter("B1", 100, 0)
		if tc.status {
			b.Statuses = []game.Effect{{Key: game.StatusBlind, Duration: 1}}
		}
		battle := combat(t, []game.Combatant{fighter("ARTEMIS", 100, 0)}, []game.Combatant{b}, "ARTEMIS", "B1")
		rep, err := scripted(2).Resolve(battle, Action{AttackerID: "ARTEMIS", AbilityID: "strike", TargetID: "B1"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got := 100 - battle.Find("B1").Stats.HP; got != tc.want {
			t.Fatalf("%s: expected %d damage, got %d", tc.name, tc.want, got)
		}
		if rep.Lines[0] != tc.line {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.line, rep.Lines[0])
		}
	}
}

func TestUnerring_LeavesHitsAlone(t *testing.T) {
	target := &game.Combatant{Statuses: []game.Effect{{Key: game.StatusBurn, Duration: 1}}}
	for _, tier := range []Tier{TierSlight, TierNormal, TierCrit} {
		if got, changed := (Unerring{}).OverrideOutcome(&HitContext{Target: target, Tier: tier}); changed || got != tier {
			t.Fatalf("tier %s should not change, got %s", tier, got)
		}
	}
}

func TestRuleBook_CustomBindings(t *testing.T) {
	battle := combat(t,
		[]game.Combatant{fighter("ARES", 50, 0)},
		[]game.Combatant{fighter("B1", 100, 0)},
		"ARES", "B1")
	e := New(scriptedRoller(16), WithRules(NewRuleBook()))
	if _, err := e.Resolve(battle, Action{AttackerID: "ARES", AbilityID: "strike", TargetID: "B1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := 100 - battle.Find("B1").Stats.HP; got != 10 {
		t.Fatalf("expected no berserker bonus without a binding, got %d", got)
	}

	rb := NewRuleBook()
	r, err := RuleByName("Reaper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb.Bind("HADES", r)
	if rb.For("HADES") == nil || rb.For("ARES") != nil {
		t.Fatalf("unexpected bindings %v", rb.Bindings())
	}
	if _, err := RuleByName("vampire"); err == nil {
		t.Fatalf("expected an error for an unknown rule")
	}
}
