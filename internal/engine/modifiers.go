package engine

import "github.com/ericogr/clash-of-gods/internal/game"

// --- Damage modifiers --------------------------------------------------

// baseDamage is ability power plus the scaling stat plus any ability bonus.
func baseDamage(attacker, target *game.Combatant, ab *game.Ability) int {
	stat := attacker.Stats.STR
	if ab.Type == game.Magical {
		stat = attacker.Stats.MAG
	}
	return ab.Power + stat + abilityBonus(attacker, target, ab.Bonus)
}

func abilityBonus(attacker, target *game.Combatant, b *game.Bonus) int {
	if b == nil {
		return 0
	}
	switch b.Kind {
	case game.BonusFlat:
		return b.Amount
	case game.BonusStat:
		v, _ := game.StatValue(attacker.Stats, b.Stat)
		return v * b.Percent / 100
	case game.BonusConditional:
		cond, err := game.ParseCondition(b.When)
		if err != nil {
			return 0
		}
		if conditionHolds(cond, attacker, target) {
			return b.Amount
		}
	}
	return 0
}

func conditionHolds(c game.Condition, attacker, target *game.Combatant) bool {
	switch c.Kind {
	case game.CondTargetHasStatus:
		return HasStatus(target, c.Status)
	case game.CondAttackerHPBelow:
		return attacker.Stats.HP < c.Threshold
	case game.CondTargetHPBelow:
		return target.Stats.HP < c.Threshold
	}
	return false
}

// damageReduction is the power of the target's active dr status.
func damageReduction(target *game.Combatant) int {
	if r := statusPower(target, game.StatusDR); r > 0 {
		return r
	}
	return 0
}

// mitigate applies damage reduction unless the tier deals true damage.
func mitigate(total int, t Tier, target *game.Combatant) int {
	if t.TrueDamage() {
		return total
	}
	total -= damageReduction(target)
	if total < 0 {
		return 0
	}
	return total
}
