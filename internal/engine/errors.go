package engine

import "errors"

// Invalid actions. These are returned before any state changes.
var (
	ErrBattleNotActive   = errors.New("battle is not in combat")
	ErrBattleOver        = errors.New("battle is over")
	ErrNotYourTurn       = errors.New("combatant does not hold the turn")
	ErrUnknownCombatant  = errors.New("unknown combatant")
	ErrCombatantDefeated = errors.New("combatant is defeated")
	ErrUnknownAbility    = errors.New("ability not owned by attacker")
	ErrInvalidTarget     = errors.New("target is not an opponent")
	ErrUnknownHazard     = errors.New("unknown hazard")
)

// Malformed battle setup.
var (
	ErrTeamSize           = errors.New("each team must field exactly 4 combatants")
	ErrDuplicateCombatant = errors.New("duplicate combatant id")
	ErrMalformedCombatant = errors.New("malformed combatant")
)

// Internal defects. A correct engine never returns these.
var (
	ErrInitiativeStalled = errors.New("initiative could not be resolved")
	ErrPhaseTransition   = errors.New("invalid phase transition")
	ErrInvariant         = errors.New("battle invariant violated")
)
