package game

// Status keys understood by the engine. Keys not listed here are stored and
// expire like any other status but have no mechanical effect.
const (
	StatusStun       = "stun"
	StatusSleep      = "sleep"
	StatusSilence    = "silence"
	StatusBurn       = "burn"
	StatusPoison     = "poison"
	StatusRegen      = "regen"
	StatusShield     = "shield"
	StatusDR         = "dr"
	StatusTaunt      = "taunt"
	StatusWeaken     = "weaken"
	StatusBind       = "bind"
	StatusBlind      = "blind"
	StatusAntiHeal   = "antiHeal"
	StatusReviveLock = "reviveLock"
	StatusForget     = "forget"
	StatusRerollLow  = "rerollLow"
	StatusRerollHigh = "rerollHigh"
)

// Default magnitudes used when a ticking status carries no power.
const (
	DefaultDoTPower   = 2
	DefaultRegenPower = 5
)
