package constants

// Centralized constants for headers, env keys and routes.
const (
	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteCharacters     = "/characters"
	RouteCharacterByID  = "/characters/:characterID"
	RouteBattles        = "/battles"
	RouteBattleByKey    = "/battles/:battleKey"
	RouteBattleAction   = "/battles/:battleKey/action"
	RouteBattlePass     = "/battles/:battleKey/pass"
	RouteBattleHazard   = "/battles/:battleKey/hazard"
	RouteLeaderboard    = "/leaderboard"
	RouteVersion        = "/version"
	RouteHealth         = "/healthz"
	ParamBattleKey      = "battleKey"
	ParamCharacterID    = "characterID"
	QueryLimit          = "limit"
	DefaultListLimit    = 20
	MaxListLimit        = 100
	DefaultServerListen = ":8080"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest          = "Invalid request"
	ErrBattleNotFound          = "Battle not found"
	ErrCharacterNotFound       = "Character not found"
	ErrFailedFetchBattles      = "Failed to fetch battles"
	ErrFailedFetchLeaderboard  = "Failed to fetch leaderboard"
	ErrFailedCreateBattle      = "Failed to create battle"
	ErrFailedUpdateBattle      = "Failed to update battle"
	ErrInvalidLimit            = "limit must be a positive integer"
	ErrBattleNotInCombat       = "Battle is not in combat"
	ErrBattleAlreadyOver       = "Battle is over"
	ErrNotCombatantsTurn       = "It is not this combatant's turn"
	ErrInvalidTeams            = "Each team needs exactly 4 distinct characters"
	ErrInternalBattleViolation = "Battle state could not be advanced"
)

// Logging field names
const (
	LogFieldBattleKey = "battle_key"
	LogFieldCombatant = "combatant_id"
	LogFieldWinner    = "winner"
	LogFieldRound     = "round"
	LogFieldSource    = "source"
	LogFieldAddr      = "addr"
	LogFieldPath      = "path"
)
