package constants

// Centralized constants for env keys, headers and shared defaults.
const (
	// Environment variable keys
	EnvConfigFile    = "GATECRASH_CONFIG"
	EnvBalanceFile   = "GATECRASH_BALANCE"
	EnvDatabasePath  = "GATECRASH_DB"
	EnvServerAddress = "GATECRASH_ADDR"
	EnvDebugLogging  = "GATECRASH_DEBUG"

	// Defaults used when the environment provides nothing
	DefaultConfigFile   = "config.json"
	DefaultDatabasePath = "gatecrash.db"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteWeapons        = "/weapons"
	RouteAttachmentsAll = "/attachments"
	RouteLeaderboard    = "/leaderboard"
	RouteVersion        = "/version"
	RouteEvents         = "/events/:code"

	RouteBattles           = "/battles"
	RouteBattleByCode      = "/battles/:code"
	RouteBattleHand        = "/battles/:code/hand"
	RouteBattlePlay        = "/battles/:code/play"
	RouteBattlePreview     = "/battles/:code/preview"
	RouteBattleEndTurn     = "/battles/:code/end-turn"
	RouteBattleAbandon     = "/battles/:code/abandon"
	RouteBattleOptions     = "/battles/:code/attachments/options"
	RouteBattleEquip       = "/battles/:code/attachments/equip"
	RouteBattleSlot        = "/battles/:code/attachments/:slot"
	RouteBattleSlotEnhance = "/battles/:code/attachments/:slot/enhance"
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
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidBattleCode = "Invalid battle code"
	ErrBattleNotFound    = "Battle not found"
	ErrBattleOver        = "Battle is already over"
	ErrInvalidSlotIndex  = "Invalid slot index"

	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedUpdateBattle     = "Failed to update battle"
	ErrFailedFetchBattle      = "Failed to fetch battle"
	ErrFailedFetchWeapons     = "Failed to fetch weapons"
	ErrFailedFetchAttachments = "Failed to fetch attachments"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrPlayerNameExceeds      = "Player name exceeds 32 characters"
	ErrNotPlayerTurn          = "Not the player's turn"
)

// Logging field names
const (
	LogFieldBattleCode = "battle_code"
	LogFieldTurn       = "turn"
	LogFieldCard       = "card"
	LogFieldWeapon     = "weapon"
	LogFieldSlot       = "slot"
	LogFieldAttachment = "attachment"
	LogFieldDamage     = "damage"
	LogFieldStatus     = "status"
	LogFieldAddr       = "addr"
	LogFieldSource     = "source"
)
