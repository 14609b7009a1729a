package game

import (
	"time"

	"gorm.io/gorm"
)

// Battle lifecycle states.
const (
	StatusInProgress = "in_progress"
	StatusVictory    = "victory"
	StatusDefeat     = "defeat"
	StatusAbandoned  = "abandoned"
)

// Attribute is the elemental attribute carried by a weapon.
type Attribute string

const (
	AttrFire    Attribute = "fire"
	AttrIce     Attribute = "ice"
	AttrThunder Attribute = "thunder"
	AttrWind    Attribute = "wind"
	AttrEarth   Attribute = "earth"
	AttrLight   Attribute = "light"
	AttrDark    Attribute = "dark"
)

// RangeShape describes the geometric pattern a weapon's attack covers.
type RangeShape string

const (
	RangeSingleFront  RangeShape = "single_front"
	RangeSingleTarget RangeShape = "single_target"
	RangeRow          RangeShape = "row"
	RangeColumn       RangeShape = "column"
	RangeAll          RangeShape = "all"
	RangeSelf         RangeShape = "self"
)

// WeaponCategory groups weapons for damage-type classification.
type WeaponCategory string

const (
	CategoryBlade  WeaponCategory = "blade"
	CategoryRanged WeaponCategory = "ranged"
	CategoryMagic  WeaponCategory = "magic"
	CategoryShield WeaponCategory = "shield"
)

// DamageType classifies a computed damage result.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamageHealing  DamageType = "healing"
)

// Rarity is an attachment tier. Higher tiers scale effect magnitude.
type Rarity int

const (
	RarityCommon    Rarity = 1
	RarityRare      Rarity = 2
	RarityEpic      Rarity = 3
	RarityLegendary Rarity = 4
)

// Multiplier returns the fixed effect scalar for the tier.
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityRare:
		return 1.3
	case RarityEpic:
		return 1.6
	case RarityLegendary:
		return 2.0
	default:
		return 1.0
	}
}

func (r Rarity) Label() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}

// EffectType identifies one attachment stat effect.
type EffectType string

const (
	EffectAttackPowerBoost  EffectType = "attack_power_boost"
	EffectMaxHPBoost        EffectType = "max_hp_boost"
	EffectCriticalRateBoost EffectType = "critical_rate_boost"
	EffectWeaponPowerBoost  EffectType = "weapon_power_boost"
	EffectCooldownReduction EffectType = "cooldown_reduction"
)

// Weapon is an attack source definition. Stats come from the catalog config
// file and are intentionally not persisted (gorm:"-"); only the template row
// (name) lives in the database so the config stays the single source of truth.
type Weapon struct {
	gorm.Model
	Name           string         `json:"name"`
	Attribute      Attribute      `json:"attribute" gorm:"-"`
	Category       WeaponCategory `json:"category" gorm:"-"`
	Shape          RangeShape     `json:"range_shape" gorm:"-"`
	RangeRow       int            `json:"range_row" gorm:"-"`
	BasePower      int            `json:"base_power" gorm:"-"`
	CriticalChance float64        `json:"critical_chance" gorm:"-"`
	CooldownTurns  int            `json:"cooldown_turns" gorm:"-"`
	Traits         TraitSet       `json:"traits" gorm:"-"`
}

func (Weapon) TableName() string { return "weapon_templates" }

// DamageType classifies the damage this weapon deals: magic weapons deal
// magical damage, Light-attribute shields heal, everything else is physical.
func (w *Weapon) DamageType() DamageType {
	switch {
	case w.Category == CategoryMagic:
		return DamageMagical
	case w.Category == CategoryShield && w.Attribute == AttrLight:
		return DamageHealing
	default:
		return DamagePhysical
	}
}

// Card is a playable pairing of a weapon copy and a battlefield column.
// The weapon is copied at deal time so later attachment effects never mutate
// a card that is already in hand.
type Card struct {
	ID           int    `json:"id"`
	Weapon       Weapon `json:"weapon"`
	TargetColumn int    `json:"target_column"`
	DisplayName  string `json:"display_name"`
}

// AttachmentEffect is one stat delta carried by an attachment.
type AttachmentEffect struct {
	Type  EffectType `json:"type"`
	Value float64    `json:"value"`
}

// Attachment is a collectible persistent modifier. Like weapons, only the
// template row is persisted; tier and effects come from the catalog config.
type Attachment struct {
	gorm.Model
	Name     string             `json:"name"`
	Rarity   Rarity             `json:"rarity" gorm:"-"`
	Category string             `json:"category" gorm:"-"`
	Unique   bool               `json:"unique" gorm:"-"`
	Effects  []AttachmentEffect `json:"effects" gorm:"-"`
}

func (Attachment) TableName() string { return "attachment_templates" }

// SlotState is the equip-location state machine value.
type SlotState string

const (
	SlotEmpty    SlotState = "empty"
	SlotAttached SlotState = "attached"
	SlotEnhanced SlotState = "enhanced"
)

// AttachmentSlot holds at most one attachment by reference. Stat deltas are
// applied once at equip time, so the slot only records identity and level.
type AttachmentSlot struct {
	State            SlotState `json:"state"`
	AttachmentID     uint      `json:"attachment_id"`
	AttachmentName   string    `json:"attachment_name"`
	Rarity           Rarity    `json:"rarity"`
	AcquiredTurn     int       `json:"acquired_turn"`
	EnhancementLevel int       `json:"enhancement_level"`
}

// Clear resets the slot to empty. Previously applied stat deltas stay.
func (s *AttachmentSlot) Clear() {
	*s = AttachmentSlot{State: SlotEmpty}
}

// CasterStats is the stat block mutated in place by the attachment system.
// OriginalAttackPower keeps the pre-attachment value so the additive boost
// variant can be computed without replaying equip history.
type CasterStats struct {
	BaseAttackPower     int      `json:"base_attack_power"`
	OriginalAttackPower int      `json:"original_attack_power"`
	MaxHP               int      `json:"max_hp"`
	CurrentHP           int      `json:"current_hp"`
	Weapons             []Weapon `json:"weapons"`
}

// Position is a battlefield grid cell (row 0 is the front row).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Enemy is one grid-positioned opponent instance.
type Enemy struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	MaxHP      int    `json:"max_hp"`
	HP         int    `json:"hp"`
	Mechanical bool   `json:"mechanical"`
	Defeated   bool   `json:"defeated"`
}

// EnemyTemplate is a catalog enemy definition (config is source of truth).
type EnemyTemplate struct {
	gorm.Model
	Name       string `json:"name"`
	HP         int    `json:"hp" gorm:"-"`
	Mechanical bool   `json:"mechanical" gorm:"-"`
}

func (EnemyTemplate) TableName() string { return "enemy_templates" }

// Gate is the fixed structure at the back of a column. It becomes attackable
// once no living enemy remains in its column.
type Gate struct {
	Col       int  `json:"col"`
	MaxHP     int  `json:"max_hp"`
	HP        int  `json:"hp"`
	Destroyed bool `json:"destroyed"`
}

// FieldState is the serializable battlefield occupancy data. The
// battlefield package wraps it with the lookup behavior the targeting
// resolver consumes.
type FieldState struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Enemies []Enemy `json:"enemies"`
	Gates   []Gate  `json:"gates"`
}

// AttackTarget is one resolved combat target: exactly one of Enemy/Gate is
// set, or neither for self-targeting effects.
type AttackTarget struct {
	Position Position `json:"position"`
	Enemy    *Enemy   `json:"-"`
	Gate     *Gate    `json:"-"`
}

func (t *AttackTarget) IsEnemy() bool { return t.Enemy != nil }
func (t *AttackTarget) IsGate() bool  { return t.Gate != nil }

// DamageResult is the outcome of one attack-vs-target computation.
type DamageResult struct {
	WeaponName          string     `json:"weapon_name"`
	Target              Position   `json:"target"`
	BaseDamage          int        `json:"base_damage"`
	CriticalMultiplier  float64    `json:"critical_multiplier"`
	AttributeMultiplier float64    `json:"attribute_multiplier"`
	SpecialMultiplier   float64    `json:"special_multiplier"`
	FinalDamage         int        `json:"final_damage"`
	IsCritical          bool       `json:"is_critical"`
	DamageType          DamageType `json:"damage_type"`
	Effects             []string   `json:"effects"`
}

// HandState is the per-turn hand state machine value.
type HandState string

const (
	HandEmpty     HandState = "empty"
	HandGenerated HandState = "generated"
	HandCardUsed  HandState = "card_used"
	HandTurnEnded HandState = "turn_ended"
)

// TurnPhase tracks who owns the current turn.
type TurnPhase string

const (
	PhasePlayerTurn TurnPhase = "player_turn"
	PhaseEnemyTurn  TurnPhase = "enemy_turn"
)

// ActionBudget is the turn-scoped action counter.
type ActionBudget struct {
	Remaining int `json:"remaining"`
	Max       int `json:"max"`
	Bonus     int `json:"bonus"`
}

// Reset restores the budget at turn start.
func (b *ActionBudget) Reset() { b.Remaining = b.Max + b.Bonus }

// BattleState is the full serializable run state for one battle. It is
// stored as a JSON column on the Battle row and mutated only through the
// hand, engine and attachment components.
type BattleState struct {
	Turn        int              `json:"turn"`
	Phase       TurnPhase        `json:"phase"`
	Caster      CasterStats      `json:"caster"`
	Field       FieldState       `json:"field"`
	HandState   HandState        `json:"hand_state"`
	Hand        []*Card          `json:"hand"`
	Budget      ActionBudget     `json:"budget"`
	Slots       []AttachmentSlot `json:"slots"`
	Cooldowns   map[string]int   `json:"cooldowns"`
	WeaponUses  map[string]int   `json:"weapon_uses"`
	NextCardID  int              `json:"next_card_id"`
	CardsPlayed int              `json:"cards_played"`
	DamageDealt int              `json:"damage_dealt"`
}

// Battle is the persisted battle session row.
type Battle struct {
	gorm.Model
	Name            string      `json:"name" gorm:"size:32"`
	PlayerName      string      `json:"player_name"`
	JoinCode        string      `json:"join_code" gorm:"unique"`
	Status          string      `json:"status"`
	Message         string      `json:"message"`
	LastTurnSummary string      `json:"last_turn_summary"`
	TurnCount       int         `json:"turn_count"`
	ActionDeadline  time.Time   `json:"action_deadline"`
	StatsCounted    bool        `json:"-"`
	State           BattleState `json:"state" gorm:"serializer:json"`
}

func (Battle) TableName() string { return "battles" }

// BattleRecord stores aggregate results of finished battles for the
// leaderboard.
type BattleRecord struct {
	gorm.Model
	PlayerName  string `json:"player_name"`
	JoinCode    string `json:"join_code" gorm:"index"`
	Outcome     string `json:"outcome"`
	Turns       int    `json:"turns"`
	CardsPlayed int    `json:"cards_played"`
	DamageDealt int    `json:"damage_dealt"`
}

func (BattleRecord) TableName() string { return "battle_records" }
