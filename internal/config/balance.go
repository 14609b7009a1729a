package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forestfirst/gatecrash/internal/attachments"
	"github.com/forestfirst/gatecrash/internal/engine"
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/hand"
)

// Balance is the numeric tuning of the combat core, loadable from YAML so
// designers can adjust it without a rebuild. Zero-valued fields fall back to
// the defaults.
type Balance struct {
	Hand struct {
		Size                int  `yaml:"size"`
		BaseActions         int  `yaml:"base_actions"`
		AllowDuplicateCards bool `yaml:"allow_duplicate_cards"`
	} `yaml:"hand"`

	Damage struct {
		BaseCriticalMultiplier float64            `yaml:"base_critical_multiplier"`
		MinDamageFloor         int                `yaml:"min_damage_floor"`
		AttributeMultipliers   map[string]float64 `yaml:"attribute_multipliers"`
		MechanicalBonus        map[string]float64 `yaml:"mechanical_bonus"`
		Falloff                map[string]float64 `yaml:"falloff"`
	} `yaml:"damage"`

	Attachments struct {
		InitialSlots        int     `yaml:"initial_slots"`
		GrowthBatch         int     `yaml:"growth_batch"`
		UnlimitedSlots      *bool   `yaml:"allow_unlimited_slots"`
		MaxEnhancementLevel int     `yaml:"max_enhancement_level"`
		LegendaryWeight     float64 `yaml:"legendary_weight"`
		EpicWeight          float64 `yaml:"epic_weight"`
		RareWeight          float64 `yaml:"rare_weight"`
		OptionCount         int     `yaml:"option_count"`
		// attack_boost_compounds selects the stacking variant: true scales
		// each boost from the caster's current base attack, false from the
		// pre-attachment original.
		AttackBoostCompounds *bool `yaml:"attack_boost_compounds"`
	} `yaml:"attachments"`

	Caster struct {
		BaseAttackPower    int `yaml:"base_attack_power"`
		MaxHP              int `yaml:"max_hp"`
		MaxEquippedWeapons int `yaml:"max_equipped_weapons"`
	} `yaml:"caster"`

	Field struct {
		Rows       int `yaml:"rows"`
		Cols       int `yaml:"cols"`
		EnemyCount int `yaml:"enemy_count"`
		GateHP     int `yaml:"gate_hp"`
	} `yaml:"field"`

	// ActionTimeoutSeconds abandons a battle whose player idles past the
	// deadline. Zero disables the scanner.
	ActionTimeoutSeconds int `yaml:"action_timeout_seconds"`
}

// DefaultBalance returns the stock tuning.
func DefaultBalance() Balance {
	var b Balance
	b.Hand.Size = 5
	b.Hand.BaseActions = 3
	b.Damage.BaseCriticalMultiplier = 2.0
	b.Damage.MinDamageFloor = 1
	b.Attachments.InitialSlots = 5
	b.Attachments.GrowthBatch = 5
	b.Attachments.MaxEnhancementLevel = 5
	b.Attachments.LegendaryWeight = 3
	b.Attachments.EpicWeight = 12
	b.Attachments.RareWeight = 25
	b.Attachments.OptionCount = 3
	b.Caster.BaseAttackPower = 1000
	b.Caster.MaxHP = 2000
	b.Caster.MaxEquippedWeapons = 5
	b.Field.Rows = 3
	b.Field.Cols = 3
	b.Field.EnemyCount = 5
	b.Field.GateHP = 3000
	b.ActionTimeoutSeconds = 0
	return b
}

// LoadBalance reads the tuning file and overlays it on the defaults. An
// empty path returns the defaults unchanged.
func LoadBalance(path string) (Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("failed to read balance file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("failed to parse balance file %s: %w", path, err)
	}
	if err := b.validate(); err != nil {
		return b, fmt.Errorf("balance file %s: %w", path, err)
	}
	return b, nil
}

func (b Balance) validate() error {
	if b.Hand.Size < 1 {
		return fmt.Errorf("hand.size must be >= 1")
	}
	if b.Hand.BaseActions < 1 {
		return fmt.Errorf("hand.base_actions must be >= 1")
	}
	if b.Damage.MinDamageFloor < 0 {
		return fmt.Errorf("damage.min_damage_floor must be >= 0")
	}
	if b.Damage.BaseCriticalMultiplier < 1 {
		return fmt.Errorf("damage.base_critical_multiplier must be >= 1")
	}
	w := b.Attachments.LegendaryWeight + b.Attachments.EpicWeight + b.Attachments.RareWeight
	if b.Attachments.LegendaryWeight < 0 || b.Attachments.EpicWeight < 0 || b.Attachments.RareWeight < 0 || w > 100 {
		return fmt.Errorf("attachment rarity weights must be >= 0 and sum to at most 100")
	}
	if b.Attachments.MaxEnhancementLevel < 0 {
		return fmt.Errorf("attachments.max_enhancement_level must be >= 0")
	}
	if b.Field.Rows < 1 || b.Field.Cols < 1 {
		return fmt.Errorf("field dimensions must be >= 1")
	}
	if b.Field.EnemyCount < 1 {
		return fmt.Errorf("field.enemy_count must be >= 1")
	}
	for attr := range b.Damage.AttributeMultipliers {
		if _, err := game.ParseAttribute(attr); err != nil {
			return fmt.Errorf("damage.attribute_multipliers: %w", err)
		}
	}
	for attr := range b.Damage.MechanicalBonus {
		if _, err := game.ParseAttribute(attr); err != nil {
			return fmt.Errorf("damage.mechanical_bonus: %w", err)
		}
	}
	for shape := range b.Damage.Falloff {
		if _, err := game.ParseRangeShape(shape); err != nil {
			return fmt.Errorf("damage.falloff: %w", err)
		}
	}
	return nil
}

// EngineConfig converts the tuning into the damage pipeline config. Table
// entries from the file override the stock tables per key.
func (b Balance) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.BaseCriticalMultiplier = b.Damage.BaseCriticalMultiplier
	cfg.MinDamageFloor = b.Damage.MinDamageFloor
	for attr, m := range b.Damage.AttributeMultipliers {
		a, _ := game.ParseAttribute(attr)
		cfg.AttributeMultipliers[a] = m
	}
	for attr, m := range b.Damage.MechanicalBonus {
		a, _ := game.ParseAttribute(attr)
		cfg.MechanicalBonus[a] = m
	}
	for shape, m := range b.Damage.Falloff {
		s, _ := game.ParseRangeShape(shape)
		cfg.Falloff[s] = m
	}
	return cfg
}

// AttachmentConfig converts the tuning into the attachment system config.
func (b Balance) AttachmentConfig() attachments.Config {
	unlimited := true
	if b.Attachments.UnlimitedSlots != nil {
		unlimited = *b.Attachments.UnlimitedSlots
	}
	compounds := true
	if b.Attachments.AttackBoostCompounds != nil {
		compounds = *b.Attachments.AttackBoostCompounds
	}
	return attachments.Config{
		InitialSlots:        b.Attachments.InitialSlots,
		GrowthBatch:         b.Attachments.GrowthBatch,
		UnlimitedSlots:      unlimited,
		MaxEnhancementLevel: b.Attachments.MaxEnhancementLevel,
		RarityWeights: attachments.Weights{
			Legendary: b.Attachments.LegendaryWeight,
			Epic:      b.Attachments.EpicWeight,
			Rare:      b.Attachments.RareWeight,
		},
		CompoundAttackBoost: compounds,
	}
}

// HandConfig converts the tuning into the hand machine config.
func (b Balance) HandConfig() hand.Config {
	return hand.Config{HandSize: b.Hand.Size, BaseActions: b.Hand.BaseActions}
}
