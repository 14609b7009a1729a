package config

import (
	"fmt"
	"os"
	"strings"

	"encoding/json"

	"github.com/forestfirst/gatecrash/internal/game"
)

type weaponEntry struct {
	Name           string   `json:"name"`
	Attribute      string   `json:"attribute"`
	Category       string   `json:"category"`
	RangeShape     string   `json:"range_shape"`
	RangeRow       int      `json:"range_row"`
	BasePower      int      `json:"base_power"`
	CriticalChance float64  `json:"critical_chance"`
	CooldownTurns  int      `json:"cooldown_turns"`
	Traits         []string `json:"traits"`
}

type attachmentEffectEntry struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type attachmentEntry struct {
	Name     string                  `json:"name"`
	Rarity   int                     `json:"rarity"`
	Category string                  `json:"category"`
	Unique   bool                    `json:"unique"`
	Effects  []attachmentEffectEntry `json:"effects"`
}

type enemyEntry struct {
	Name       string `json:"name"`
	HitPoints  int    `json:"hit_points"`
	Mechanical bool   `json:"mechanical"`
}

type rawConfig struct {
	WeaponList     []weaponEntry     `json:"weapon_list"`
	AttachmentList []attachmentEntry `json:"attachment_list"`
	EnemyList      []enemyEntry      `json:"enemy_list"`
	Server         *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional path to the balance tuning file. Relative paths are resolved
	// against the working directory.
	BalanceFile string `json:"balance_file"`
}

// LoadedConfig carries the parsed catalogs and the server address to bind
// to. Free-form catalog tags (traits, attributes, shapes, effect types) are
// resolved into closed enum values here, at load time, so the combat core
// never does string matching.
type LoadedConfig struct {
	Weapons       []game.Weapon
	Attachments   []game.Attachment
	Enemies       []game.EnemyTemplate
	ServerAddress string
	BalanceFile   string
}

// LoadConfig reads the catalog configuration at path. It requires the keys
// `weapon_list`, `attachment_list` and `enemy_list` (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	weapons, err := parseWeapons(path, rc.WeaponList)
	if err != nil {
		return nil, err
	}
	attachments, err := parseAttachments(path, rc.AttachmentList)
	if err != nil {
		return nil, err
	}
	enemies, err := parseEnemies(path, rc.EnemyList)
	if err != nil {
		return nil, err
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Weapons:       weapons,
		Attachments:   attachments,
		Enemies:       enemies,
		ServerAddress: addr,
		BalanceFile:   strings.TrimSpace(rc.BalanceFile),
	}, nil
}

func parseWeapons(path string, entries []weaponEntry) ([]game.Weapon, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: weapon_list is empty (provide 'weapon_list' array)", path)
	}
	out := make([]game.Weapon, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, w := range entries {
		if w.Name == "" {
			return nil, fmt.Errorf("config file %s: weapon entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(w.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate weapon name '%s'", path, w.Name)
		}
		nameSet[ln] = struct{}{}
		if w.BasePower < 0 {
			return nil, fmt.Errorf("config file %s: weapon '%s' base_power must be >= 0", path, w.Name)
		}
		if w.CriticalChance < 0 || w.CriticalChance > 100 {
			return nil, fmt.Errorf("config file %s: weapon '%s' critical_chance must be in [0,100]", path, w.Name)
		}

		attr, err := game.ParseAttribute(w.Attribute)
		if err != nil {
			return nil, fmt.Errorf("config file %s: weapon '%s': %w", path, w.Name, err)
		}
		cat, err := game.ParseCategory(w.Category)
		if err != nil {
			return nil, fmt.Errorf("config file %s: weapon '%s': %w", path, w.Name, err)
		}
		shape, err := game.ParseRangeShape(w.RangeShape)
		if err != nil {
			return nil, fmt.Errorf("config file %s: weapon '%s': %w", path, w.Name, err)
		}
		traits, err := game.ParseTraits(w.Traits)
		if err != nil {
			return nil, fmt.Errorf("config file %s: weapon '%s': %w", path, w.Name, err)
		}
		out = append(out, game.Weapon{
			Name:           w.Name,
			Attribute:      attr,
			Category:       cat,
			Shape:          shape,
			RangeRow:       w.RangeRow,
			BasePower:      w.BasePower,
			CriticalChance: w.CriticalChance,
			CooldownTurns:  w.CooldownTurns,
			Traits:         traits,
		})
	}
	return out, nil
}

func parseAttachments(path string, entries []attachmentEntry) ([]game.Attachment, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: attachment_list is empty (provide 'attachment_list' array)", path)
	}
	out := make([]game.Attachment, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, a := range entries {
		if a.Name == "" {
			return nil, fmt.Errorf("config file %s: attachment entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(a.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate attachment name '%s'", path, a.Name)
		}
		nameSet[ln] = struct{}{}
		if a.Rarity < int(game.RarityCommon) || a.Rarity > int(game.RarityLegendary) {
			return nil, fmt.Errorf("config file %s: attachment '%s' rarity must be in [1,4]", path, a.Name)
		}
		if len(a.Effects) == 0 {
			return nil, fmt.Errorf("config file %s: attachment '%s' has no effects", path, a.Name)
		}
		effects := make([]game.AttachmentEffect, 0, len(a.Effects))
		for _, e := range a.Effects {
			et, err := game.ParseEffectType(e.Type)
			if err != nil {
				return nil, fmt.Errorf("config file %s: attachment '%s': %w", path, a.Name, err)
			}
			if err := validateEffectValue(et, e.Value); err != nil {
				return nil, fmt.Errorf("config file %s: attachment '%s': %w", path, a.Name, err)
			}
			effects = append(effects, game.AttachmentEffect{Type: et, Value: e.Value})
		}
		out = append(out, game.Attachment{
			Name:     a.Name,
			Rarity:   game.Rarity(a.Rarity),
			Category: a.Category,
			Unique:   a.Unique,
			Effects:  effects,
		})
	}
	return out, nil
}

// validateEffectValue rejects catalog effect values outside their band.
// Boost effects are proportions of the base stat; critical rate is in
// percentage points and cooldown reduction in turns. Bad data fails at load,
// not mid-combat.
func validateEffectValue(t game.EffectType, v float64) error {
	switch t {
	case game.EffectAttackPowerBoost, game.EffectMaxHPBoost, game.EffectWeaponPowerBoost:
		if v <= 0 || v > 1 {
			return fmt.Errorf("effect '%s' value %g must be a proportion in (0,1]", t, v)
		}
	case game.EffectCriticalRateBoost:
		if v <= 0 || v > 100 {
			return fmt.Errorf("effect '%s' value %g must be in (0,100]", t, v)
		}
	case game.EffectCooldownReduction:
		if v <= 0 {
			return fmt.Errorf("effect '%s' value %g must be > 0", t, v)
		}
	}
	return nil
}

func parseEnemies(path string, entries []enemyEntry) ([]game.EnemyTemplate, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: enemy_list is empty (provide 'enemy_list' array)", path)
	}
	out := make([]game.EnemyTemplate, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: enemy entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate enemy name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		if e.HitPoints <= 0 {
			return nil, fmt.Errorf("config file %s: enemy '%s' hit_points must be > 0", path, e.Name)
		}
		out = append(out, game.EnemyTemplate{
			Name:       e.Name,
			HP:         e.HitPoints,
			Mechanical: e.Mechanical,
		})
	}
	return out, nil
}
