// Package attachments owns the persistent modifier system: a bounded,
// optionally growable set of equip slots whose effects are applied once, at
// equip time, as permanent deltas to the caster and every currently
// equipped weapon.
package attachments

import (
	"errors"
	"fmt"
	"math"

	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/rng"
)

var (
	ErrUnknownAttachment = errors.New("unknown attachment")
	ErrNoEffects         = errors.New("attachment has no effects")
	ErrUnknownEffect     = errors.New("attachment has an unknown effect type")
	ErrUniqueEquipped    = errors.New("unique attachment is already equipped")
	ErrSlotOutOfRange    = errors.New("slot index out of range")
	ErrSlotEmpty         = errors.New("slot is empty")
	ErrEnhancementCap    = errors.New("slot is at the enhancement cap")
)

// Weights are cumulative rarity percentages; common takes the remainder.
type Weights struct {
	Legendary float64
	Epic      float64
	Rare      float64
}

// Config tunes the slot pool and the rarity draw.
type Config struct {
	InitialSlots        int
	GrowthBatch         int
	UnlimitedSlots      bool
	MaxEnhancementLevel int
	RarityWeights       Weights
	// CompoundAttackBoost selects how AttackPowerBoost scales: from the
	// caster's current base power (stacking boosts compound) or from the
	// original pre-attachment value when disabled.
	CompoundAttackBoost bool
}

// DefaultConfig returns the stock attachment tuning.
func DefaultConfig() Config {
	return Config{
		InitialSlots:        5,
		GrowthBatch:         5,
		UnlimitedSlots:      true,
		MaxEnhancementLevel: 5,
		RarityWeights:       Weights{Legendary: 3, Epic: 12, Rare: 25},
		CompoundAttackBoost: true,
	}
}

// System applies attachments to a battle state. It holds no battle state of
// its own; slots and caster stats live in the BattleState it operates on.
type System struct {
	cfg    Config
	pool   []game.Attachment
	src    rng.RandomSource
	pub    *game.Publisher
	growth GrowthStrategy
}

// NewSystem builds the system over the attachment catalog. The growth
// strategy follows the unlimited-slots setting.
func NewSystem(cfg Config, pool []game.Attachment, src rng.RandomSource, pub *game.Publisher) *System {
	if src == nil {
		src = rng.Default()
	}
	var growth GrowthStrategy = EvictFront{}
	if cfg.UnlimitedSlots {
		growth = GrowBatch{Batch: cfg.GrowthBatch}
	}
	return &System{cfg: cfg, pool: pool, src: src, pub: pub, growth: growth}
}

// InitSlots returns a fresh empty slot pool of the configured size.
func (s *System) InitSlots() []game.AttachmentSlot {
	slots := make([]game.AttachmentSlot, s.cfg.InitialSlots)
	for i := range slots {
		slots[i].State = game.SlotEmpty
	}
	return slots
}

// FindByID looks an attachment up in the catalog.
func (s *System) FindByID(id uint) *game.Attachment {
	for i := range s.pool {
		if s.pool[i].ID == id {
			return &s.pool[i]
		}
	}
	return nil
}

// EquipResult reports where an attachment landed and which deltas were
// applied.
type EquipResult struct {
	SlotIndex int      `json:"slot_index"`
	Applied   []string `json:"applied"`
}

// Equip places the attachment into an empty slot (making room via the
// growth strategy when none exists) and applies every effect exactly once.
// Application is all-or-nothing: any invalid input fails before the first
// stat mutation.
func (s *System) Equip(b *game.BattleState, code string, att *game.Attachment) (*EquipResult, error) {
	if att == nil {
		return nil, ErrUnknownAttachment
	}
	if len(att.Effects) == 0 {
		return nil, ErrNoEffects
	}
	for _, eff := range att.Effects {
		if _, err := game.ParseEffectType(string(eff.Type)); err != nil {
			return nil, ErrUnknownEffect
		}
	}
	if att.Unique {
		for i := range b.Slots {
			if b.Slots[i].State != game.SlotEmpty && b.Slots[i].AttachmentID == att.ID {
				return nil, ErrUniqueEquipped
			}
		}
	}

	idx := emptySlot(b.Slots)
	if idx < 0 {
		idx = s.growth.MakeRoom(b)
	}

	applied := make([]string, 0, len(att.Effects))
	for _, eff := range att.Effects {
		applied = append(applied, s.applyEffect(b, att, eff))
	}

	b.Slots[idx] = game.AttachmentSlot{
		State:          game.SlotAttached,
		AttachmentID:   att.ID,
		AttachmentName: att.Name,
		Rarity:         att.Rarity,
		AcquiredTurn:   b.Turn,
	}

	s.pub.Publish(game.Event{Kind: game.EventAttachmentSelected, BattleCode: code, Payload: map[string]interface{}{
		"slot":       idx,
		"attachment": att.Name,
		"rarity":     att.Rarity.Label(),
		"applied":    applied,
	}})
	return &EquipResult{SlotIndex: idx, Applied: applied}, nil
}

// Detach clears the slot only. Stat deltas already applied to the caster
// and weapons are intentionally kept; the removal is logged so the
// presentation layer can surface the permanence.
func (s *System) Detach(b *game.BattleState, code string, slotIndex int) (string, error) {
	if slotIndex < 0 || slotIndex >= len(b.Slots) {
		return "", ErrSlotOutOfRange
	}
	slot := &b.Slots[slotIndex]
	if slot.State == game.SlotEmpty {
		return "", ErrSlotEmpty
	}
	name := slot.AttachmentName
	slot.Clear()
	s.pub.Publish(game.Event{Kind: game.EventAttachmentRemoved, BattleCode: code, Payload: map[string]interface{}{
		"slot":       slotIndex,
		"attachment": name,
		"note":       "applied stat deltas are permanent and were not reverted",
	}})
	return name, nil
}

// Enhance raises the slot's enhancement level up to the cap. Effect
// rescaling on enhance is reserved for a future balance pass.
func (s *System) Enhance(b *game.BattleState, code string, slotIndex int) (int, error) {
	if slotIndex < 0 || slotIndex >= len(b.Slots) {
		return 0, ErrSlotOutOfRange
	}
	slot := &b.Slots[slotIndex]
	if slot.State == game.SlotEmpty {
		return 0, ErrSlotEmpty
	}
	if slot.EnhancementLevel >= s.cfg.MaxEnhancementLevel {
		return slot.EnhancementLevel, ErrEnhancementCap
	}
	slot.EnhancementLevel++
	slot.State = game.SlotEnhanced
	s.pub.Publish(game.Event{Kind: game.EventAttachmentEnhanced, BattleCode: code, Payload: map[string]interface{}{
		"slot":       slotIndex,
		"attachment": slot.AttachmentName,
		"level":      slot.EnhancementLevel,
	}})
	return slot.EnhancementLevel, nil
}

func (s *System) applyEffect(b *game.BattleState, att *game.Attachment, eff game.AttachmentEffect) string {
	scale := eff.Value * att.Rarity.Multiplier()
	switch eff.Type {
	case game.EffectAttackPowerBoost:
		base := b.Caster.BaseAttackPower
		if !s.cfg.CompoundAttackBoost {
			base = b.Caster.OriginalAttackPower
		}
		delta := int(math.Round(float64(base) * scale))
		b.Caster.BaseAttackPower += delta
		return noteDelta("attack power", delta)

	case game.EffectMaxHPBoost:
		delta := int(math.Round(float64(b.Caster.MaxHP) * scale))
		b.Caster.MaxHP += delta
		b.Caster.CurrentHP += delta
		return noteDelta("max hp", delta)

	case game.EffectCriticalRateBoost:
		for i := range b.Caster.Weapons {
			w := &b.Caster.Weapons[i]
			w.CriticalChance += scale
			if w.CriticalChance > 100 {
				w.CriticalChance = 100
			}
		}
		return noteWeapons("critical chance", len(b.Caster.Weapons))

	case game.EffectWeaponPowerBoost:
		for i := range b.Caster.Weapons {
			w := &b.Caster.Weapons[i]
			w.BasePower += int(math.Round(float64(w.BasePower) * scale))
		}
		return noteWeapons("base power", len(b.Caster.Weapons))

	case game.EffectCooldownReduction:
		for i := range b.Caster.Weapons {
			w := &b.Caster.Weapons[i]
			w.CooldownTurns -= int(math.Round(scale))
			if w.CooldownTurns < 0 {
				w.CooldownTurns = 0
			}
		}
		return noteWeapons("cooldown", len(b.Caster.Weapons))
	}
	// unreachable: effect types are validated before application
	return ""
}

func noteDelta(stat string, delta int) string {
	return fmt.Sprintf("%s %+d", stat, delta)
}

func noteWeapons(stat string, n int) string {
	return fmt.Sprintf("%s adjusted on %d weapon(s)", stat, n)
}

func emptySlot(slots []game.AttachmentSlot) int {
	for i := range slots {
		if slots[i].State == game.SlotEmpty {
			return i
		}
	}
	return -1
}
