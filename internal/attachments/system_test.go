package attachments

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/forestfirst/gatecrash/internal/game"
)

// seqSource replays a fixed sequence of rolls, then repeats the last one.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func testBattle(sys *System) *game.BattleState {
	return &game.BattleState{
		Turn: 1,
		Caster: game.CasterStats{
			BaseAttackPower:     1000,
			OriginalAttackPower: 1000,
			MaxHP:               2000,
			CurrentHP:           2000,
			Weapons: []game.Weapon{
				{Name: "Flame Edge", BasePower: 120, CriticalChance: 15, CooldownTurns: 2},
				{Name: "Frost Bow", BasePower: 90, CriticalChance: 10, CooldownTurns: 3},
			},
		},
		Slots: sys.InitSlots(),
	}
}

func attackBooster(id uint, rarity game.Rarity, value float64) *game.Attachment {
	return &game.Attachment{
		Model:  gorm.Model{ID: id},
		Name:   "Power Crystal",
		Rarity: rarity,
		Effects: []game.AttachmentEffect{
			{Type: game.EffectAttackPowerBoost, Value: value},
		},
	}
}

func TestEquip_RareAttackBoost(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	res, err := sys.Equip(b, "TEST0001", attackBooster(1, game.RarityRare, 0.15))
	if err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	// round(1000 * 0.15 * 1.3) = 195
	if b.Caster.BaseAttackPower != 1195 {
		t.Fatalf("expected base attack 1195, got %d", b.Caster.BaseAttackPower)
	}
	if res.SlotIndex != 0 {
		t.Fatalf("expected slot 0, got %d", res.SlotIndex)
	}
	if b.Slots[0].State != game.SlotAttached || b.Slots[0].AttachmentName != "Power Crystal" {
		t.Fatalf("slot 0 not recorded: %+v", b.Slots[0])
	}
}

func TestEquip_CompoundingStacksFromCurrentBase(t *testing.T) {
	cfg := DefaultConfig()
	sys := NewSystem(cfg, nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	for i := 0; i < 2; i++ {
		if _, err := sys.Equip(b, "TEST0001", attackBooster(uint(i+1), game.RarityRare, 0.15)); err != nil {
			t.Fatalf("equip %d failed: %v", i, err)
		}
	}
	// 1000 -> 1195 -> 1195 + round(1195*0.195) = 1428
	if b.Caster.BaseAttackPower != 1428 {
		t.Fatalf("compounding: expected 1428, got %d", b.Caster.BaseAttackPower)
	}
}

func TestEquip_AdditiveUsesOriginalBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CompoundAttackBoost = false
	sys := NewSystem(cfg, nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	for i := 0; i < 2; i++ {
		if _, err := sys.Equip(b, "TEST0001", attackBooster(uint(i+1), game.RarityRare, 0.15)); err != nil {
			t.Fatalf("equip %d failed: %v", i, err)
		}
	}
	// each boost contributes round(1000*0.195) = 195
	if b.Caster.BaseAttackPower != 1390 {
		t.Fatalf("additive: expected 1390, got %d", b.Caster.BaseAttackPower)
	}
}

func TestEquip_AllOrNothingOnUnknownEffect(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	att := &game.Attachment{
		Model:  gorm.Model{ID: 7},
		Name:   "Corrupted Relic",
		Rarity: game.RarityEpic,
		Effects: []game.AttachmentEffect{
			{Type: game.EffectAttackPowerBoost, Value: 0.2},
			{Type: game.EffectType("time_warp"), Value: 1},
		},
	}
	_, err := sys.Equip(b, "TEST0001", att)
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("expected ErrUnknownEffect, got %v", err)
	}
	if b.Caster.BaseAttackPower != 1000 {
		t.Fatalf("failed equip must not mutate stats, got base %d", b.Caster.BaseAttackPower)
	}
	for i := range b.Slots {
		if b.Slots[i].State != game.SlotEmpty {
			t.Fatalf("failed equip must not occupy a slot: %+v", b.Slots[i])
		}
	}
}

func TestEquip_NoEffects(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)
	att := &game.Attachment{Model: gorm.Model{ID: 9}, Name: "Blank Stone", Rarity: game.RarityCommon}
	if _, err := sys.Equip(b, "TEST0001", att); !errors.Is(err, ErrNoEffects) {
		t.Fatalf("expected ErrNoEffects, got %v", err)
	}
}

func TestEquip_UniqueRejectedWhileEquipped(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	att := attackBooster(3, game.RarityLegendary, 0.1)
	att.Unique = true
	if _, err := sys.Equip(b, "TEST0001", att); err != nil {
		t.Fatalf("first equip failed: %v", err)
	}
	if _, err := sys.Equip(b, "TEST0001", att); !errors.Is(err, ErrUniqueEquipped) {
		t.Fatalf("expected ErrUniqueEquipped, got %v", err)
	}

	// once detached the unique can be equipped again
	if _, err := sys.Detach(b, "TEST0001", 0); err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if _, err := sys.Equip(b, "TEST0001", att); err != nil {
		t.Fatalf("re-equip after detach failed: %v", err)
	}
}

func TestEquip_HpAndWeaponEffects(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)
	b.Caster.CurrentHP = 1500

	att := &game.Attachment{
		Model:  gorm.Model{ID: 11},
		Name:   "War Harness",
		Rarity: game.RarityCommon,
		Effects: []game.AttachmentEffect{
			{Type: game.EffectMaxHPBoost, Value: 0.10},
			{Type: game.EffectCriticalRateBoost, Value: 5},
			{Type: game.EffectWeaponPowerBoost, Value: 0.10},
			{Type: game.EffectCooldownReduction, Value: 1},
		},
	}
	if _, err := sys.Equip(b, "TEST0001", att); err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	if b.Caster.MaxHP != 2200 || b.Caster.CurrentHP != 1700 {
		t.Fatalf("max hp boost must raise both max and current: %d/%d", b.Caster.CurrentHP, b.Caster.MaxHP)
	}
	w0, w1 := b.Caster.Weapons[0], b.Caster.Weapons[1]
	if w0.CriticalChance != 20 || w1.CriticalChance != 15 {
		t.Fatalf("critical rate boost must hit every weapon: %.1f / %.1f", w0.CriticalChance, w1.CriticalChance)
	}
	if w0.BasePower != 132 || w1.BasePower != 99 {
		t.Fatalf("weapon power boost must scale each weapon: %d / %d", w0.BasePower, w1.BasePower)
	}
	if w0.CooldownTurns != 1 || w1.CooldownTurns != 2 {
		t.Fatalf("cooldown reduction off: %d / %d", w0.CooldownTurns, w1.CooldownTurns)
	}
}

func TestEquip_WeaponAddedLaterIsUnaffected(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	att := &game.Attachment{
		Model:   gorm.Model{ID: 12},
		Name:    "Scope",
		Rarity:  game.RarityCommon,
		Effects: []game.AttachmentEffect{{Type: game.EffectCriticalRateBoost, Value: 5}},
	}
	if _, err := sys.Equip(b, "TEST0001", att); err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	b.Caster.Weapons = append(b.Caster.Weapons, game.Weapon{Name: "Late Pick", CriticalChance: 10})
	if got := b.Caster.Weapons[2].CriticalChance; got != 10 {
		t.Fatalf("weapon equipped after the attachment must keep its stock stats, got %.1f", got)
	}
}

func TestGrowth_UnlimitedAppendsBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSlots = 2
	sys := NewSystem(cfg, nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)
	if len(b.Slots) != 2 {
		t.Fatalf("expected 2 initial slots, got %d", len(b.Slots))
	}

	for i := 0; i < 3; i++ {
		if _, err := sys.Equip(b, "TEST0001", attackBooster(uint(i+1), game.RarityCommon, 0.01)); err != nil {
			t.Fatalf("equip %d failed: %v", i, err)
		}
	}
	if len(b.Slots) != 2+cfg.GrowthBatch {
		t.Fatalf("expected pool to grow by %d, got %d slots", cfg.GrowthBatch, len(b.Slots))
	}
	if b.Slots[2].State != game.SlotAttached {
		t.Fatalf("third attachment must land in the first grown slot: %+v", b.Slots[2])
	}
}

func TestGrowth_BoundedEvictsOldestSlot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSlots = 2
	cfg.UnlimitedSlots = false
	sys := NewSystem(cfg, nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	for i := 0; i < 3; i++ {
		if _, err := sys.Equip(b, "TEST0001", attackBooster(uint(i+1), game.RarityCommon, 0.01)); err != nil {
			t.Fatalf("equip %d failed: %v", i, err)
		}
	}
	if len(b.Slots) != 2 {
		t.Fatalf("bounded pool must not grow, got %d slots", len(b.Slots))
	}
	if b.Slots[0].AttachmentID != 3 {
		t.Fatalf("third attachment must replace the evicted slot 0, got id %d", b.Slots[0].AttachmentID)
	}
	if b.Slots[1].AttachmentID != 2 {
		t.Fatalf("slot 1 must keep its attachment, got id %d", b.Slots[1].AttachmentID)
	}
}

func TestDetach_KeepsAppliedDeltas(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	if _, err := sys.Equip(b, "TEST0001", attackBooster(1, game.RarityRare, 0.15)); err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	name, err := sys.Detach(b, "TEST0001", 0)
	if err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if name != "Power Crystal" {
		t.Fatalf("unexpected detached name %q", name)
	}
	if b.Slots[0].State != game.SlotEmpty {
		t.Fatalf("slot must be empty after detach: %+v", b.Slots[0])
	}
	if b.Caster.BaseAttackPower != 1195 {
		t.Fatalf("detach must not revert the applied delta, got %d", b.Caster.BaseAttackPower)
	}
}

func TestDetach_Errors(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)
	if _, err := sys.Detach(b, "TEST0001", -1); !errors.Is(err, ErrSlotOutOfRange) {
		t.Fatalf("expected ErrSlotOutOfRange, got %v", err)
	}
	if _, err := sys.Detach(b, "TEST0001", 0); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
}

func TestEnhance_LevelsUpToCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEnhancementLevel = 2
	sys := NewSystem(cfg, nil, &seqSource{vals: []float64{0.5}}, nil)
	b := testBattle(sys)

	if _, err := sys.Equip(b, "TEST0001", attackBooster(1, game.RarityRare, 0.15)); err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	for want := 1; want <= 2; want++ {
		level, err := sys.Enhance(b, "TEST0001", 0)
		if err != nil {
			t.Fatalf("enhance to %d failed: %v", want, err)
		}
		if level != want {
			t.Fatalf("expected level %d, got %d", want, level)
		}
	}
	if b.Slots[0].State != game.SlotEnhanced {
		t.Fatalf("enhanced slot must report the enhanced state, got %s", b.Slots[0].State)
	}
	if _, err := sys.Enhance(b, "TEST0001", 0); !errors.Is(err, ErrEnhancementCap) {
		t.Fatalf("expected ErrEnhancementCap, got %v", err)
	}
}

func TestEquip_PublishesEvent(t *testing.T) {
	pub := &game.Publisher{}
	var seen []game.Event
	pub.Subscribe(game.ObserverFunc(func(e game.Event) { seen = append(seen, e) }))

	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, pub)
	b := testBattle(sys)
	if _, err := sys.Equip(b, "TEST0001", attackBooster(1, game.RarityRare, 0.15)); err != nil {
		t.Fatalf("equip failed: %v", err)
	}
	if len(seen) != 1 || seen[0].Kind != game.EventAttachmentSelected {
		t.Fatalf("expected one attachment_selected event, got %+v", seen)
	}
	if seen[0].BattleCode != "TEST0001" {
		t.Fatalf("event must carry the battle code, got %q", seen[0].BattleCode)
	}
}
