package game

import "fmt"

// TraitSet is a closed flag set describing a weapon's special effect. The
// catalog's tag strings are resolved into flags once at data-load time so
// the damage pipeline never does substring matching.
type TraitSet uint8

const (
	// TraitCriticalBoost adds +15% damage when the attack crits.
	TraitCriticalBoost TraitSet = 1 << iota
	// TraitArmorPierce adds a flat +20% damage.
	TraitArmorPierce
	// TraitMechanicalBonus doubles damage against mechanical targets.
	TraitMechanicalBonus
	// TraitGateBreaker adds +50% damage against gates.
	TraitGateBreaker
)

func (s TraitSet) Has(t TraitSet) bool { return s&t != 0 }

var traitsByTag = map[string]TraitSet{
	"critical_boost":   TraitCriticalBoost,
	"armor_pierce":     TraitArmorPierce,
	"mechanical_bonus": TraitMechanicalBonus,
	"gate_breaker":     TraitGateBreaker,
}

// ParseTraits resolves catalog tag strings into a TraitSet. Unknown tags are
// rejected so bad catalog data fails at load, not mid-combat.
func ParseTraits(tags []string) (TraitSet, error) {
	var s TraitSet
	for _, tag := range tags {
		t, ok := traitsByTag[tag]
		if !ok {
			return 0, fmt.Errorf("unknown special effect tag '%s'", tag)
		}
		s |= t
	}
	return s, nil
}

var validAttributes = map[Attribute]struct{}{
	AttrFire: {}, AttrIce: {}, AttrThunder: {}, AttrWind: {},
	AttrEarth: {}, AttrLight: {}, AttrDark: {},
}

// ParseAttribute validates a catalog attribute string.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(s)
	if _, ok := validAttributes[a]; !ok {
		return "", fmt.Errorf("unknown attribute '%s'", s)
	}
	return a, nil
}

var validShapes = map[RangeShape]struct{}{
	RangeSingleFront: {}, RangeSingleTarget: {}, RangeRow: {},
	RangeColumn: {}, RangeAll: {}, RangeSelf: {},
}

// ParseRangeShape validates a catalog range shape string.
func ParseRangeShape(s string) (RangeShape, error) {
	r := RangeShape(s)
	if _, ok := validShapes[r]; !ok {
		return "", fmt.Errorf("unknown range shape '%s'", s)
	}
	return r, nil
}

var validCategories = map[WeaponCategory]struct{}{
	CategoryBlade: {}, CategoryRanged: {}, CategoryMagic: {}, CategoryShield: {},
}

// ParseCategory validates a catalog weapon category string.
func ParseCategory(s string) (WeaponCategory, error) {
	c := WeaponCategory(s)
	if _, ok := validCategories[c]; !ok {
		return "", fmt.Errorf("unknown weapon category '%s'", s)
	}
	return c, nil
}

var validEffects = map[EffectType]struct{}{
	EffectAttackPowerBoost: {}, EffectMaxHPBoost: {}, EffectCriticalRateBoost: {},
	EffectWeaponPowerBoost: {}, EffectCooldownReduction: {},
}

// ParseEffectType validates a catalog attachment effect type string.
func ParseEffectType(s string) (EffectType, error) {
	e := EffectType(s)
	if _, ok := validEffects[e]; !ok {
		return "", fmt.Errorf("unknown attachment effect type '%s'", s)
	}
	return e, nil
}
