package engine

import (
	"fmt"
	"math"

	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/rng"
)

// Config holds the numeric tables of the damage formula stack. All values
// come from the balance configuration; DefaultConfig carries the stock
// tuning.
type Config struct {
	BaseCriticalMultiplier float64
	MinDamageFloor         int
	AttributeMultipliers   map[game.Attribute]float64
	MechanicalBonus        map[game.Attribute]float64
	Falloff                map[game.RangeShape]float64
}

// DefaultConfig returns the stock damage tuning.
func DefaultConfig() Config {
	return Config{
		BaseCriticalMultiplier: 2.0,
		MinDamageFloor:         1,
		AttributeMultipliers: map[game.Attribute]float64{
			game.AttrFire:    1.2,
			game.AttrIce:     1.0,
			game.AttrThunder: 1.1,
			game.AttrWind:    1.0,
			game.AttrEarth:   1.3,
			game.AttrLight:   1.0,
			game.AttrDark:    1.1,
		},
		MechanicalBonus: map[game.Attribute]float64{
			game.AttrFire:    1.2,
			game.AttrThunder: 1.3,
		},
		Falloff: map[game.RangeShape]float64{
			game.RangeAll:    0.8,
			game.RangeRow:    0.9,
			game.RangeColumn: 0.95,
		},
	}
}

// ComboSource is the opaque multiplier contract of the external combo
// tracker. A nil source means no combo scaling.
type ComboSource interface {
	DamageMultiplier() float64
}

// Calculator computes damage results. It mutates nothing: applying the
// resulting damage is the caller's job.
type Calculator struct {
	cfg   Config
	src   rng.RandomSource
	combo ComboSource
	pub   *game.Publisher
}

// NewCalculator builds a calculator. src drives the single critical roll per
// computation; pub may be nil when no observers are wired.
func NewCalculator(cfg Config, src rng.RandomSource, pub *game.Publisher) *Calculator {
	if src == nil {
		src = rng.Default()
	}
	return &Calculator{cfg: cfg, src: src, pub: pub}
}

// SetComboSource wires the external combo tracker.
func (c *Calculator) SetComboSource(combo ComboSource) { c.combo = combo }

// Compute runs the multiplicative formula stack for one weapon/target pair,
// performing exactly one random draw for the critical roll.
func (c *Calculator) Compute(w *game.Weapon, target *game.AttackTarget, caster *game.CasterStats) game.DamageResult {
	isCritical := c.src.Float64()*100 < w.CriticalChance
	return c.compute(w, target, caster, isCritical)
}

// Preview computes the non-critical and critical outcomes without touching
// the random source, for damage previews shown before a card is played.
func (c *Calculator) Preview(w *game.Weapon, target *game.AttackTarget, caster *game.CasterStats) (normal, critical game.DamageResult) {
	return c.compute(w, target, caster, false), c.compute(w, target, caster, true)
}

func (c *Calculator) compute(w *game.Weapon, target *game.AttackTarget, caster *game.CasterStats, isCritical bool) game.DamageResult {
	res := game.DamageResult{
		WeaponName: w.Name,
		Target:     target.Position,
		IsCritical: isCritical,
		DamageType: w.DamageType(),
	}
	res.BaseDamage = caster.BaseAttackPower + w.BasePower

	res.CriticalMultiplier = 1.0
	if isCritical {
		res.CriticalMultiplier = c.cfg.BaseCriticalMultiplier
		res.Effects = append(res.Effects, "critical hit")
	}

	res.AttributeMultiplier = 1.0
	if m, ok := c.cfg.AttributeMultipliers[w.Attribute]; ok {
		res.AttributeMultiplier = m
	}
	mechanical := target.IsEnemy() && target.Enemy.Mechanical
	if mechanical {
		if bonus, ok := c.cfg.MechanicalBonus[w.Attribute]; ok {
			res.AttributeMultiplier *= bonus
			res.Effects = append(res.Effects, fmt.Sprintf("%s vs mechanical x%.1f", w.Attribute, bonus))
		}
	}

	res.SpecialMultiplier = 1.0
	if w.Traits.Has(game.TraitCriticalBoost) && isCritical {
		res.SpecialMultiplier *= 1.15
		res.Effects = append(res.Effects, "critical boost +15%")
	}
	if w.Traits.Has(game.TraitArmorPierce) {
		res.SpecialMultiplier *= 1.20
		res.Effects = append(res.Effects, "armor pierce +20%")
	}
	if w.Traits.Has(game.TraitMechanicalBonus) && mechanical {
		res.SpecialMultiplier *= 2.0
		res.Effects = append(res.Effects, "anti-mechanical x2.0")
	}
	if w.Traits.Has(game.TraitGateBreaker) && target.IsGate() {
		res.SpecialMultiplier *= 1.5
		res.Effects = append(res.Effects, "gate breaker +50%")
	}

	total := float64(res.BaseDamage) * res.CriticalMultiplier * res.AttributeMultiplier * res.SpecialMultiplier
	if c.combo != nil {
		if m := c.combo.DamageMultiplier(); m > 0 && m != 1.0 {
			total *= m
			res.Effects = append(res.Effects, fmt.Sprintf("combo x%.2f", m))
		}
	}
	res.FinalDamage = c.clamp(int(math.Round(total)))
	return res
}

// ComputeAttack computes one result per resolved target and applies the
// shape falloff once per target when the attack spread over more than one.
// The falloff is never compounded: it scales each target's already-final
// damage exactly once.
func (c *Calculator) ComputeAttack(w *game.Weapon, targets []game.AttackTarget, caster *game.CasterStats, battleCode string) []game.DamageResult {
	if len(targets) == 0 {
		return nil
	}
	results := make([]game.DamageResult, 0, len(targets))
	for i := range targets {
		results = append(results, c.Compute(w, &targets[i], caster))
	}
	c.applyFalloff(w.Shape, results)
	c.pub.Publish(game.Event{Kind: game.EventDamageComputed, BattleCode: battleCode, Payload: results})
	return results
}

// PreviewAttack mirrors ComputeAttack for forecasts: per-target normal and
// critical outcomes including the spread falloff, without touching the
// random source or publishing events.
func (c *Calculator) PreviewAttack(w *game.Weapon, targets []game.AttackTarget, caster *game.CasterStats) (normal, critical []game.DamageResult) {
	for i := range targets {
		n, cr := c.Preview(w, &targets[i], caster)
		normal = append(normal, n)
		critical = append(critical, cr)
	}
	c.applyFalloff(w.Shape, normal)
	c.applyFalloff(w.Shape, critical)
	return normal, critical
}

// applyFalloff scales each result once when the attack spread over more than
// one target, re-clamped to the floor. Never compounded.
func (c *Calculator) applyFalloff(shape game.RangeShape, results []game.DamageResult) {
	if len(results) < 2 {
		return
	}
	falloff, ok := c.cfg.Falloff[shape]
	if !ok || falloff == 1.0 {
		return
	}
	for i := range results {
		results[i].FinalDamage = c.clamp(int(math.Round(float64(results[i].FinalDamage) * falloff)))
		results[i].Effects = append(results[i].Effects, fmt.Sprintf("spread falloff x%.2f", falloff))
	}
}

func (c *Calculator) clamp(dmg int) int {
	if dmg < c.cfg.MinDamageFloor {
		return c.cfg.MinDamageFloor
	}
	return dmg
}
