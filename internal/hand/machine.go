// Package hand owns the action economy: the rotating set of playable cards
// and the per-turn action counter. It gates whether a card may be played and
// reports, not enforces, when the last action of a turn is spent.
package hand

import (
	"fmt"

	"github.com/forestfirst/gatecrash/internal/battlefield"
	"github.com/forestfirst/gatecrash/internal/engine"
	"github.com/forestfirst/gatecrash/internal/game"
)

// Structured failure reasons returned to the presentation layer. A failed
// play never mutates hand, budget or field state.
const (
	ReasonNotPlayerTurn   = "not the player's turn"
	ReasonIndexOutOfRange = "card index out of range"
	ReasonSlotEmpty       = "hand slot is empty"
	ReasonBadHandState    = "hand not in usable state"
	ReasonBadTargetColumn = "invalid target column for weapon range"
	ReasonOnCooldown      = "weapon on cooldown"
	ReasonNoActions       = "no actions remaining"
	ReasonNoTargets       = "no valid targets in range"
)

// Config tunes the hand and the per-turn budget.
type Config struct {
	HandSize    int
	BaseActions int
}

// DefaultConfig returns the stock hand tuning.
func DefaultConfig() Config {
	return Config{HandSize: 5, BaseActions: 3}
}

// CardSource supplies up to max fresh cards for a hand fill. A short source
// is fine: the machine cycles what it got to fill every slot.
type CardSource interface {
	Deal(b *game.BattleState, max int) []game.Card
}

// Machine drives the hand state transitions over a battle state. It holds
// no per-battle data; everything lives in the BattleState it operates on.
type Machine struct {
	cfg    Config
	calc   *engine.Calculator
	source CardSource
	pub    *game.Publisher
}

// NewMachine wires the machine with its collaborators. The calculator and
// card source are required; pub may be nil.
func NewMachine(cfg Config, calc *engine.Calculator, source CardSource, pub *game.Publisher) *Machine {
	return &Machine{cfg: cfg, calc: calc, source: source, pub: pub}
}

// GenerateHand fills every hand slot from the card source, cycling the dealt
// cards when the source yields fewer than the hand size. An empty deal is a
// reported no-op: the hand and state are left untouched.
func (m *Machine) GenerateHand(b *game.BattleState, code string) int {
	dealt := m.source.Deal(b, m.cfg.HandSize)
	if len(dealt) == 0 {
		return 0
	}

	hand := make([]*game.Card, m.cfg.HandSize)
	for i := 0; i < m.cfg.HandSize; i++ {
		c := dealt[i%len(dealt)]
		c.ID = b.NextCardID
		b.NextCardID++
		hand[i] = &c
	}
	b.Hand = hand
	m.setState(b, code, game.HandGenerated)

	names := make([]string, 0, len(hand))
	for _, c := range hand {
		names = append(names, c.DisplayName)
	}
	m.pub.Publish(game.Event{Kind: game.EventHandGenerated, BattleCode: code, Payload: map[string]interface{}{
		"size":  len(hand),
		"cards": names,
	}})
	return len(hand)
}

// PlayResult reports one play attempt. Success=false carries a structured
// reason and guarantees zero state mutation.
type PlayResult struct {
	Success            bool                `json:"success"`
	Reason             string              `json:"reason,omitempty"`
	Card               *game.Card          `json:"card,omitempty"`
	Results            []game.DamageResult `json:"results,omitempty"`
	TotalDamage        int                 `json:"total_damage"`
	HealingDone        int                 `json:"healing_done,omitempty"`
	EnemiesDefeated    int                 `json:"enemies_defeated"`
	GatesDestroyed     int                 `json:"gates_destroyed"`
	ActionsRemaining   int                 `json:"actions_remaining"`
	LastActionConsumed bool                `json:"last_action_consumed"`
}

// PlayCard validates and resolves one card play. Validation happens up
// front; the first mutation only occurs once the play is certain to
// succeed. Whether the turn ends on the last action is the caller's call.
func (m *Machine) PlayCard(b *game.BattleState, code string, index int) *PlayResult {
	if reason := m.validate(b, index); reason != "" {
		return m.fail(b, code, reason)
	}

	card := b.Hand[index]
	res := &PlayResult{Success: true, Card: card}
	if card.Weapon.Shape == game.RangeSelf {
		m.applySelf(b, code, card, res)
	} else {
		grid := battlefield.New(&b.Field)
		targets := engine.ResolveTargets(&card.Weapon, grid, card.TargetColumn)
		if len(targets) == 0 {
			return m.fail(b, code, ReasonNoTargets)
		}
		res.Results = m.calc.ComputeAttack(&card.Weapon, targets, &b.Caster, code)
		for i := range res.Results {
			res.TotalDamage += res.Results[i].FinalDamage
			if battlefield.ApplyDamage(&targets[i], res.Results[i].FinalDamage) {
				if targets[i].IsGate() {
					res.GatesDestroyed++
				} else {
					res.EnemiesDefeated++
				}
			}
		}
	}

	b.Hand[index] = nil
	b.WeaponUses[card.Weapon.Name]++
	if card.Weapon.CooldownTurns > 0 {
		b.Cooldowns[card.Weapon.Name] = b.Turn + card.Weapon.CooldownTurns
	}
	b.Budget.Remaining--
	b.CardsPlayed++
	b.DamageDealt += res.TotalDamage
	res.ActionsRemaining = b.Budget.Remaining
	res.LastActionConsumed = b.Budget.Remaining == 0
	m.setState(b, code, game.HandCardUsed)

	m.pub.Publish(game.Event{Kind: game.EventCardPlayed, BattleCode: code, Payload: map[string]interface{}{
		"card":    card.DisplayName,
		"weapon":  card.Weapon.Name,
		"targets": len(res.Results),
		"damage":  res.TotalDamage,
		"healing": res.HealingDone,
	}})
	m.pub.Publish(game.Event{Kind: game.EventCardPlayResult, BattleCode: code, Payload: res})
	return res
}

// applySelf resolves a self-shape card against the caster through the same
// formula stack as an attack. Healing weapons restore hit points up to the
// maximum; other self cards only report their computed result.
func (m *Machine) applySelf(b *game.BattleState, code string, card *game.Card, res *PlayResult) {
	self := game.AttackTarget{}
	res.Results = m.calc.ComputeAttack(&card.Weapon, []game.AttackTarget{self}, &b.Caster, code)
	r := &res.Results[0]
	if r.DamageType != game.DamageHealing {
		return
	}
	healed := r.FinalDamage
	if room := b.Caster.MaxHP - b.Caster.CurrentHP; healed > room {
		healed = room
	}
	b.Caster.CurrentHP += healed
	res.HealingDone = healed
	r.Effects = append(r.Effects, fmt.Sprintf("restored %d hp", healed))
}

func (m *Machine) validate(b *game.BattleState, index int) string {
	if b.Phase != game.PhasePlayerTurn {
		return ReasonNotPlayerTurn
	}
	if index < 0 || index >= len(b.Hand) {
		return ReasonIndexOutOfRange
	}
	if b.Hand[index] == nil {
		return ReasonSlotEmpty
	}
	if b.HandState != game.HandGenerated {
		return ReasonBadHandState
	}
	card := b.Hand[index]
	if engine.NeedsColumn(card.Weapon.Shape) && (card.TargetColumn < 0 || card.TargetColumn >= b.Field.Cols) {
		return ReasonBadTargetColumn
	}
	if until, ok := b.Cooldowns[card.Weapon.Name]; ok && until > b.Turn {
		return ReasonOnCooldown
	}
	if b.Budget.Remaining < 1 {
		return ReasonNoActions
	}
	return ""
}

func (m *Machine) fail(b *game.BattleState, code, reason string) *PlayResult {
	res := &PlayResult{Success: false, Reason: reason, ActionsRemaining: b.Budget.Remaining}
	m.pub.Publish(game.Event{Kind: game.EventCardPlayResult, BattleCode: code, Payload: res})
	return res
}

// RefreshAfterPlay regenerates the hand within the same turn after a
// successful play. Only valid from the card-used state.
func (m *Machine) RefreshAfterPlay(b *game.BattleState, code string) error {
	if b.HandState != game.HandCardUsed {
		return fmt.Errorf("cannot refresh hand in state %s", b.HandState)
	}
	m.GenerateHand(b, code)
	return nil
}

// EndPlayerTurn closes the hand for the enemy phase.
func (m *Machine) EndPlayerTurn(b *game.BattleState, code string) {
	b.Phase = game.PhaseEnemyTurn
	b.Hand = nil
	m.setState(b, code, game.HandTurnEnded)
}

// StartPlayerTurn begins a new player turn: the turn counter advances, the
// action budget resets and a fresh hand is generated.
func (m *Machine) StartPlayerTurn(b *game.BattleState, code string) {
	b.Turn++
	b.Phase = game.PhasePlayerTurn
	b.Budget.Max = m.cfg.BaseActions
	b.Budget.Reset()
	m.GenerateHand(b, code)
}

func (m *Machine) setState(b *game.BattleState, code string, next game.HandState) {
	if b.HandState == next {
		return
	}
	prev := b.HandState
	b.HandState = next
	m.pub.Publish(game.Event{Kind: game.EventHandStateChanged, BattleCode: code, Payload: map[string]interface{}{
		"from": prev,
		"to":   next,
	}})
}
