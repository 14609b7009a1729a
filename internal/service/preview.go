package service

import (
	"errors"
	"fmt"

	"github.com/forestfirst/gatecrash/internal/battlefield"
	"github.com/forestfirst/gatecrash/internal/dedupe"
	"github.com/forestfirst/gatecrash/internal/engine"
	"github.com/forestfirst/gatecrash/internal/game"
)

var (
	ErrPreviewBadIndex = errors.New("card index out of range")
	ErrPreviewNoCard   = errors.New("hand slot is empty")
)

// CardPreview is the damage forecast for one card: per-target normal and
// critical outcomes, computed without consuming the critical roll.
type CardPreview struct {
	CardID   int                 `json:"card_id"`
	Card     string              `json:"card"`
	Targets  int                 `json:"targets"`
	Normal   []game.DamageResult `json:"normal"`
	Critical []game.DamageResult `json:"critical"`
}

// PreviewCard computes the forecast for one hand slot. Concurrent requests
// for the same battle/slot pair share a single computation.
func (rt *Runtime) PreviewCard(code string, index int) (*CardPreview, error) {
	key := fmt.Sprintf("%s:%d", code, index)
	v, err, _ := dedupe.PreviewGroup.Do(key, func() (interface{}, error) {
		return rt.computePreview(code, index)
	})
	if err != nil {
		return nil, err
	}
	return v.(*CardPreview), nil
}

func (rt *Runtime) computePreview(code string, index int) (*CardPreview, error) {
	b, err := rt.loadActive(code)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(b.State.Hand) {
		return nil, ErrPreviewBadIndex
	}
	card := b.State.Hand[index]
	if card == nil {
		return nil, ErrPreviewNoCard
	}

	grid := battlefield.New(&b.State.Field)
	targets := engine.ResolveTargets(&card.Weapon, grid, card.TargetColumn)
	p := &CardPreview{CardID: card.ID, Card: card.DisplayName, Targets: len(targets)}
	p.Normal, p.Critical = rt.Calculator.PreviewAttack(&card.Weapon, targets, &b.State.Caster)

	rt.Publisher.Publish(game.Event{Kind: game.EventDamagePreview, BattleCode: code, Payload: p})
	return p, nil
}

// ClearPreview tells observers the current forecast is stale, typically
// after a card selection is cancelled.
func (rt *Runtime) ClearPreview(code string) {
	rt.Publisher.Publish(game.Event{Kind: game.EventDamagePreviewCleared, BattleCode: code, Payload: nil})
}
