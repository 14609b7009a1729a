package hand

import (
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/rng"
)

// WeaponDeck deals cards from the caster's equipped weapons. Each card
// carries its own weapon copy so later attachment deltas never rewrite a
// card already in hand.
type WeaponDeck struct {
	src rng.RandomSource
}

// NewWeaponDeck builds the deck source. src picks target columns.
func NewWeaponDeck(src rng.RandomSource) *WeaponDeck {
	if src == nil {
		src = rng.Default()
	}
	return &WeaponDeck{src: src}
}

// Deal yields one card per equipped weapon, up to max. Ready weapons come
// first so a short hand is never padded with cooling-down cards while
// playable ones exist.
func (d *WeaponDeck) Deal(b *game.BattleState, max int) []game.Card {
	var ready, cooling []game.Weapon
	for _, w := range b.Caster.Weapons {
		if until, ok := b.Cooldowns[w.Name]; ok && until > b.Turn {
			cooling = append(cooling, w)
			continue
		}
		ready = append(ready, w)
	}

	var cards []game.Card
	for _, w := range append(ready, cooling...) {
		if len(cards) >= max {
			break
		}
		cards = append(cards, game.Card{
			Weapon:       w,
			TargetColumn: d.pickColumn(b, w),
			DisplayName:  w.Name,
		})
	}
	return cards
}

// pickColumn prefers a column that still holds a living enemy so dealt
// cards are immediately playable; an empty field falls back to any column.
func (d *WeaponDeck) pickColumn(b *game.BattleState, w game.Weapon) int {
	if w.Shape == game.RangeSelf || w.Shape == game.RangeAll {
		return 0
	}
	if b.Field.Cols <= 0 {
		return 0
	}
	var occupied []int
	for col := 0; col < b.Field.Cols; col++ {
		for i := range b.Field.Enemies {
			e := &b.Field.Enemies[i]
			if !e.Defeated && e.Col == col {
				occupied = append(occupied, col)
				break
			}
		}
	}
	if len(occupied) == 0 {
		return rng.IntN(d.src, b.Field.Cols)
	}
	return occupied[rng.IntN(d.src, len(occupied))]
}
