package attachments

import (
	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/rng"
)

// RollRarity draws a rarity tier from the configured cumulative weights.
// Common takes whatever probability mass the named tiers leave over.
func (s *System) RollRarity() game.Rarity {
	roll := s.src.Float64() * 100
	w := s.cfg.RarityWeights
	switch {
	case roll < w.Legendary:
		return game.RarityLegendary
	case roll < w.Legendary+w.Epic:
		return game.RarityEpic
	case roll < w.Legendary+w.Epic+w.Rare:
		return game.RarityRare
	default:
		return game.RarityCommon
	}
}

// Draw picks one attachment from the pool: a rarity is rolled first, then a
// uniform pick among that tier's candidates. When the pool has no candidate
// at the rolled tier, the pick falls back to a uniform draw over the whole
// pool so a sparse catalog still always yields something.
func (s *System) Draw(pool []game.Attachment) *game.Attachment {
	if len(pool) == 0 {
		return nil
	}
	rarity := s.RollRarity()
	var candidates []int
	for i := range pool {
		if pool[i].Rarity == rarity {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return &pool[rng.IntN(s.src, len(pool))]
	}
	return &pool[candidates[rng.IntN(s.src, len(candidates))]]
}

// GenerateOptions draws n selection candidates from the catalog without
// repetition and announces them to observers. Fewer than n options come
// back when the catalog runs out.
func (s *System) GenerateOptions(code string, n int) []game.Attachment {
	remaining := make([]game.Attachment, len(s.pool))
	copy(remaining, s.pool)

	var options []game.Attachment
	for len(options) < n && len(remaining) > 0 {
		picked := s.Draw(remaining)
		options = append(options, *picked)
		for i := range remaining {
			if remaining[i].ID == picked.ID {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}

	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	s.pub.Publish(game.Event{Kind: game.EventOptionsPresented, BattleCode: code, Payload: map[string]interface{}{
		"count":   len(options),
		"options": names,
	}})
	return options
}
