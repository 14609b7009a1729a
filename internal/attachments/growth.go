package attachments

import "github.com/forestfirst/gatecrash/internal/game"

// GrowthStrategy decides how the slot pool makes room when every slot is
// occupied. MakeRoom returns the index of a now-empty slot.
type GrowthStrategy interface {
	MakeRoom(b *game.BattleState) int
}

// GrowBatch appends a fixed batch of fresh empty slots.
type GrowBatch struct {
	Batch int
}

func (g GrowBatch) MakeRoom(b *game.BattleState) int {
	n := g.Batch
	if n < 1 {
		n = 1
	}
	idx := len(b.Slots)
	for i := 0; i < n; i++ {
		b.Slots = append(b.Slots, game.AttachmentSlot{State: game.SlotEmpty})
	}
	return idx
}

// EvictFront clears the oldest slot, slot zero. The evicted attachment's
// stat deltas stay applied.
type EvictFront struct{}

func (EvictFront) MakeRoom(b *game.BattleState) int {
	if len(b.Slots) == 0 {
		b.Slots = append(b.Slots, game.AttachmentSlot{State: game.SlotEmpty})
		return 0
	}
	b.Slots[0].Clear()
	return 0
}
