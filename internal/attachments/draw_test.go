package attachments

import (
	"testing"

	"gorm.io/gorm"

	"github.com/forestfirst/gatecrash/internal/game"
	"github.com/forestfirst/gatecrash/internal/rng"
)

func catalogOf(rarities ...game.Rarity) []game.Attachment {
	pool := make([]game.Attachment, 0, len(rarities))
	for i, r := range rarities {
		pool = append(pool, game.Attachment{
			Model:   gorm.Model{ID: uint(i + 1)},
			Name:    r.Label() + " Trinket",
			Rarity:  r,
			Effects: []game.AttachmentEffect{{Type: game.EffectAttackPowerBoost, Value: 0.01}},
		})
	}
	return pool
}

func TestRollRarity_Boundaries(t *testing.T) {
	cases := []struct {
		roll float64
		want game.Rarity
	}{
		{0.0, game.RarityLegendary},
		{0.029, game.RarityLegendary},
		{0.03, game.RarityEpic},
		{0.149, game.RarityEpic},
		{0.15, game.RarityRare},
		{0.399, game.RarityRare},
		{0.40, game.RarityCommon},
		{0.999, game.RarityCommon},
	}
	for _, tc := range cases {
		sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{tc.roll}}, nil)
		if got := sys.RollRarity(); got != tc.want {
			t.Fatalf("roll %.3f: expected %s, got %s", tc.roll, tc.want.Label(), got.Label())
		}
	}
}

func TestRollRarity_Distribution(t *testing.T) {
	const trials = 100000
	sys := NewSystem(DefaultConfig(), nil, rng.NewSeeded(7), nil)

	counts := map[game.Rarity]int{}
	for i := 0; i < trials; i++ {
		counts[sys.RollRarity()]++
	}

	expected := map[game.Rarity]float64{
		game.RarityLegendary: 0.03,
		game.RarityEpic:      0.12,
		game.RarityRare:      0.25,
		game.RarityCommon:    0.60,
	}
	for rarity, want := range expected {
		got := float64(counts[rarity]) / float64(trials)
		if diff := got - want; diff > 0.01 || diff < -0.01 {
			t.Fatalf("%s frequency %f not close to %f", rarity.Label(), got, want)
		}
	}
}

func TestDraw_PicksWithinRolledRarity(t *testing.T) {
	pool := catalogOf(game.RarityCommon, game.RarityRare, game.RarityRare, game.RarityLegendary)
	// first roll lands in the rare band, second picks among the two rares
	sys := NewSystem(DefaultConfig(), pool, &seqSource{vals: []float64{0.20, 0.60}}, nil)

	got := sys.Draw(pool)
	if got == nil || got.Rarity != game.RarityRare {
		t.Fatalf("expected a rare pick, got %+v", got)
	}
	if got.ID != 3 {
		t.Fatalf("second rare candidate expected at roll 0.60, got id %d", got.ID)
	}
}

func TestDraw_FallsBackWhenRarityMissing(t *testing.T) {
	pool := catalogOf(game.RarityCommon, game.RarityCommon)
	// legendary roll, but the pool has none
	sys := NewSystem(DefaultConfig(), pool, &seqSource{vals: []float64{0.0, 0.5}}, nil)

	got := sys.Draw(pool)
	if got == nil {
		t.Fatalf("fallback draw must still yield an attachment")
	}
	if got.Rarity != game.RarityCommon {
		t.Fatalf("fallback must pick from the full pool, got %s", got.Rarity.Label())
	}
}

func TestDraw_EmptyPool(t *testing.T) {
	sys := NewSystem(DefaultConfig(), nil, &seqSource{vals: []float64{0.5}}, nil)
	if got := sys.Draw(nil); got != nil {
		t.Fatalf("empty pool must yield nil, got %+v", got)
	}
}

func TestGenerateOptions_NoRepeats(t *testing.T) {
	pool := catalogOf(game.RarityCommon, game.RarityRare, game.RarityEpic, game.RarityLegendary)
	sys := NewSystem(DefaultConfig(), pool, rng.NewSeeded(11), nil)

	options := sys.GenerateOptions("TEST0001", 3)
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
	seen := map[uint]bool{}
	for _, o := range options {
		if seen[o.ID] {
			t.Fatalf("option %d offered twice", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestGenerateOptions_StopsWhenCatalogRunsOut(t *testing.T) {
	pool := catalogOf(game.RarityCommon, game.RarityRare)
	sys := NewSystem(DefaultConfig(), pool, rng.NewSeeded(11), nil)

	options := sys.GenerateOptions("TEST0001", 5)
	if len(options) != 2 {
		t.Fatalf("expected the full catalog of 2, got %d", len(options))
	}
}

func TestGenerateOptions_PublishesEvent(t *testing.T) {
	pub := game.NewPublisher()
	var kinds []game.EventKind
	pub.Subscribe(game.ObserverFunc(func(e game.Event) { kinds = append(kinds, e.Kind) }))

	pool := catalogOf(game.RarityCommon, game.RarityRare, game.RarityEpic)
	sys := NewSystem(DefaultConfig(), pool, rng.NewSeeded(11), pub)
	sys.GenerateOptions("TEST0001", 2)

	if len(kinds) != 1 || kinds[0] != game.EventOptionsPresented {
		t.Fatalf("expected one options_presented event, got %v", kinds)
	}
}
