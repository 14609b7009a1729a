package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestfirst/gatecrash/internal/game"
)

func writeBalance(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBalance_EmptyPathUsesDefaults(t *testing.T) {
	b, err := LoadBalance("")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Hand.Size)
	assert.Equal(t, 3, b.Hand.BaseActions)
	assert.Equal(t, 2.0, b.Damage.BaseCriticalMultiplier)
	assert.Equal(t, 3.0, b.Attachments.LegendaryWeight)
}

func TestLoadBalance_OverlaysFileOnDefaults(t *testing.T) {
	path := writeBalance(t, `
hand:
  size: 7
  base_actions: 2
damage:
  base_critical_multiplier: 2.5
  min_damage_floor: 10
  attribute_multipliers:
    fire: 1.5
  falloff:
    all: 0.7
attachments:
  allow_unlimited_slots: false
  attack_boost_compounds: false
  max_enhancement_level: 3
`)
	b, err := LoadBalance(path)
	require.NoError(t, err)
	assert.Equal(t, 7, b.Hand.Size)
	assert.Equal(t, 2, b.Hand.BaseActions)

	eng := b.EngineConfig()
	assert.Equal(t, 2.5, eng.BaseCriticalMultiplier)
	assert.Equal(t, 10, eng.MinDamageFloor)
	assert.Equal(t, 1.5, eng.AttributeMultipliers[game.AttrFire])
	// untouched table entries keep their stock values
	assert.Equal(t, 1.3, eng.AttributeMultipliers[game.AttrEarth])
	assert.Equal(t, 0.7, eng.Falloff[game.RangeAll])
	assert.Equal(t, 0.9, eng.Falloff[game.RangeRow])

	att := b.AttachmentConfig()
	assert.False(t, att.UnlimitedSlots)
	assert.False(t, att.CompoundAttackBoost)
	assert.Equal(t, 3, att.MaxEnhancementLevel)
	assert.Equal(t, 3.0, att.RarityWeights.Legendary)

	h := b.HandConfig()
	assert.Equal(t, 7, h.HandSize)
	assert.Equal(t, 2, h.BaseActions)
}

func TestLoadBalance_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errLike string
	}{
		{"zero hand size", "hand:\n  size: -1\n", "hand.size"},
		{"bad crit multiplier", "damage:\n  base_critical_multiplier: 0.5\n", "base_critical_multiplier"},
		{"overweight rarities", "attachments:\n  legendary_weight: 60\n  epic_weight: 50\n", "rarity weights"},
		{"unknown attribute", "damage:\n  attribute_multipliers:\n    void: 2.0\n", "void"},
		{"unknown falloff shape", "damage:\n  falloff:\n    spiral: 0.5\n", "spiral"},
		{"bad field", "field:\n  rows: 0\n", "field dimensions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBalance(writeBalance(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errLike)
		})
	}
}

func TestLoadBalance_MissingFile(t *testing.T) {
	_, err := LoadBalance(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
