// Package rng provides the random sources used by the combat core. Every
// random draw (critical roll, rarity roll, card columns) goes through a
// RandomSource so tests can substitute a seeded or scripted source.
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// cryptoSource is the default production source.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

// Default returns a crypto-backed source.
func Default() RandomSource { return cryptoSource{} }

type seededSource struct{ r *rand.Rand }

// NewSeeded returns a deterministic PCG source for tests and simulations.
func NewSeeded(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// IntN maps a draw from src onto [0, n). n must be positive.
func IntN(src RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
