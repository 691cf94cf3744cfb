// Package random provides a random source that is safe for concurrent use
// and can be seeded for deterministic tests.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source wraps a *rand.Rand behind a mutex.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded from the clock.
func New() *Source {
	now := uint64(time.Now().UnixNano())
	return NewSeeded(now, now>>1)
}

// NewSeeded returns a deterministic Source.
func NewSeeded(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Float64 returns a number in [0.0, 1.0).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Uniform returns a number in [min, max].
func (s *Source) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.Float64()*(max-min)
}

// ShuffleStrings shuffles ids in place.
func (s *Source) ShuffleStrings(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
