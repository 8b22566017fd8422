// Package random provides the unique position samplers behind predictions.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// source is a mutex-guarded PRNG shared by both samplers.
type source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func checkSize(count, bound int) error {
	if count <= 0 || count > bound {
		return fmt.Errorf("%w: count=%d bound=%d", domain.ErrInvalidSampleSize, count, bound)
	}
	return nil
}

// ShuffleSampler picks positions with a partial Fisher-Yates shuffle over
// the candidate range, so it always finishes in O(bound).
type ShuffleSampler struct {
	source
}

// NewShuffleSampler returns a sampler seeded with seed.
func NewShuffleSampler(seed uint64) *ShuffleSampler {
	return &ShuffleSampler{source: source{rng: newRand(seed)}}
}

// Sample implements ports.Sampler.
func (s *ShuffleSampler) Sample(count, bound int) (domain.PositionSet, error) {
	if err := checkSize(count, bound); err != nil {
		return nil, err
	}
	candidates := make([]int, bound)
	for i := range candidates {
		candidates[i] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	picked := make(domain.PositionSet, 0, count)
	k := bound
	for range count {
		i := s.rng.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked, nil
}

// RejectionSampler draws and discards duplicates until it has count
// distinct values. Draws grow quickly as count approaches bound.
type RejectionSampler struct {
	source
}

// NewRejectionSampler returns a sampler seeded with seed.
func NewRejectionSampler(seed uint64) *RejectionSampler {
	return &RejectionSampler{source: source{rng: newRand(seed)}}
}

// Sample implements ports.Sampler.
func (s *RejectionSampler) Sample(count, bound int) (domain.PositionSet, error) {
	if err := checkSize(count, bound); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{}, count)
	picked := make(domain.PositionSet, 0, count)
	for len(picked) < count {
		n := s.rng.IntN(bound)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		picked = append(picked, n)
	}
	return picked, nil
}

// New builds the sampler named by strategy, seeded from crypto/rand.
func New(strategy string) (ports.Sampler, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	switch strategy {
	case "", domain.SamplerShuffle:
		return NewShuffleSampler(seed), nil
	case domain.SamplerRejection:
		return NewRejectionSampler(seed), nil
	default:
		return nil, fmt.Errorf("unknown sampler %q", strategy)
	}
}

var (
	_ ports.Sampler = (*ShuffleSampler)(nil)
	_ ports.Sampler = (*RejectionSampler)(nil)
)
