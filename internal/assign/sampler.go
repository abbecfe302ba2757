// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assign

import (
	"fmt"
	"math/rand/v2"

	"github.com/pdiddy/pdftask/pkg/types"
)

// NewRand returns a generator seeded from the runtime's entropy source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic generator for reproducible runs.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// ValidateMode rejects sampling modes other than the two known ones.
// An empty mode is accepted and means with-replacement.
func ValidateMode(mode types.SamplingMode) error {
	switch mode {
	case "", types.SampleWithReplacement, types.SampleWithoutReplacement:
		return nil
	}
	return fmt.Errorf("unknown sampling mode %q: use %s or %s",
		mode, types.SampleWithReplacement, types.SampleWithoutReplacement)
}

// NewSampler returns a function that yields one candidate per call.
// An empty mode means with-replacement.
func NewSampler(mode types.SamplingMode, candidates []string, rng *rand.Rand) (func() string, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if rng == nil {
		rng = NewRand()
	}

	switch mode {
	case types.SampleWithReplacement, "":
		return func() string {
			return candidates[rng.IntN(len(candidates))]
		}, nil

	case types.SampleWithoutReplacement:
		deck := make([]string, len(candidates))
		next := len(deck)
		return func() string {
			if next == len(deck) {
				copy(deck, candidates)
				rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
				next = 0
			}
			c := deck[next]
			next++
			return c
		}, nil

	default:
		return nil, ValidateMode(mode)
	}
}
