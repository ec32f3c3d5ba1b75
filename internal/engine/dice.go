package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidRange is returned when a draw is asked for min > max.
var ErrInvalidRange = errors.New("invalid draw range")

// Roller draws uniform integers from a source owned by a single run.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a roller whose draw sequence is fully determined by seed.
func NewRoller(seed uint64) *Roller {
	return &Roller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomRoller creates a roller seeded from the runtime's random state.
func NewRandomRoller() *Roller {
	return NewRoller(rand.Uint64())
}

// Draw returns a uniform integer in [min, max]. min == max returns min
// without touching the source.
func (r *Roller) Draw(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRange, min, max)
	}
	if min == max {
		return min, nil
	}
	return min + r.rng.IntN(max-min+1), nil
}
