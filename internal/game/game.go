// Package game holds the pieces shared by the scripted mini-games: the
// injectable random source and score clamping.
package game

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used for outcome and feedback draws.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeRand returns a source seeded from the wall clock.
func NewTimeRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Pick returns a random element of items, or false if items is empty.
func Pick[T any](r Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.IntN(len(items))], true
}

// Sample returns up to n distinct elements of items in random order.
// items is not modified.
func Sample[T any](r Rand, items []T, n int) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
