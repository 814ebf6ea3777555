// Package randutil builds the deterministic PRNGs used for shuffling and bot
// decisions.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG state words are derived from the one seed so every call site gets
// a reproducible sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seeded returns a PRNG for the given seed, or a time-seeded one when seed is
// nil. The seed actually used is returned so it can be logged and replayed.
func Seeded(seed *int64) (*rand.Rand, int64) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return New(s), s
}

// Derive returns an independent PRNG for the n-th child of a seed, used when
// fanning one seed out to several tables.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(n)*goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
