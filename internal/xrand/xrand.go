// Package xrand provides the per-goroutine PRNG the search and policy
// packages use for uniform random choices (untried-move selection, default
// rollout policy, EXP3 sampling).
package xrand

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	xrand "golang.org/x/exp/rand"
)

// New returns a PRNG seeded from a cryptographic source, intended to be
// created once per worker goroutine at the start of a search and reused for
// every iteration that goroutine runs. A shared, lock-free-but-contended
// global source would serialise otherwise-independent iterations; per-worker
// sources avoid that while keeping the bulk generation cheap (non-crypto)
// after the one-time seed.
func New() *xrand.Rand {
	return xrand.New(xrand.NewSource(seed()))
}

func seed() uint64 {
	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(^uint64(0)))
	if err != nil {
		// Retry once with a raw crypto/rand read; if that fails too,
		// panic rather than fall back to a constant seed.
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic("xrand: crypto/rand unavailable: " + err.Error())
		}
		return binary.LittleEndian.Uint64(buf[:])
	}
	return n.Uint64()
}

// Element returns a uniformly random element of v.
func Element[T any](r *xrand.Rand, v []T) T {
	return v[r.Intn(len(v))]
}

// WeightedIndex samples an index into weights proportionally to its value,
// mirroring std::discrete_distribution as used by the EXP3 tree policy.
func WeightedIndex(r *xrand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := r.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
