// Package random provides the injectable randomness used for stat rolls and
// event sampling.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the randomness the game consumes. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// New returns a deterministic generator for seed.
func New(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for replayable games.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// NewSeed draws a fresh seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
