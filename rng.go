package ossim

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// stochasticDraw returns a deterministic pseudo-uniform value in [0,1) for
// (pid, tick, salt), per the spec's SHA-256(pid‖tick‖salt) mod 2^32 / 2^32
// formula. Given the same inputs it always returns the same value, making
// interrupt-trigger decisions reproducible (invariant 8).
func stochasticDraw(pid, tick int, salt string) float64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%s", pid, tick, salt)))
	v := binary.BigEndian.Uint32(sum[:4])
	return float64(v) / (1 << 32)
}

// stochasticDuration draws a deterministic integer in [min,max] for
// (pid, salt), used for durations that must vary by process but stay
// reproducible across runs.
func stochasticDuration(pid int, salt string, min, max int) int {
	if max <= min {
		return min
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", pid, salt)))
	v := binary.BigEndian.Uint32(sum[:4])
	span := uint32(max - min + 1)
	return min + int(v%span)
}

// engineRNG is the engine-owned seeded generator driving auto-spawn and
// sparse page-access sampling, neither of which is keyed by (pid, tick) and
// so cannot use stochasticDraw; reset() re-seeds it for full determinism
// from a given seed.
type engineRNG struct {
	r *rand.Rand
}

func newEngineRNG(seed1, seed2 uint64) *engineRNG {
	return &engineRNG{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (e *engineRNG) Float64() float64 { return e.r.Float64() }

func (e *engineRNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + e.r.IntN(max-min+1)
}
