package gen

import (
	"math"
	"math/rand"
)

// Int64InRange returns a uniform value from the inclusive range [lo, hi].
// Callers must ensure lo <= hi. Both generator backends sample through
// this one function so a fixed seed replays identically.
func Int64InRange(rng *rand.Rand, lo, hi int64) int64 {
	if lo == math.MinInt64 && hi == math.MaxInt64 {
		return int64(rng.Uint64())
	}
	// The span fits in a uint64 even when hi-lo overflows int64.
	span := uint64(hi-lo) + 1
	// Rejection-sample to avoid modulo bias.
	thresh := -span % span
	for {
		v := rng.Uint64()
		if v >= thresh {
			return lo + int64(v%span)
		}
	}
}
