package scenario

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DeriveTrialSeed derives a stable per-trial seed from a sweep's master
// seed, so an entire parameter sweep reproduces from one configured value.
func DeriveTrialSeed(master int64, sweep string, value float64, trial int) int64 {
	h := xxhash.Sum64String(fmt.Sprintf("%s/%v/trial-%d", sweep, value, trial))
	return int64(h ^ uint64(master))
}
