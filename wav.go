package waveinfo

import (
	"math"
	"time"
)

// clen returns the index of the first NUL byte, or len(b) when there is none.
func clen(b []byte) int {
	for i := range b {
		if b[i] == 0 {
			return i
		}
	}

	return len(b)
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}

	if seconds >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(math.Round(seconds * float64(time.Second)))
}

func fitsInt(v uint64) bool {
	return v <= math.MaxInt
}
