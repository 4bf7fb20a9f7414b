package arith

import (
	"math"
	"strconv"
)

// Add returns a + b with unsigned 64-bit wraparound.
func Add(a, b uint64) uint64 {
	return a + b
}

// SumAsString returns the default decimal rendering of a + float64(b).
func SumAsString(a float64, b uint) string {
	return FormatFloat(a + float64(b))
}

// FormatFloat renders f with the shortest digits that round-trip and never
// in exponent notation: 5.5 is "5.5", 5.0 is "5", 1e21 is
// "1000000000000000000000". NaN is "NaN" and the infinities are "inf" and
// "-inf".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
