package wad

import (
	"math"

	"golang.org/x/exp/constraints"
)

// degreesToRadians
func degreesToRadians[T constraints.Integer | constraints.Float](n T) float64 {
	return float64(n) * (math.Pi / 180)
}

const halfScale = 1 << 15

// bamToRadians converts a 16-bit binary angle. Full circle is 0 to 65535, or
// -32768 to 32767 when read signed.
func bamToRadians[T constraints.Integer](n T) float64 {
	return float64(uint16(n)) * math.Pi / halfScale
}
