// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	float32 | float64 | int
}

// Clamp limits val to [min, max].
func Clamp[K Number](min, val, max K) K {
	switch {
	case val < min:
		return min
	case val > max:
		return max
	}
	return val
}

// Clamp01 limits val to the unit interval.
func Clamp01[K float32 | float64](val K) K {
	return Clamp(0, val, 1)
}
