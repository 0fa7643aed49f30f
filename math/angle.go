// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "math"

const Pi = math.Pi

// AngleMod32 changes an angle to be within 0-360 degrees
func AngleMod32(a float32) float32 {
	return float32(AngleMod(float64(a)))
}

// AngleMod changes an angle to be within 0-360 degrees
func AngleMod(a float64) float64 {
	return a - math.Floor(a/360)*360
}

// AngleDelta returns the shortest signed difference b-a in radians,
// within (-Pi, Pi]
func AngleDelta(a, b float32) float32 {
	d := float64(b - a)
	d = d - math.Floor(d/(2*math.Pi))*2*math.Pi
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	return float32(d)
}

func Deg2Rad(deg float32) float32 {
	return deg * (math.Pi / 180)
}

func Rad2Deg(rad float32) float32 {
	return rad * (180 / math.Pi)
}
