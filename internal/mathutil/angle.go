package mathutil

import "math"

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NormalizeAngle maps an angle in degrees into [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// AngleDist returns the shortest angular distance between two angles in degrees (0 to 180).
func AngleDist(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}

// LerpAngle interpolates from angle a to angle b (degrees) travelling in the
// direction given by spin: positive is counter-clockwise, negative clockwise,
// zero holds a.
func LerpAngle(a, b, t float64, spin int) float64 {
	switch {
	case spin > 0:
		if b-a < 0 {
			b += 360
		}
	case spin < 0:
		if b-a > 0 {
			b -= 360
		}
	default:
		return a
	}
	return Lerp(a, b, t)
}
