// Package motion holds the stateless numeric helpers used when integrating velocity.
package motion

// ApplyFriction moves v toward zero by step.
// The sign of v is preserved; if the step would cross zero the result is exactly zero.
// A non-positive step leaves v unchanged.
func ApplyFriction(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	if v > 0 {
		v -= step
		if v < 0 {
			return 0
		}
		return v
	}
	if v < 0 {
		v += step
		if v > 0 {
			return 0
		}
	}
	return v
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
