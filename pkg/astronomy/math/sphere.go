package math

import "math"

// KM is one kilometre in metres
const KM = 1e3

// SphereVolume returns the volume of a sphere of radius r
func SphereVolume(r float64) float64 {
	return 4 * math.Pi / 3 * r * r * r
}

// ShellVolume returns the volume between radii inner and outer
func ShellVolume(inner, outer float64) float64 {
	return 4 * math.Pi / 3 * (outer*outer*outer - inner*inner*inner)
}

// Pow5 returns x^5 without going through math.Pow
func Pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}

// ToKM converts metres to kilometres
func ToKM(m float64) float64 {
	return m / KM
}

// RelativeError returns (got - want) / want
func RelativeError(got, want float64) float64 {
	if want == 0 {
		return math.Inf(1)
	}
	return (got - want) / want
}
