// Package units provides shared angle units and spherical coordinate helpers.
package units

import "math"

// Angle unit constants
const (
	Degrees = "deg"
	Radians = "rad"
)

// ValidAngleUnits contains all valid angle unit values
var ValidAngleUnits = []string{Degrees, Radians}

// IsValidAngleUnit checks if the given unit is in the list of valid angle units
func IsValidAngleUnit(unit string) bool {
	for _, validUnit := range ValidAngleUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// DegToRad converts an angle from degrees to radians.
// Angular quadrature tables store angles in degrees; everything downstream
// works in radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// RadToDeg converts an angle from radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// SphericalToCartesian converts a spherical coordinate (r, phi, theta) to
// Cartesian (x, y, z). Phi is the azimuthal angle and theta the polar
// (colatitude) angle, both in radians.
func SphericalToCartesian(r, phi, theta float64) (x, y, z float64) {
	sinP, cosP := math.Sincos(phi)
	sinT, cosT := math.Sincos(theta)
	return r * sinT * cosP, r * sinT * sinP, r * cosT
}
