package units

import (
	"math"
	"testing"
)

func TestDegToRad(t *testing.T) {
	tests := []struct {
		name     string
		deg      float64
		expected float64
	}{
		{"zero", 0.0, 0.0},
		{"right angle", 90.0, math.Pi / 2},
		{"straight angle", 180.0, math.Pi},
		{"full turn", 360.0, 2 * math.Pi},
		{"diagonal colatitude", 54.735610317245, 0.9553166181245},
		{"negative angle", -90.0, -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DegToRad(tt.deg)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("DegToRad(%f) = %f, want %f", tt.deg, result, tt.expected)
			}
		})
	}
}

func TestRadToDegRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 30, 45, 90, 135, 180, 270, 359.9} {
		got := RadToDeg(DegToRad(deg))
		if math.Abs(got-deg) > 1e-12 {
			t.Errorf("round trip for %f degrees = %f", deg, got)
		}
	}
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name          string
		r, phi, theta float64
		x, y, z       float64
	}{
		{"north pole", 1.0, 0.0, 0.0, 0.0, 0.0, 1.0},
		{"south pole", 1.0, 0.0, math.Pi, 0.0, 0.0, -1.0},
		{"positive x axis", 1.0, 0.0, math.Pi / 2, 1.0, 0.0, 0.0},
		{"positive y axis", 1.0, math.Pi / 2, math.Pi / 2, 0.0, 1.0, 0.0},
		{"negative x axis", 1.0, math.Pi, math.Pi / 2, -1.0, 0.0, 0.0},
		{"scaled radius", 2.5, 0.0, math.Pi / 2, 2.5, 0.0, 0.0},
		{"zero radius", 0.0, 1.234, 0.567, 0.0, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := SphericalToCartesian(tt.r, tt.phi, tt.theta)
			if math.Abs(x-tt.x) > 1e-12 || math.Abs(y-tt.y) > 1e-12 || math.Abs(z-tt.z) > 1e-12 {
				t.Errorf("SphericalToCartesian(%f, %f, %f) = (%f, %f, %f), want (%f, %f, %f)",
					tt.r, tt.phi, tt.theta, x, y, z, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestSphericalToCartesianRadiusPreserved(t *testing.T) {
	for _, r := range []float64{0.1, 1.0, 7.25} {
		for _, phi := range []float64{0, 1, 2, 3, 4, 5, 6} {
			for _, theta := range []float64{0, 0.5, 1.5, 2.5, 3.1} {
				x, y, z := SphericalToCartesian(r, phi, theta)
				got := math.Sqrt(x*x + y*y + z*z)
				if math.Abs(got-r) > 1e-12 {
					t.Fatalf("norm of (%f, %f, %f) = %f, want %f", x, y, z, got, r)
				}
			}
		}
	}
}

func TestIsValidAngleUnit(t *testing.T) {
	if !IsValidAngleUnit(Degrees) || !IsValidAngleUnit(Radians) {
		t.Error("expected deg and rad to be valid angle units")
	}
	if IsValidAngleUnit("grad") || IsValidAngleUnit("") {
		t.Error("expected grad and empty string to be invalid angle units")
	}
}
