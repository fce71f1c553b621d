package testutil

import (
	"math"
	"testing"
)

func TestAssertInDelta(t *testing.T) {
	AssertInDelta(t, 1.0000001, 1.0, 1e-6)
}

func TestAssertAllFinite(t *testing.T) {
	AssertAllFinite(t, []float64{0, -1.5, math.Pi})
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}
