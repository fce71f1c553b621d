package grid

import (
	"errors"
	"math"
)

// CoordType identifies the coordinate system a grid's points live in.
type CoordType string

const (
	// CoordRadial marks a 1-D radial grid (radii only).
	CoordRadial CoordType = "radial"
	// CoordCart marks a 3-D grid of Cartesian points.
	CoordCart CoordType = "cart"
)

// DType names the numeric precision of a grid's arrays. It is propagated
// metadata for callers that mix precisions; arrays in this package are
// always float64.
type DType string

// Float64 is the default DType.
const Float64 DType = "float64"

// Device names the compute context a grid belongs to, propagated from the
// radial grid it was built from.
type Device string

// CPU is the default Device.
const CPU Device = "cpu"

// Point is one Cartesian grid sample.
type Point struct {
	X, Y, Z float64
}

// Norm returns the Euclidean distance of the point from the origin.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// RadialGrid is the radial discretization consumed by grid construction:
// an ordered sequence of radii with parallel differential-volume weights.
type RadialGrid interface {
	// RGrid returns the radii, non-negative, length nr.
	RGrid() []float64
	// DVolume returns the per-radius differential volumes, length nr.
	DVolume() []float64
	// CoordType must report CoordRadial.
	CoordType() CoordType
	DType() DType
	Device() Device
}

// Grid is the capability set shared by the produced grid kinds: Cartesian
// sample points, parallel integration weights, and coordinate/precision
// metadata. Both Spherical and Truncated satisfy it.
type Grid interface {
	// RGrid returns the Cartesian sample points.
	RGrid() []Point
	// DVolume returns the integration weight for each point, same order.
	DVolume() []float64
	// CoordType reports CoordCart.
	CoordType() CoordType
	DType() DType
	Device() Device
	// ParamNames maps an accessor method name to the identifiers of the
	// internal state backing its result, for serialization and autodiff
	// integration.
	ParamNames(method string) ([]string, error)
}

// Construction errors. All are programmer or configuration mistakes,
// detected synchronously and never retried.
var (
	ErrInvalidPrec   = errors.New("invalid precision")
	ErrCoordType     = errors.New("wrong coordinate type")
	ErrShellMismatch = errors.New("radial grid and precision lists differ in length")
	ErrNoShells      = errors.New("no shells given")
	ErrUnknownMethod = errors.New("unknown method")
)
