package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/meridian-data/sphquad/internal/angular"
	"github.com/meridian-data/sphquad/internal/units"
)

// Option configures grid construction.
type Option func(*buildConfig)

type buildConfig struct {
	cache *angular.Cache
}

// WithCache injects the angular table cache to load from. Defaults to
// angular.Default; tests inject isolated caches over in-memory datasets.
func WithCache(c *angular.Cache) Option {
	return func(cfg *buildConfig) { cfg.cache = c }
}

// Spherical is a 3-D quadrature grid built from one radial grid and one
// Lebedev angular table: the full outer product of radii and angular
// directions, radius-major. Immutable after construction.
type Spherical struct {
	xyz     []Point
	dvolume []float64

	prec       int
	nr         int
	directions int
	dtype      DType
	device     Device
}

var _ Grid = (*Spherical)(nil)

// NewSpherical builds the grid for one radial grid and one precision.
//
// Point k = i*directions + j is radius i paired with angular direction j,
// at x = r·sinθ·cosφ, y = r·sinθ·sinφ, z = r·cosθ, with weight
// dvol[i]·w[j]. dtype and device are propagated from the radial grid.
func NewSpherical(rg RadialGrid, prec int, opts ...Option) (*Spherical, error) {
	cfg := buildConfig{cache: angular.Default}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !angular.ValidPrec(prec) {
		return nil, fmt.Errorf("precision %d must be an odd number in [%d, %d]: %w",
			prec, angular.MinPrec, angular.MaxPrec, ErrInvalidPrec)
	}
	if ct := rg.CoordType(); ct != CoordRadial {
		return nil, fmt.Errorf("radial grid reports coord type %q, want %q: %w", ct, CoordRadial, ErrCoordType)
	}

	table, err := cfg.cache.Load(prec)
	if err != nil {
		return nil, err
	}
	phi, theta, wAngular := table.Columns()

	radii := rg.RGrid()
	dvolRadial := rg.DVolume()
	if len(radii) != len(dvolRadial) {
		return nil, fmt.Errorf("radial grid has %d radii but %d differential volumes", len(radii), len(dvolRadial))
	}

	// Unit direction vectors, computed once per angular direction and
	// scaled per radius.
	directions := table.Len()
	ux := make([]float64, directions)
	uy := make([]float64, directions)
	uz := make([]float64, directions)
	for j := 0; j < directions; j++ {
		ux[j], uy[j], uz[j] = units.SphericalToCartesian(1, phi[j], theta[j])
	}

	n := len(radii) * directions
	xyz := make([]Point, 0, n)
	dvolume := make([]float64, 0, n)
	for i, r := range radii {
		for j := 0; j < directions; j++ {
			xyz = append(xyz, Point{X: r * ux[j], Y: r * uy[j], Z: r * uz[j]})
			dvolume = append(dvolume, dvolRadial[i]*wAngular[j])
		}
	}

	return &Spherical{
		xyz:        xyz,
		dvolume:    dvolume,
		prec:       prec,
		nr:         len(radii),
		directions: directions,
		dtype:      rg.DType(),
		device:     rg.Device(),
	}, nil
}

// RGrid returns the Cartesian sample points, radius-major. Callers must
// not modify the returned slice.
func (s *Spherical) RGrid() []Point { return s.xyz }

// DVolume returns the integration weights, parallel to RGrid.
func (s *Spherical) DVolume() []float64 { return s.dvolume }

// WeightSum returns the total integration weight of the grid.
func (s *Spherical) WeightSum() float64 { return floats.Sum(s.dvolume) }

// Prec returns the angular precision the grid was built with.
func (s *Spherical) Prec() int { return s.prec }

// NR returns the number of radii.
func (s *Spherical) NR() int { return s.nr }

// Directions returns the number of angular directions per radius.
func (s *Spherical) Directions() int { return s.directions }

// CoordType reports CoordCart.
func (s *Spherical) CoordType() CoordType { return CoordCart }

func (s *Spherical) DType() DType   { return s.dtype }
func (s *Spherical) Device() Device { return s.device }

// ParamNames maps "RGrid" and "DVolume" to their backing field
// identifiers; any other name fails with ErrUnknownMethod.
func (s *Spherical) ParamNames(method string) ([]string, error) {
	return paramNames(method)
}
