package grid

import "fmt"

// Radial is a minimal slice-backed RadialGrid wrapping caller-supplied
// radii and differential volumes. Radial scheme generation and coordinate
// transforms are the caller's business; this type only carries their
// output into grid construction.
type Radial struct {
	radii  []float64
	dvol   []float64
	dtype  DType
	device Device
}

var _ RadialGrid = (*Radial)(nil)

// RadialOption configures a Radial under construction.
type RadialOption func(*Radial)

// RadialDType overrides the propagated numeric dtype (default Float64).
func RadialDType(dt DType) RadialOption {
	return func(r *Radial) { r.dtype = dt }
}

// RadialDevice overrides the propagated compute device (default CPU).
func RadialDevice(dev Device) RadialOption {
	return func(r *Radial) { r.device = dev }
}

// NewRadial wraps radii and their differential volumes. Both slices must be
// non-empty and equal in length, and radii must be non-negative. The slices
// are copied; later caller mutation does not leak into built grids.
func NewRadial(radii, dvol []float64, opts ...RadialOption) (*Radial, error) {
	if len(radii) == 0 {
		return nil, fmt.Errorf("radial grid needs at least one radius")
	}
	if len(radii) != len(dvol) {
		return nil, fmt.Errorf("radial grid has %d radii but %d differential volumes", len(radii), len(dvol))
	}
	for i, r := range radii {
		if r < 0 {
			return nil, fmt.Errorf("radius %d is negative (%g)", i, r)
		}
	}

	rad := &Radial{
		radii:  append([]float64(nil), radii...),
		dvol:   append([]float64(nil), dvol...),
		dtype:  Float64,
		device: CPU,
	}
	for _, opt := range opts {
		opt(rad)
	}
	return rad, nil
}

// RGrid returns the radii. Callers must not modify the returned slice.
func (r *Radial) RGrid() []float64 { return r.radii }

// DVolume returns the differential volumes, parallel to RGrid.
func (r *Radial) DVolume() []float64 { return r.dvol }

// NR returns the number of radii.
func (r *Radial) NR() int { return len(r.radii) }

// CoordType reports CoordRadial.
func (r *Radial) CoordType() CoordType { return CoordRadial }

func (r *Radial) DType() DType   { return r.dtype }
func (r *Radial) Device() Device { return r.device }
