package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Truncated concatenates several Spherical grids, one per radial-grid/
// precision pair, into a single logical grid. Pairing shells of different
// radial extent with different precisions gives shell-dependent angular
// resolution: cheap angular sampling near the origin, dense where it
// matters.
type Truncated struct {
	shells []*Spherical

	xyz     []Point
	dvolume []float64
	dtype   DType
	device  Device
}

var _ Grid = (*Truncated)(nil)

// NewTruncated builds one Spherical per pairwise (rgs[i], precs[i]) and
// concatenates their points and weights in list order. The lists must be
// non-empty and equal in length. dtype and device come from the first
// shell; constituents are assumed to share them.
func NewTruncated(rgs []RadialGrid, precs []int, opts ...Option) (*Truncated, error) {
	if len(rgs) != len(precs) {
		return nil, fmt.Errorf("%d radial grids, %d precisions: %w", len(rgs), len(precs), ErrShellMismatch)
	}
	if len(rgs) == 0 {
		return nil, ErrNoShells
	}

	shells := make([]*Spherical, 0, len(rgs))
	n := 0
	for i := range rgs {
		shell, err := NewSpherical(rgs[i], precs[i], opts...)
		if err != nil {
			return nil, fmt.Errorf("shell %d: %w", i, err)
		}
		shells = append(shells, shell)
		n += len(shell.RGrid())
	}

	t := &Truncated{
		shells:  shells,
		xyz:     make([]Point, 0, n),
		dvolume: make([]float64, 0, n),
		dtype:   shells[0].DType(),
		device:  shells[0].Device(),
	}
	for _, shell := range shells {
		t.xyz = append(t.xyz, shell.RGrid()...)
		t.dvolume = append(t.dvolume, shell.DVolume()...)
	}
	return t, nil
}

// Shells returns the constituent grids in concatenation order. Callers
// must not modify the returned slice.
func (t *Truncated) Shells() []*Spherical { return t.shells }

// RGrid returns the concatenated Cartesian sample points.
func (t *Truncated) RGrid() []Point { return t.xyz }

// DVolume returns the concatenated integration weights, parallel to RGrid.
func (t *Truncated) DVolume() []float64 { return t.dvolume }

// WeightSum returns the total integration weight across all shells.
func (t *Truncated) WeightSum() float64 { return floats.Sum(t.dvolume) }

// CoordType reports CoordCart.
func (t *Truncated) CoordType() CoordType { return CoordCart }

func (t *Truncated) DType() DType   { return t.dtype }
func (t *Truncated) Device() Device { return t.device }

// ParamNames maps "RGrid" and "DVolume" to their backing field
// identifiers; any other name fails with ErrUnknownMethod.
func (t *Truncated) ParamNames(method string) ([]string, error) {
	return paramNames(method)
}
