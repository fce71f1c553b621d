// Command grid-plot renders diagnostic PNGs of a spherical quadrature
// grid: an equatorial cross-section of the sample points and the
// integration weight per radius. Useful for eyeballing shell boundaries
// and angular resolution changes in truncated grids.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/meridian-data/sphquad/internal/grid"
)

var (
	nrFlag    = flag.Int("nr", 40, "Number of radial points per shell")
	rmaxFlag  = flag.Float64("rmax", 10.0, "Outer radius")
	precsFlag = flag.String("precs", "3,5,7", "Comma-separated Lebedev precisions, one shell each")
	outDir    = flag.String("out", ".", "Output directory for PNG files")
	slabFrac  = flag.Float64("slab", 0.05, "Half-thickness of the equatorial slab as a fraction of rmax")
)

func main() {
	flag.Parse()

	precs, err := parsePrecs(*precsFlag)
	if err != nil {
		log.Fatalf("parse -precs: %v", err)
	}

	tg, err := buildShells(*nrFlag, *rmaxFlag, precs)
	if err != nil {
		log.Fatalf("build grid: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := plotCrossSection(tg, *slabFrac**rmaxFlag, filepath.Join(*outDir, "grid_equatorial.png")); err != nil {
		log.Fatalf("plot cross-section: %v", err)
	}
	if err := plotWeightByRadius(tg, filepath.Join(*outDir, "grid_weights.png")); err != nil {
		log.Fatalf("plot weights: %v", err)
	}
	log.Printf("wrote grid_equatorial.png and grid_weights.png to %s", *outDir)
}

func parsePrecs(s string) ([]int, error) {
	var precs []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad precision %q", field)
		}
		precs = append(precs, p)
	}
	if len(precs) == 0 {
		return nil, fmt.Errorf("no precisions given")
	}
	return precs, nil
}

// buildShells divides [0, rmax] evenly among the precisions, one shell per
// precision, and builds the truncated grid.
func buildShells(nr int, rmax float64, precs []int) (*grid.Truncated, error) {
	var rgs []grid.RadialGrid
	width := rmax / float64(len(precs))
	for i := range precs {
		rmin := float64(i) * width
		dr := width / float64(nr)
		radii := make([]float64, nr)
		dvol := make([]float64, nr)
		for j := range radii {
			r := rmin + (float64(j)+0.5)*dr
			radii[j] = r
			dvol[j] = 4 * math.Pi * r * r * dr
		}
		rg, err := grid.NewRadial(radii, dvol)
		if err != nil {
			return nil, err
		}
		rgs = append(rgs, rg)
	}
	return grid.NewTruncated(rgs, precs)
}

// plotCrossSection scatters grid points with |z| below the slab
// half-thickness onto the XY plane.
func plotCrossSection(tg *grid.Truncated, halfThickness float64, path string) error {
	p := plot.New()
	p.Title.Text = "Equatorial cross-section"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pts := make(plotter.XYs, 0, 1024)
	for _, point := range tg.RGrid() {
		if math.Abs(point.Z) <= halfThickness {
			pts = append(pts, plotter.XY{X: point.X, Y: point.Y})
		}
	}
	if len(pts) == 0 {
		return fmt.Errorf("no grid points within |z| <= %g", halfThickness)
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

// plotWeightByRadius plots each point's integration weight against its
// distance from the origin. Shell boundaries show up as weight jumps.
func plotWeightByRadius(tg *grid.Truncated, path string) error {
	p := plot.New()
	p.Title.Text = "Integration weight by radius"
	p.X.Label.Text = "r"
	p.Y.Label.Text = "weight"

	points := tg.RGrid()
	weights := tg.DVolume()
	pts := make(plotter.XYs, 0, len(points))
	for k, point := range points {
		pts = append(pts, plotter.XY{X: point.Norm(), Y: weights[k]})
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1)
	p.Add(scatter)

	return p.Save(14*vg.Inch, 6*vg.Inch, path)
}
