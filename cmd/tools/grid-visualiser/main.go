// Command grid-visualiser serves debugging views of a spherical quadrature
// grid over HTTP: a 3D scatter of the sample points coloured by
// integration weight, and a 2D equatorial projection. Build parameters
// come from query params so shell/precision combinations can be compared
// without restarting.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/meridian-data/sphquad/internal/grid"
)

var (
	listen    = flag.String("listen", ":8099", "HTTP listen address")
	maxPoints = flag.Int("max-points", 8000, "Maximum points per chart before stride downsampling")
)

func main() {
	flag.Parse()

	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/grid3d", handleGrid3D)
	http.HandleFunc("/equatorial", handleEquatorial)

	log.Printf("grid-visualiser listening on %s", *listen)
	log.Fatal(http.ListenAndServe(*listen, nil))
}

// gridFromQuery builds a grid from nr, rmax and precs query params,
// falling back to a small three-shell default.
func gridFromQuery(r *http.Request) (*grid.Truncated, error) {
	nr := 20
	if v := r.URL.Query().Get("nr"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 2000 {
			return nil, fmt.Errorf("bad nr %q", v)
		}
		nr = n
	}
	rmax := 10.0
	if v := r.URL.Query().Get("rmax"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("bad rmax %q", v)
		}
		rmax = f
	}
	precs := []int{3, 5, 7}
	if v := r.URL.Query().Get("precs"); v != "" {
		precs = precs[:0]
		for _, field := range strings.Split(v, ",") {
			p, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("bad precision %q", field)
			}
			precs = append(precs, p)
		}
	}

	var rgs []grid.RadialGrid
	width := rmax / float64(len(precs))
	for i := range precs {
		rmin := float64(i) * width
		dr := width / float64(nr)
		radii := make([]float64, nr)
		dvol := make([]float64, nr)
		for j := range radii {
			rad := rmin + (float64(j)+0.5)*dr
			radii[j] = rad
			dvol[j] = 4 * math.Pi * rad * rad * dr
		}
		rg, err := grid.NewRadial(radii, dvol)
		if err != nil {
			return nil, err
		}
		rgs = append(rgs, rg)
	}
	return grid.NewTruncated(rgs, precs)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><head><title>sphquad grid visualiser</title></head><body>
<h1>sphquad grid visualiser</h1>
<p>Query params on both views: nr, rmax, precs (comma-separated).</p>
<ul>
<li><a href="/grid3d">/grid3d</a> - 3D scatter of grid points</li>
<li><a href="/equatorial">/equatorial</a> - equatorial cross-section</li>
</ul>
</body></html>`))
}

func handleGrid3D(w http.ResponseWriter, r *http.Request) {
	tg, err := gridFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	points := tg.RGrid()
	weights := tg.DVolume()
	stride := 1
	if len(points) > *maxPoints {
		stride = int(math.Ceil(float64(len(points)) / float64(*maxPoints)))
	}

	data := make([]opts.Chart3DData, 0, len(points)/stride+1)
	maxWeight := 0.0
	for k := 0; k < len(points); k += stride {
		p := points[k]
		if weights[k] > maxWeight {
			maxWeight = weights[k]
		}
		data = append(data, opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z, weights[k]}})
	}
	if maxWeight == 0 {
		maxWeight = 1
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Quadrature Grid 3D", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Quadrature grid points", Subtitle: fmt.Sprintf("shells=%d points=%d stride=%d", len(tg.Shells()), len(points), stride)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxWeight),
			Dimension:  "3",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)
	scatter.AddSeries("grid", data)

	renderChart(w, scatter)
}

func handleEquatorial(w http.ResponseWriter, r *http.Request) {
	tg, err := gridFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	points := tg.RGrid()
	weights := tg.DVolume()

	// Keep points near the equatorial plane; slab thickness scales with
	// the outermost shell.
	pad := 0.0
	for _, p := range points {
		if rad := p.Norm(); rad > pad {
			pad = rad
		}
	}
	slab := pad * 0.05

	data := make([]opts.ScatterData, 0, 1024)
	for k, p := range points {
		if math.Abs(p.Z) <= slab {
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y, weights[k]}})
		}
	}
	pad *= 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Quadrature Grid (Equatorial)", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Equatorial cross-section", Subtitle: fmt.Sprintf("points=%d slab=%.3g", len(data), slab)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("grid", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	renderChart(w, scatter)
}

type renderer interface {
	Render(w io.Writer) error
}

func renderChart(w http.ResponseWriter, chart renderer) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
