// Command sphquad builds spherical quadrature grids: a radial
// discretization crossed with Lebedev angular tables. It prints a summary
// of the built grid and can persist it to a sqlite grid store for reuse.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/meridian-data/sphquad/internal/angular"
	"github.com/meridian-data/sphquad/internal/config"
	"github.com/meridian-data/sphquad/internal/grid"
	"github.com/meridian-data/sphquad/internal/gridstore"
)

var (
	schemePath = flag.String("scheme", "", "Path to a JSON grid scheme file (multi-shell build)")
	nrFlag     = flag.Int("nr", 100, "Number of radial points (single-shell build)")
	rmaxFlag   = flag.Float64("rmax", 10.0, "Outer radius (single-shell build)")
	precFlag   = flag.Int("prec", 3, "Lebedev precision, odd number in [3, 131] (single-shell build)")
	datasetDir = flag.String("dataset", "", "Directory holding a full Lebedev dataset (default: embedded tables)")
	dbFile     = flag.String("db", "", "Path to the sqlite grid store; empty disables persistence")
	listFlag   = flag.Bool("list", false, "List persisted grid builds and exit (requires -db)")
	migrateCmd = flag.String("migrate", "", "Run a grid store migration (up, down or version) and exit (requires -db)")
	migrations = flag.String("migrations", "internal/gridstore/migrations", "Path to the grid store migrations directory")
)

func main() {
	flag.Parse()

	if *migrateCmd != "" {
		if err := runMigrate(*migrateCmd); err != nil {
			log.Fatalf("migrate %s: %v", *migrateCmd, err)
		}
		return
	}
	if *listFlag {
		if err := runList(); err != nil {
			log.Fatalf("list builds: %v", err)
		}
		return
	}

	cache := angular.Default
	if *datasetDir != "" {
		cache = angular.NewCacheFS(os.DirFS(*datasetDir))
	}

	tg, precs, err := buildGrid(cache)
	if err != nil {
		log.Fatalf("build grid: %v", err)
	}
	printSummary(tg)

	if *dbFile != "" {
		if err := persistGrid(tg, precs); err != nil {
			log.Fatalf("persist grid: %v", err)
		}
	}
}

// buildGrid assembles the truncated grid described by the scheme file, or
// a single uniform shell from the -nr/-rmax/-prec flags.
func buildGrid(cache *angular.Cache) (*grid.Truncated, []int, error) {
	type shell struct {
		rmin, rmax float64
		nr, prec   int
	}
	var shells []shell

	if *schemePath != "" {
		cfg, err := config.LoadSchemeFile(*schemePath)
		if err != nil {
			return nil, nil, err
		}
		if dir := cfg.GetDatasetDir(); dir != "" {
			cache = angular.NewCacheFS(os.DirFS(dir))
		}
		for _, sc := range cfg.Shells {
			shells = append(shells, shell{rmin: *sc.RMin, rmax: *sc.RMax, nr: *sc.NR, prec: *sc.Precision})
		}
	} else {
		shells = []shell{{rmin: 0, rmax: *rmaxFlag, nr: *nrFlag, prec: *precFlag}}
	}

	var rgs []grid.RadialGrid
	var precs []int
	for i, sh := range shells {
		rg, err := uniformShell(sh.rmin, sh.rmax, sh.nr)
		if err != nil {
			return nil, nil, fmt.Errorf("shell %d: %w", i, err)
		}
		rgs = append(rgs, rg)
		precs = append(precs, sh.prec)
	}

	start := time.Now()
	tg, err := grid.NewTruncated(rgs, precs, grid.WithCache(cache))
	if err != nil {
		return nil, nil, err
	}
	log.Printf("built grid with %d points in %s", len(tg.RGrid()), time.Since(start).Round(time.Microsecond))
	return tg, precs, nil
}

// uniformShell builds an evenly spaced radial grid on (rmin, rmax] with
// spherical volume elements 4*pi*r^2*dr. This is a caller convenience, not
// a quadrature scheme: real radial schemes come from the integration
// machinery upstream of this tool.
func uniformShell(rmin, rmax float64, nr int) (*grid.Radial, error) {
	if nr <= 0 {
		return nil, fmt.Errorf("nr must be positive, got %d", nr)
	}
	if rmax <= rmin || rmin < 0 {
		return nil, fmt.Errorf("bad radial range [%g, %g]", rmin, rmax)
	}

	dr := (rmax - rmin) / float64(nr)
	radii := make([]float64, nr)
	dvol := make([]float64, nr)
	for i := range radii {
		r := rmin + (float64(i)+0.5)*dr
		radii[i] = r
		dvol[i] = 4 * math.Pi * r * r * dr
	}
	return grid.NewRadial(radii, dvol)
}

func printSummary(tg *grid.Truncated) {
	fmt.Printf("grid: %d shells, %d points, coord type %q, dtype %s, device %s\n",
		len(tg.Shells()), len(tg.RGrid()), tg.CoordType(), tg.DType(), tg.Device())
	fmt.Printf("total integration weight: %.9g\n", tg.WeightSum())
	for i, sh := range tg.Shells() {
		fmt.Printf("  shell %d: prec %3d, %4d radii x %4d directions = %7d points, weight %.9g\n",
			i, sh.Prec(), sh.NR(), sh.Directions(), len(sh.RGrid()), sh.WeightSum())
	}
}

func persistGrid(tg *grid.Truncated, precs []int) error {
	store, err := gridstore.Open(*dbFile)
	if err != nil {
		return err
	}
	defer store.Close()

	kind := gridstore.KindTruncated
	if len(precs) == 1 {
		kind = gridstore.KindSpherical
	}
	rec, err := gridstore.EncodeGrid(tg, kind, precs)
	if err != nil {
		return err
	}
	if err := store.InsertBuild(rec); err != nil {
		return err
	}
	fmt.Printf("persisted build %s to %s\n", rec.BuildID, *dbFile)
	return nil
}

func runList() error {
	if *dbFile == "" {
		return fmt.Errorf("-list requires -db")
	}
	store, err := gridstore.Open(*dbFile)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ListBuilds(50)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no persisted builds")
		return nil
	}
	for _, rec := range recs {
		created := time.Unix(0, rec.CreatedUnixNanos).Format(time.RFC3339)
		fmt.Printf("%s  %s  %-9s  %d shells  %7d points  precs %s\n",
			rec.BuildID, created, rec.Kind, rec.Shells, rec.NPoints, rec.PrecsJSON)
	}
	return nil
}

func runMigrate(cmd string) error {
	if *dbFile == "" {
		return fmt.Errorf("-migrate requires -db")
	}
	db, err := sql.Open("sqlite", *dbFile)
	if err != nil {
		return err
	}
	store := &gridstore.Store{DB: db}
	defer store.Close()

	switch cmd {
	case "up":
		return store.MigrateUp(*migrations)
	case "down":
		return store.MigrateDown(*migrations)
	case "version":
		version, dirty, err := store.MigrateVersion(*migrations)
		if err != nil {
			return err
		}
		fmt.Printf("version %d, dirty %v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q (want up, down or version)", cmd)
	}
}
