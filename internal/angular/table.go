package angular

import (
	"bufio"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/meridian-data/sphquad/internal/units"
)

// MinPrec and MaxPrec bound the valid Lebedev precision range. Precisions
// are odd integers; not every odd value has a published rule (see
// DirectionCount).
const (
	MinPrec = 3
	MaxPrec = 131
)

// ValidPrec reports whether prec is an odd integer within [MinPrec, MaxPrec].
// Grid constructors validate precision before hitting the cache; the cache
// itself only cares whether a backing resource exists.
func ValidPrec(prec int) bool {
	return prec%2 == 1 && prec >= MinPrec && prec <= MaxPrec
}

// TableName returns the resource name for a precision, e.g. precision 3
// maps to "lebedev_003.txt".
func TableName(prec int) string {
	return fmt.Sprintf("lebedev_%03d.txt", prec)
}

// Table is a Lebedev angular quadrature table: parallel columns of azimuthal
// angle phi, polar angle theta (both radians) and a dimensionless quadrature
// weight, one row per angular direction. Tables are immutable after load.
type Table struct {
	prec   int
	phi    []float64
	theta  []float64
	weight []float64
}

// Prec returns the precision the table was loaded for.
func (t *Table) Prec() int { return t.prec }

// Len returns the number of angular directions in the table.
func (t *Table) Len() int { return len(t.weight) }

// Columns returns the phi, theta and weight columns. The returned slices
// are the table's backing arrays and must not be modified.
func (t *Table) Columns() (phi, theta, weight []float64) {
	return t.phi, t.theta, t.weight
}

// WeightSum returns the sum of the quadrature weights. Published Lebedev
// rules are normalised so this is 1 to within rounding of the source data.
func (t *Table) WeightSum() float64 {
	sum := 0.0
	for _, w := range t.weight {
		sum += w
	}
	return sum
}

// parseTable reads a Lebedev text resource from fsys: rows of three
// whitespace-separated columns (angle deg, angle deg, weight), no header.
// Angles are converted to radians here, exactly once.
func parseTable(fsys fs.FS, prec int) (*Table, error) {
	name := TableName(prec)
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{prec: prec}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s line %d: expected 3 columns, got %d", name, lineNo, len(fields))
		}
		var row [3]float64
		for i, field := range fields {
			row[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", name, lineNo, err)
			}
		}
		t.phi = append(t.phi, units.DegToRad(row[0]))
		t.theta = append(t.theta, units.DegToRad(row[1]))
		t.weight = append(t.weight, row[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("%s: empty angular table", name)
	}
	return t, nil
}
