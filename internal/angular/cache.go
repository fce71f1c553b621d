package angular

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// Embedded low-order Lebedev datasets. Same file format as the full
// published sets, so a complete dataset directory is a drop-in via
// NewCacheFS(os.DirFS(dir)).
//
//go:embed lebedevquad/*.txt
var datasets embed.FS

// ErrTableNotFound indicates no angular-table resource exists for the
// requested precision in the cache's dataset.
var ErrTableNotFound = errors.New("angular table not found")

// Cache lazily loads and memoises angular quadrature tables by precision.
// Entries persist for the cache's lifetime; tables are small and reused
// across many grid constructions, so there is no eviction.
//
// The whole check-load-insert sequence runs under one lock, so concurrent
// first use of the same precision performs a single resource read.
type Cache struct {
	mu     sync.Mutex
	fsys   fs.FS
	tables map[int]*Table
}

// Default is the process-wide cache over the embedded datasets. Grid
// constructors fall back to it when no cache is injected.
var Default = NewCache()

// NewCache returns an empty cache backed by the embedded Lebedev datasets.
func NewCache() *Cache {
	sub, err := fs.Sub(datasets, "lebedevquad")
	if err != nil {
		// The embedded tree always contains lebedevquad.
		panic(fmt.Sprintf("angular: embedded dataset missing: %v", err))
	}
	return NewCacheFS(sub)
}

// NewCacheFS returns an empty cache that reads table resources from the
// root of fsys. Use this to supply a full Lebedev dataset directory, or an
// in-memory filesystem in tests.
func NewCacheFS(fsys fs.FS) *Cache {
	return &Cache{fsys: fsys, tables: make(map[int]*Table)}
}

// Load returns the angular table for prec, reading and converting it from
// the backing dataset on first use. Repeated calls return the same table
// without touching storage. A precision with no backing resource fails
// with an error wrapping ErrTableNotFound.
func (c *Cache) Load(prec int) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[prec]; ok {
		return t, nil
	}

	t, err := parseTable(c.fsys, prec)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("precision %d (%s): %w", prec, TableName(prec), ErrTableNotFound)
		}
		return nil, fmt.Errorf("loading angular table for precision %d: %w", prec, err)
	}
	c.tables[prec] = t
	return t, nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}
