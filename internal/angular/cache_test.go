package angular

import (
	"io/fs"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFS wraps an fs.FS and counts Open calls, to observe how often the
// cache actually touches storage.
type countingFS struct {
	inner fs.FS
	opens atomic.Int64
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens.Add(1)
	return c.inner.Open(name)
}

func embeddedDatasetFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(datasets, "lebedevquad")
	require.NoError(t, err)
	return sub
}

func TestLoad_EmbeddedTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prec       int
		directions int
	}{
		{3, 6},
		{5, 14},
		{7, 26},
	}

	for _, tt := range tests {
		table, err := NewCache().Load(tt.prec)
		require.NoError(t, err, "precision %d", tt.prec)

		assert.Equal(t, tt.prec, table.Prec())
		assert.Equal(t, tt.directions, table.Len())

		want, ok := DirectionCount(tt.prec)
		require.True(t, ok)
		assert.Equal(t, want, table.Len())

		// Angles converted to radians exactly once: every value in [0, 2pi].
		phi, theta, weight := table.Columns()
		require.Len(t, phi, table.Len())
		require.Len(t, theta, table.Len())
		require.Len(t, weight, table.Len())
		for i := range phi {
			assert.GreaterOrEqual(t, phi[i], 0.0)
			assert.LessOrEqual(t, phi[i], 2*math.Pi)
			assert.GreaterOrEqual(t, theta[i], 0.0)
			assert.LessOrEqual(t, theta[i], math.Pi+1e-12)
		}

		// Published rules are normalised to unit weight sum.
		assert.InDelta(t, 1.0, table.WeightSum(), 1e-9, "precision %d", tt.prec)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	t.Parallel()

	cfs := &countingFS{inner: embeddedDatasetFS(t)}
	cache := NewCacheFS(cfs)

	first, err := cache.Load(5)
	require.NoError(t, err)
	second, err := cache.Load(5)
	require.NoError(t, err)

	// Same table, one storage read.
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), cfs.opens.Load())
	assert.Equal(t, 1, cache.Len())

	phi1, theta1, w1 := first.Columns()
	phi2, theta2, w2 := second.Columns()
	assert.Empty(t, cmp.Diff(phi1, phi2))
	assert.Empty(t, cmp.Diff(theta1, theta2))
	assert.Empty(t, cmp.Diff(w1, w2))
}

func TestLoad_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()

	cfs := &countingFS{inner: embeddedDatasetFS(t)}
	cache := NewCacheFS(cfs)

	const workers = 16
	tables := make([]*Table, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := cache.Load(7)
			if err != nil {
				t.Error(err)
				return
			}
			tables[i] = table
		}(i)
	}
	wg.Wait()

	// The populate path is serialised: exactly one read, one shared table.
	assert.Equal(t, int64(1), cfs.opens.Load())
	for i := 1; i < workers; i++ {
		assert.Same(t, tables[0], tables[i])
	}
}

func TestLoad_MissingResource(t *testing.T) {
	t.Parallel()

	// Precision 9 is a published rule but its dataset is not embedded.
	_, err := NewCache().Load(9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.Contains(t, err.Error(), "precision 9")
	assert.Contains(t, err.Error(), "lebedev_009.txt")
}

func TestLoad_MalformedResource(t *testing.T) {
	t.Parallel()

	t.Run("wrong column count", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"lebedev_003.txt": {Data: []byte("0.0 90.0\n")},
		}
		_, err := NewCacheFS(fsys).Load(3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
		assert.NotErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("non-numeric column", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"lebedev_003.txt": {Data: []byte("0.0 90.0 bogus\n")},
		}
		_, err := NewCacheFS(fsys).Load(3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"lebedev_003.txt": {Data: []byte("\n\n")},
		}
		_, err := NewCacheFS(fsys).Load(3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty angular table")
	})

	// A failed load must not poison the cache for a later valid dataset.
	t.Run("failure not cached", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{}
		cache := NewCacheFS(fsys)
		_, err := cache.Load(3)
		require.ErrorIs(t, err, ErrTableNotFound)
		assert.Equal(t, 0, cache.Len())
	})
}

func TestLoad_ExternalDataset(t *testing.T) {
	t.Parallel()

	// A caller-supplied dataset directory is read with the same format.
	fsys := fstest.MapFS{
		"lebedev_009.txt": {Data: []byte(
			"0.0 90.0 0.5\n" +
				"180.0 90.0 0.5\n")},
	}
	table, err := NewCacheFS(fsys).Load(9)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	phi, theta, weight := table.Columns()
	assert.InDelta(t, 0.0, phi[0], 1e-12)
	assert.InDelta(t, math.Pi, phi[1], 1e-12)
	assert.InDelta(t, math.Pi/2, theta[0], 1e-12)
	assert.Equal(t, []float64{0.5, 0.5}, weight)
}

func TestValidPrec(t *testing.T) {
	t.Parallel()

	valid := []int{3, 5, 7, 101, 131}
	for _, prec := range valid {
		assert.True(t, ValidPrec(prec), "precision %d", prec)
	}
	invalid := []int{-3, 0, 1, 2, 4, 6, 130, 132, 133}
	for _, prec := range invalid {
		assert.False(t, ValidPrec(prec), "precision %d", prec)
	}
}

func TestDirectionCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prec  int
		n     int
		known bool
	}{
		{3, 6, true},
		{5, 14, true},
		{7, 26, true},
		{31, 350, true},
		{131, 5810, true},
		{33, 0, false}, // odd, in range, but no published rule
		{4, 0, false},
	}
	for _, tt := range tests {
		n, ok := DirectionCount(tt.prec)
		assert.Equal(t, tt.known, ok, "precision %d", tt.prec)
		assert.Equal(t, tt.n, n, "precision %d", tt.prec)
	}
}

func TestTableName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lebedev_003.txt", TableName(3))
	assert.Equal(t, "lebedev_131.txt", TableName(131))
}
