package gridstore

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-data/sphquad/internal/grid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "grids.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func buildTestGrid(t *testing.T, nr, prec int) *grid.Spherical {
	t.Helper()
	radii := make([]float64, nr)
	dvol := make([]float64, nr)
	for i := range radii {
		radii[i] = float64(i + 1)
		dvol[i] = 0.5
	}
	rg, err := grid.NewRadial(radii, dvol)
	require.NoError(t, err)
	g, err := grid.NewSpherical(rg, prec)
	require.NoError(t, err)
	return g
}

func TestEncodeGrid_RoundTrip(t *testing.T) {
	t.Parallel()

	g := buildTestGrid(t, 10, 3)
	rec, err := EncodeGrid(g, KindSpherical, []int{3})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.BuildID)
	assert.Equal(t, KindSpherical, rec.Kind)
	assert.Equal(t, 1, rec.Shells)
	assert.Equal(t, 60, rec.NPoints)
	assert.Equal(t, "float64", rec.DType)
	assert.Equal(t, "cpu", rec.Device)
	assert.NotEmpty(t, rec.PayloadBlob)

	points, weights, err := DecodeBuild(rec)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(g.RGrid(), points))
	assert.Empty(t, cmp.Diff(g.DVolume(), weights))

	precs, err := rec.Precs()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, precs)
}

func TestEncodeGrid_Invalid(t *testing.T) {
	t.Parallel()

	g := buildTestGrid(t, 2, 3)

	_, err := EncodeGrid(g, "hexahedral", []int{3})
	assert.Error(t, err)

	_, err = EncodeGrid(g, KindSpherical, nil)
	assert.Error(t, err)
}

func TestStore_InsertAndGet(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	g := buildTestGrid(t, 5, 5)
	rec, err := EncodeGrid(g, KindSpherical, []int{5})
	require.NoError(t, err)
	require.NoError(t, store.InsertBuild(rec))

	got, err := store.GetBuild(rec.BuildID)
	require.NoError(t, err)
	assert.Equal(t, rec.BuildID, got.BuildID)
	assert.Equal(t, rec.NPoints, got.NPoints)
	assert.Equal(t, rec.PrecsJSON, got.PrecsJSON)

	points, weights, err := DecodeBuild(got)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(g.RGrid(), points))
	assert.Empty(t, cmp.Diff(g.DVolume(), weights))
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	_, err := store.GetBuild("no-such-build")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStore_ListBuilds(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	g := buildTestGrid(t, 3, 3)
	var ids []string
	for i := 0; i < 3; i++ {
		rec, err := EncodeGrid(g, KindSpherical, []int{3})
		require.NoError(t, err)
		rec.CreatedUnixNanos = int64(1000 + i)
		require.NoError(t, store.InsertBuild(rec))
		ids = append(ids, rec.BuildID)
	}

	recs, err := store.ListBuilds(10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Newest first, payloads omitted.
	assert.Equal(t, ids[2], recs[0].BuildID)
	assert.Equal(t, ids[0], recs[2].BuildID)
	for _, rec := range recs {
		assert.Empty(t, rec.PayloadBlob)
	}

	limited, err := store.ListBuilds(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_TruncatedKind(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	rg1, err := grid.NewRadial([]float64{0.5, 1.0}, []float64{1, 1})
	require.NoError(t, err)
	rg2, err := grid.NewRadial([]float64{2.0, 3.0}, []float64{1, 1})
	require.NoError(t, err)
	tg, err := grid.NewTruncated([]grid.RadialGrid{rg1, rg2}, []int{3, 5})
	require.NoError(t, err)

	rec, err := EncodeGrid(tg, KindTruncated, []int{3, 5})
	require.NoError(t, err)
	require.NoError(t, store.InsertBuild(rec))

	got, err := store.GetBuild(rec.BuildID)
	require.NoError(t, err)
	assert.Equal(t, KindTruncated, got.Kind)
	assert.Equal(t, 2, got.Shells)

	precs, err := got.Precs()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, precs)

	points, _, err := DecodeBuild(got)
	require.NoError(t, err)
	assert.Len(t, points, 2*6+2*14)
}

func TestDecodeBuild_Corrupt(t *testing.T) {
	t.Parallel()

	_, _, err := DecodeBuild(nil)
	assert.Error(t, err)

	_, _, err = DecodeBuild(&BuildRecord{})
	assert.Error(t, err)

	_, _, err = DecodeBuild(&BuildRecord{PayloadBlob: []byte("not gzip")})
	assert.Error(t, err)
}
