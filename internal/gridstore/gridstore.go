// Package gridstore persists built quadrature grids to sqlite so that
// expensive grid constructions can be reused across runs. Point and weight
// arrays are stored as one gob-encoded, gzip-compressed blob per build.
package gridstore

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	_ "embed"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/meridian-data/sphquad/internal/grid"
	"github.com/meridian-data/sphquad/internal/monitoring"
)

// Grid build kinds as stored in the kind column.
const (
	KindSpherical = "spherical"
	KindTruncated = "truncated"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the sqlite database holding grid builds.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the grid store at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying grid store schema: %w", err)
	}

	monitoring.Logf("initialized grid store at %s", path)
	return &Store{db}, nil
}

// BuildRecord is one persisted grid build, matching the grid_build table.
type BuildRecord struct {
	BuildID          string // uuid, assigned by EncodeGrid
	CreatedUnixNanos int64
	Kind             string // KindSpherical or KindTruncated
	Shells           int
	NPoints          int
	PrecsJSON        string // per-shell precisions, JSON int array
	DType            string
	Device           string
	PayloadBlob      []byte // gob+gzip gridPayload
}

// gridPayload is the serialised form of a grid's arrays.
type gridPayload struct {
	Points  []grid.Point
	Weights []float64
}

// serializePayload compresses the grid arrays using gob encoding and gzip.
func serializePayload(p gridPayload) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(p); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deserializePayload decompresses and decodes a payload blob.
func deserializePayload(blob []byte) (gridPayload, error) {
	var p gridPayload
	if len(blob) == 0 {
		return p, fmt.Errorf("empty payload blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return p, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	if err := gob.NewDecoder(gz).Decode(&p); err != nil {
		return p, fmt.Errorf("failed to decode grid payload: %w", err)
	}
	return p, nil
}

// EncodeGrid serialises a built grid into an insertable BuildRecord with a
// fresh build ID. precs lists the per-shell precisions in shell order (a
// single-element list for a plain spherical grid).
func EncodeGrid(g grid.Grid, kind string, precs []int) (*BuildRecord, error) {
	if kind != KindSpherical && kind != KindTruncated {
		return nil, fmt.Errorf("unknown grid kind %q", kind)
	}
	if len(precs) == 0 {
		return nil, fmt.Errorf("no shell precisions given")
	}

	points := g.RGrid()
	weights := g.DVolume()
	blob, err := serializePayload(gridPayload{Points: points, Weights: weights})
	if err != nil {
		return nil, fmt.Errorf("serialising grid payload: %w", err)
	}
	precsJSON, err := json.Marshal(precs)
	if err != nil {
		return nil, err
	}

	return &BuildRecord{
		BuildID:          uuid.NewString(),
		CreatedUnixNanos: time.Now().UnixNano(),
		Kind:             kind,
		Shells:           len(precs),
		NPoints:          len(points),
		PrecsJSON:        string(precsJSON),
		DType:            string(g.DType()),
		Device:           string(g.Device()),
		PayloadBlob:      blob,
	}, nil
}

// DecodeBuild returns the points and weights stored in a build record.
func DecodeBuild(rec *BuildRecord) ([]grid.Point, []float64, error) {
	if rec == nil {
		return nil, nil, fmt.Errorf("nil build record")
	}
	p, err := deserializePayload(rec.PayloadBlob)
	if err != nil {
		return nil, nil, err
	}
	if len(p.Points) != rec.NPoints {
		return nil, nil, fmt.Errorf("payload has %d points, record says %d", len(p.Points), rec.NPoints)
	}
	return p.Points, p.Weights, nil
}

// Precs parses the per-shell precision list out of the record.
func (r *BuildRecord) Precs() ([]int, error) {
	var precs []int
	if err := json.Unmarshal([]byte(r.PrecsJSON), &precs); err != nil {
		return nil, fmt.Errorf("parsing precs_json: %w", err)
	}
	return precs, nil
}

// InsertBuild persists a build record.
func (s *Store) InsertBuild(rec *BuildRecord) error {
	if rec == nil {
		return nil
	}
	stmt := `INSERT INTO grid_build (build_id, created_unix_nanos, kind, shells, npoints, precs_json, dtype, device, payload_blob)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.Exec(stmt, rec.BuildID, rec.CreatedUnixNanos, rec.Kind, rec.Shells,
		rec.NPoints, rec.PrecsJSON, rec.DType, rec.Device, rec.PayloadBlob)
	if err != nil {
		return fmt.Errorf("inserting grid build %s: %w", rec.BuildID, err)
	}
	monitoring.Logf("persisted %s grid build %s (%d points)", rec.Kind, rec.BuildID, rec.NPoints)
	return nil
}

// GetBuild loads one build record by ID. Returns sql.ErrNoRows when the
// build does not exist.
func (s *Store) GetBuild(buildID string) (*BuildRecord, error) {
	stmt := `SELECT build_id, created_unix_nanos, kind, shells, npoints, precs_json, dtype, device, payload_blob
			 FROM grid_build WHERE build_id = ?`
	rec := &BuildRecord{}
	err := s.QueryRow(stmt, buildID).Scan(&rec.BuildID, &rec.CreatedUnixNanos, &rec.Kind,
		&rec.Shells, &rec.NPoints, &rec.PrecsJSON, &rec.DType, &rec.Device, &rec.PayloadBlob)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListBuilds returns the most recent build records, newest first, without
// their payload blobs.
func (s *Store) ListBuilds(limit int) ([]*BuildRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	stmt := `SELECT build_id, created_unix_nanos, kind, shells, npoints, precs_json, dtype, device
			 FROM grid_build ORDER BY created_unix_nanos DESC LIMIT ?`
	rows, err := s.Query(stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*BuildRecord
	for rows.Next() {
		rec := &BuildRecord{}
		if err := rows.Scan(&rec.BuildID, &rec.CreatedUnixNanos, &rec.Kind, &rec.Shells,
			&rec.NPoints, &rec.PrecsJSON, &rec.DType, &rec.Device); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
