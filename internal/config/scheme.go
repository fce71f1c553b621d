// Package config loads grid scheme configuration files.
//
// A scheme describes how to assemble a truncated quadrature grid: one
// entry per radial shell with its radial point count and angular
// precision. The same JSON shape is accepted on the command line and in
// checked-in scheme files, and partial configs are safe: omitted fields
// fall back to defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meridian-data/sphquad/internal/angular"
)

// ShellConfig describes one radial shell of a grid scheme.
type ShellConfig struct {
	// RMin/RMax bound the shell's radii. RMin defaults to the previous
	// shell's RMax (0 for the first shell).
	RMin *float64 `json:"r_min,omitempty"`
	RMax *float64 `json:"r_max,omitempty"`
	// NR is the number of radial points in the shell.
	NR *int `json:"nr,omitempty"`
	// Precision selects the Lebedev rule for the shell.
	Precision *int `json:"precision,omitempty"`
}

// SchemeConfig is the root grid scheme configuration.
type SchemeConfig struct {
	// DatasetDir points at a full Lebedev dataset directory. Empty means
	// the embedded datasets.
	DatasetDir *string `json:"dataset_dir,omitempty"`
	// DType and Device are propagated into the built grids.
	DType  *string `json:"dtype,omitempty"`
	Device *string `json:"device,omitempty"`

	Shells []ShellConfig `json:"shells"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// LoadSchemeFile loads a SchemeConfig from a JSON file. The file must have
// a .json extension and stay under the max file size. The returned config
// has defaults applied and is validated.
func LoadSchemeFile(path string) (*SchemeConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("scheme file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scheme file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("scheme file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file: %w", err)
	}

	cfg := &SchemeConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scheme JSON: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheme: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills omitted optional fields: dtype float64, device cpu,
// and each shell's RMin chained from the previous shell's RMax.
func (c *SchemeConfig) ApplyDefaults() {
	if c.DType == nil {
		c.DType = ptrString("float64")
	}
	if c.Device == nil {
		c.Device = ptrString("cpu")
	}

	prevMax := 0.0
	for i := range c.Shells {
		shell := &c.Shells[i]
		if shell.RMin == nil {
			shell.RMin = ptrFloat64(prevMax)
		}
		if shell.RMax != nil {
			prevMax = *shell.RMax
		}
	}
}

// Validate checks the scheme for structural mistakes: no shells, missing
// or non-positive counts, invalid or unpublished precisions, and
// non-monotone shell edges.
func (c *SchemeConfig) Validate() error {
	if len(c.Shells) == 0 {
		return fmt.Errorf("scheme has no shells")
	}

	prevMax := 0.0
	for i, shell := range c.Shells {
		if shell.NR == nil || *shell.NR <= 0 {
			return fmt.Errorf("shell %d: nr must be a positive integer", i)
		}
		if shell.Precision == nil {
			return fmt.Errorf("shell %d: precision is required", i)
		}
		prec := *shell.Precision
		if !angular.ValidPrec(prec) {
			return fmt.Errorf("shell %d: precision %d must be an odd number in [%d, %d]",
				i, prec, angular.MinPrec, angular.MaxPrec)
		}
		if _, ok := angular.DirectionCount(prec); !ok {
			return fmt.Errorf("shell %d: no published Lebedev rule for precision %d", i, prec)
		}
		if shell.RMax == nil {
			return fmt.Errorf("shell %d: r_max is required", i)
		}
		if *shell.RMin < 0 {
			return fmt.Errorf("shell %d: r_min %g is negative", i, *shell.RMin)
		}
		if *shell.RMax <= *shell.RMin {
			return fmt.Errorf("shell %d: r_max %g must exceed r_min %g", i, *shell.RMax, *shell.RMin)
		}
		if *shell.RMin < prevMax {
			return fmt.Errorf("shell %d: r_min %g overlaps previous shell ending at %g", i, *shell.RMin, prevMax)
		}
		prevMax = *shell.RMax
	}
	return nil
}

// GetDType returns the configured dtype, defaulting to float64.
func (c *SchemeConfig) GetDType() string {
	if c.DType == nil {
		return "float64"
	}
	return *c.DType
}

// GetDevice returns the configured device, defaulting to cpu.
func (c *SchemeConfig) GetDevice() string {
	if c.Device == nil {
		return "cpu"
	}
	return *c.Device
}

// GetDatasetDir returns the configured dataset directory, empty when the
// embedded datasets should be used.
func (c *SchemeConfig) GetDatasetDir() string {
	if c.DatasetDir == nil {
		return ""
	}
	return *c.DatasetDir
}
