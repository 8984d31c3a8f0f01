// Package config loads the optional JSON file describing a chop run.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ChopConfig describes one chop run. Every field is optional; the Get*
// methods supply defaults for fields left out of the JSON file, and command
// line flags override whatever the file sets (see Merge).
type ChopConfig struct {
	// Selection
	IMin *int     `json:"imin,omitempty"`
	IMax *int     `json:"imax,omitempty"`
	JMin *int     `json:"jmin,omitempty"`
	JMax *int     `json:"jmax,omitempty"`
	ZMin *float64 `json:"zmin,omitempty"`
	ZMax *float64 `json:"zmax,omitempty"`

	// ExtraFields are per-cell keywords carried over in addition to
	// ACTNUM, PORO, PERMX, PERMY, PERMZ and SATNUM.
	ExtraFields []string `json:"extra_fields,omitempty"`

	// Files
	Input       *string `json:"input,omitempty"`
	Output      *string `json:"output,omitempty"`
	PlotPath    *string `json:"plot_path,omitempty"`    // PNG of per-layer depth span
	SurfaceHTML *string `json:"surface_html,omitempty"` // top surface chart
	HistoryDB   *string `json:"history_db,omitempty"`   // sqlite run history
}

// Helper functions to create pointers
func Int(v int) *int             { return &v }
func Float64(v float64) *float64 { return &v }
func String(v string) *string    { return &v }

const maxConfigBytes = 1 * 1024 * 1024 // 1MB

// LoadChopConfig loads a ChopConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadChopConfig(path string) (*ChopConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigBytes)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ChopConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that can be checked without the grid.
// Bounds against the grid dimensions are checked by the chopper.
func (c *ChopConfig) Validate() error {
	for name, v := range map[string]*int{"imin": c.IMin, "imax": c.IMax, "jmin": c.JMin, "jmax": c.JMax} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, *v)
		}
	}
	if c.IMin != nil && c.IMax != nil && *c.IMin >= *c.IMax {
		return fmt.Errorf("imin (%d) must be below imax (%d)", *c.IMin, *c.IMax)
	}
	if c.JMin != nil && c.JMax != nil && *c.JMin >= *c.JMax {
		return fmt.Errorf("jmin (%d) must be below jmax (%d)", *c.JMin, *c.JMax)
	}
	if c.ZMin != nil && math.IsNaN(*c.ZMin) || c.ZMax != nil && math.IsNaN(*c.ZMax) {
		return fmt.Errorf("zmin and zmax must be numbers")
	}
	if c.ZMin != nil && c.ZMax != nil && *c.ZMin >= *c.ZMax {
		return fmt.Errorf("zmin (%g) must be below zmax (%g)", *c.ZMin, *c.ZMax)
	}
	for _, f := range c.ExtraFields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("extra_fields contains an empty name")
		}
	}
	return nil
}

// Merge overlays every field set in o onto c.
func (c *ChopConfig) Merge(o *ChopConfig) {
	if o == nil {
		return
	}
	mergeInt := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}
	mergeFloat := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}
	mergeString := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	mergeInt(&c.IMin, o.IMin)
	mergeInt(&c.IMax, o.IMax)
	mergeInt(&c.JMin, o.JMin)
	mergeInt(&c.JMax, o.JMax)
	mergeFloat(&c.ZMin, o.ZMin)
	mergeFloat(&c.ZMax, o.ZMax)
	mergeString(&c.Input, o.Input)
	mergeString(&c.Output, o.Output)
	mergeString(&c.PlotPath, o.PlotPath)
	mergeString(&c.SurfaceHTML, o.SurfaceHTML)
	mergeString(&c.HistoryDB, o.HistoryDB)
	if o.ExtraFields != nil {
		c.ExtraFields = o.ExtraFields
	}
}

// GetIMin returns imin or 0.
func (c *ChopConfig) GetIMin() int {
	if c.IMin == nil {
		return 0
	}
	return *c.IMin
}

// GetIMax returns imax or nx, the full I extent.
func (c *ChopConfig) GetIMax(nx int) int {
	if c.IMax == nil {
		return nx
	}
	return *c.IMax
}

// GetJMin returns jmin or 0.
func (c *ChopConfig) GetJMin() int {
	if c.JMin == nil {
		return 0
	}
	return *c.JMin
}

// GetJMax returns jmax or ny, the full J extent.
func (c *ChopConfig) GetJMax(ny int) int {
	if c.JMax == nil {
		return ny
	}
	return *c.JMax
}

// GetZMin returns zmin or -Inf, which clamps to the grid's top.
func (c *ChopConfig) GetZMin() float64 {
	if c.ZMin == nil {
		return math.Inf(-1)
	}
	return *c.ZMin
}

// GetZMax returns zmax or +Inf, which clamps to the grid's bottom.
func (c *ChopConfig) GetZMax() float64 {
	if c.ZMax == nil {
		return math.Inf(1)
	}
	return *c.ZMax
}

// GetInput returns the input deck path or "".
func (c *ChopConfig) GetInput() string { return deref(c.Input) }

// GetOutput returns the output deck path or "".
func (c *ChopConfig) GetOutput() string { return deref(c.Output) }

// GetPlotPath returns the layer plot path or "" when disabled.
func (c *ChopConfig) GetPlotPath() string { return deref(c.PlotPath) }

// GetSurfaceHTML returns the surface chart path or "" when disabled.
func (c *ChopConfig) GetSurfaceHTML() string { return deref(c.SurfaceHTML) }

// GetHistoryDB returns the run history database path or "" when disabled.
func (c *ChopConfig) GetHistoryDB() string { return deref(c.HistoryDB) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
