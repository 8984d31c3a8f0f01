package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg := &ChopConfig{}

	assert.Equal(t, 0, cfg.GetIMin())
	assert.Equal(t, 12, cfg.GetIMax(12))
	assert.Equal(t, 0, cfg.GetJMin())
	assert.Equal(t, 7, cfg.GetJMax(7))
	assert.True(t, math.IsInf(cfg.GetZMin(), -1))
	assert.True(t, math.IsInf(cfg.GetZMax(), 1))
	assert.Empty(t, cfg.GetOutput())
	assert.Empty(t, cfg.GetPlotPath())
	assert.Empty(t, cfg.GetSurfaceHTML())
	assert.Empty(t, cfg.GetHistoryDB())
	assert.NoError(t, cfg.Validate())
}

func TestLoadChopConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "chop.json", `{
		"imin": 2, "imax": 10,
		"jmin": 0, "jmax": 4,
		"zmin": 1500.5,
		"extra_fields": ["NTG"],
		"output": "out/chopped.grdecl",
		"history_db": "runs.db"
	}`)

	cfg, err := LoadChopConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.GetIMin())
	assert.Equal(t, 10, cfg.GetIMax(99))
	assert.Equal(t, 4, cfg.GetJMax(99))
	assert.Equal(t, 1500.5, cfg.GetZMin())
	assert.True(t, math.IsInf(cfg.GetZMax(), 1))
	assert.Equal(t, []string{"NTG"}, cfg.ExtraFields)
	assert.Equal(t, "out/chopped.grdecl", cfg.GetOutput())
	assert.Equal(t, "runs.db", cfg.GetHistoryDB())
}

func TestLoadChopConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		body string
	}{
		{"wrong extension", "chop.yaml", `{}`},
		{"bad json", "chop.json", `{"imin": }`},
		{"negative index", "chop.json", `{"jmin": -1}`},
		{"empty i range", "chop.json", `{"imin": 3, "imax": 3}`},
		{"reversed j range", "chop.json", `{"jmin": 4, "jmax": 1}`},
		{"reversed z window", "chop.json", `{"zmin": 2000, "zmax": 1000}`},
		{"blank field", "chop.json", `{"extra_fields": ["NTG", " "]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadChopConfig(writeConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadChopConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadChopConfig_TooLarge(t *testing.T) {
	t.Parallel()
	big := make([]byte, maxConfigBytes+1)
	for i := range big {
		big[i] = ' '
	}
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, big, 0o644))

	_, err := LoadChopConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestMerge(t *testing.T) {
	t.Parallel()
	base := &ChopConfig{
		IMin:        Int(1),
		IMax:        Int(5),
		ZMin:        Float64(1000),
		Output:      String("a.grdecl"),
		ExtraFields: []string{"NTG"},
	}
	base.Merge(&ChopConfig{
		IMax:   Int(8),
		ZMax:   Float64(1200),
		Output: String("b.grdecl"),
	})

	assert.Equal(t, 1, base.GetIMin())
	assert.Equal(t, 8, base.GetIMax(0))
	assert.Equal(t, 1000.0, base.GetZMin())
	assert.Equal(t, 1200.0, base.GetZMax())
	assert.Equal(t, "b.grdecl", base.GetOutput())
	assert.Equal(t, []string{"NTG"}, base.ExtraFields)

	base.Merge(nil)
	base.Merge(&ChopConfig{ExtraFields: []string{"FIPNUM"}})
	assert.Equal(t, []string{"FIPNUM"}, base.ExtraFields)
}
