package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-bake/common"
)

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`
full_range: true
tolerance: 0.001
fps: 60
step: 2
workers: 4
`))
	require.NoError(t, err)
	assert.True(t, p.FullRange)
	assert.Equal(t, float32(0.001), p.Tolerance)
	assert.Equal(t, float32(60), p.FPS)
	assert.Equal(t, 2, p.Step)
	assert.Equal(t, 4, p.Workers)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	p, err := Parse([]byte(``))
	require.NoError(t, err)
	assert.False(t, p.FullRange)
	assert.Zero(t, p.Tolerance)

	// Only the full-range option is always present.
	assert.Len(t, p.Options(), 1)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("fps: [not a number"))
	assert.Error(t, err)
}

func TestOptionsIncludeToleranceWhenSet(t *testing.T) {
	p := &Profile{Tolerance: 0.01}
	assert.Len(t, p.Options(), 2)
}

func TestApplyOverlaysRange(t *testing.T) {
	p := &Profile{FPS: 60, Step: 3}
	rng := p.Apply(common.BakeRange{Start: 1, End: 100, Step: 1, FPS: 24})
	assert.Equal(t, float32(60), rng.FPS)
	assert.Equal(t, 3, rng.Step)
	assert.Equal(t, 1, rng.Start)
	assert.Equal(t, 100, rng.End)

	// Zero fields leave the range alone.
	rng = (&Profile{}).Apply(common.BakeRange{Start: 1, End: 100, Step: 2, FPS: 24})
	assert.Equal(t, float32(24), rng.FPS)
	assert.Equal(t, 2, rng.Step)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
