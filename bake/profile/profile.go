package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-bake/bake"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Profile is a reusable export configuration loaded from YAML. Zero values
// mean "keep the exporter's default"; a profile only overrides what it names.
type Profile struct {
	// FullRange enables the full-range sampling policy on the hybrid path.
	FullRange bool `yaml:"full_range"`

	// Tolerance overrides the per-component record tolerance when positive.
	Tolerance float32 `yaml:"tolerance"`

	// FPS overrides the range's playback rate when positive.
	FPS float32 `yaml:"fps"`

	// Step overrides the range's frame step when positive.
	Step int `yaml:"step"`

	// Workers bounds the batch-export pool when positive.
	Workers int `yaml:"workers"`
}

// Load reads and parses a profile file.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - *Profile: the parsed profile
//   - error: read or parse failure
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a profile from YAML bytes.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Profile: the parsed profile
//   - error: parse failure
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: parse: %w", err)
	}
	return &p, nil
}

// Options converts the profile into exporter builder options.
//
// Returns:
//   - []bake.ExporterBuilderOption: the options the profile implies
func (p *Profile) Options() []bake.ExporterBuilderOption {
	opts := []bake.ExporterBuilderOption{
		bake.WithFullRange(p.FullRange),
	}
	if p.Tolerance > 0 {
		opts = append(opts, bake.WithTolerance(p.Tolerance))
	}
	return opts
}

// Apply overlays the profile's range overrides onto a bake range.
//
// Parameters:
//   - rng: the range to adjust
//
// Returns:
//   - common.BakeRange: the range with FPS and Step overridden where set
func (p *Profile) Apply(rng common.BakeRange) common.BakeRange {
	if p.FPS > 0 {
		rng.FPS = p.FPS
	}
	if p.Step > 0 {
		rng.Step = p.Step
	}
	return rng
}
