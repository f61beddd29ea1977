package sampler

import (
	"github.com/Carmen-Shannon/oxy-bake/bake/codec"
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/easing"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
)

// lastEmit is the most recent record emitted for a bone, consulted by the
// equivalence-skip rule.
type lastEmit struct {
	rec   codec.Record
	style easing.Style
	dir   easing.Direction
}

// context holds the mutable state of one sampling run: the memoized rest-world
// matrices, the constrained-bone set, and the per-bone last-emitted cache.
// A context never outlives one Sample call and never crosses rigs.
type context struct {
	restWorld   map[string][16]float32
	constrained map[string]bool
	last        map[string]lastEmit
}

func newContext(r *rig.Rig, constraints curve.ConstraintProvider) *context {
	return &context{
		restWorld:   r.RestWorld(),
		constrained: curve.ConstrainedSet(constraints),
		last:        make(map[string]lastEmit, len(r.Bones)),
	}
}

// restWorldFn adapts the rest-world cache to the codec's matrix callback.
func (c *context) restWorldFn() codec.MatrixFn {
	return func(b *rig.Bone) [16]float32 {
		return c.restWorld[b.Name]
	}
}
