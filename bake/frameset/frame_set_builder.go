package frameset

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// builder is the implementation of the Builder interface.
type builder struct {
	curves      curve.Provider
	constraints curve.ConstraintProvider
	fullRange   bool
}

// Builder computes the set of frames the sampler must evaluate for a hybrid
// adaptive bake: explicit keys, curvature-forced interior frames, and cyclic
// replicas, always bracketed by the range boundaries.
type Builder interface {
	// Build constructs the frame set for a rig over a bake range. The result
	// is never empty: the range boundaries are always present.
	//
	// Parameters:
	//   - r: the rig being exported
	//   - rng: the bake range
	//
	// Returns:
	//   - *Set: the sorted frame set with key and curvature bookkeeping
	Build(r *rig.Rig, rng common.BakeRange) *Set
}

var _ Builder = &builder{}

// NewBuilder creates a frame-set Builder over the given curve storage and
// constraint graph with the specified options applied.
//
// Parameters:
//   - curves: the authoring tool's curve storage
//   - constraints: the authoring tool's constraint graph
//   - options: variadic list of BuilderOption functions
//
// Returns:
//   - Builder: the configured builder
func NewBuilder(curves curve.Provider, constraints curve.ConstraintProvider, options ...BuilderOption) Builder {
	b := &builder{
		curves:      curves,
		constraints: constraints,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// ownedCurve pairs a curve with the bone whose emission it drives. Object
// curves carry an empty owner: their keys widen the frame set but attribute
// to no bone.
type ownedCurve struct {
	owner string
	c     curve.Curve
}

func (b *builder) Build(r *rig.Rig, rng common.BakeRange) *Set {
	set := &Set{
		Keys:      make(map[int]bool),
		BoneKeys:  make(map[string]map[int]bool),
		Curvature: make(map[string][]Interval),
	}

	curves := b.relevantCurves(r)

	frames := map[int]bool{
		rng.Start: true,
		rng.End:   true,
	}

	anyCyclic := false
	for _, oc := range curves {
		b.addKeys(oc, rng, frames, set)
		b.addCurvature(oc, rng, frames, set)
		if oc.c.Cyclic != nil {
			anyCyclic = true
			b.addCycleReplicas(oc, rng, frames, set)
		}
	}

	// Full-range policy trades artifact size for guaranteed fidelity. It is
	// redundant (and skipped) when a cyclic modifier already densified the
	// set around its replicas.
	if b.fullRange && !anyCyclic {
		for f := rng.Start; f <= rng.End; f += rng.StepOrDefault() {
			frames[f] = true
		}
		frames[rng.End] = true
	}

	set.Frames = make([]int, 0, len(frames))
	for f := range frames {
		set.Frames = append(set.Frames, f)
	}
	sort.Ints(set.Frames)
	return set
}

// relevantCurves gathers the rig's bone curves plus any curves authored on
// external constraint targets.
func (b *builder) relevantCurves(r *rig.Rig) []ownedCurve {
	var out []ownedCurve
	seenObjects := make(map[string]bool)

	for _, bone := range r.Bones {
		for _, c := range b.curves.BoneCurves(bone.Name) {
			out = append(out, ownedCurve{owner: bone.Name, c: c})
		}
		for _, target := range b.constraints.TargetsOf(bone.Name) {
			if seenObjects[target] {
				continue
			}
			seenObjects[target] = true
			for _, c := range b.curves.ObjectCurves(target) {
				out = append(out, ownedCurve{c: c})
			}
		}
	}
	return out
}

// addKeys adds every in-range authored key of one curve to the frame set and
// the key bookkeeping.
func (b *builder) addKeys(oc ownedCurve, rng common.BakeRange, frames map[int]bool, set *Set) {
	for _, kp := range oc.c.Keys {
		f := curve.RoundFrame(kp.Frame)
		if !rng.Contains(f) {
			continue
		}
		frames[f] = true
		set.Keys[f] = true
		if oc.owner != "" {
			set.markBoneKey(oc.owner, f)
		}
	}
}

// addCurvature densifies every curved segment longer than one frame: the
// authored curve shape between the two keys cannot be reproduced by the
// endpoints alone, so every interior integer frame is captured.
func (b *builder) addCurvature(oc ownedCurve, rng common.BakeRange, frames map[int]bool, set *Set) {
	keys := oc.c.Keys
	for i := 0; i+1 < len(keys); i++ {
		if !keys[i].Interpolation.Curved() {
			continue
		}
		a := curve.RoundFrame(keys[i].Frame)
		z := curve.RoundFrame(keys[i+1].Frame)
		if z-a <= 1 {
			continue
		}
		for f := a + 1; f < z; f++ {
			if rng.Contains(f) {
				frames[f] = true
			}
		}
		if oc.owner != "" {
			set.Curvature[oc.owner] = append(set.Curvature[oc.owner], Interval{Start: a, End: z})
		}
	}
}

// addCycleReplicas replicates the curve's base cycle window forward and
// backward by integer multiples of the cycle length, clipped to the range.
// The action-authored range is preferred as the base window; the observed
// keyframe spread is the fallback.
func (b *builder) addCycleReplicas(oc ownedCurve, rng common.BakeRange, frames map[int]bool, set *Set) {
	first, last, ok := oc.c.Span()
	if !ok {
		return
	}
	if oc.c.Cyclic.HasActionRange {
		first, last = oc.c.Cyclic.ActionStart, oc.c.Cyclic.ActionEnd
	}
	cycle := last - first
	if cycle <= 0 {
		return
	}

	for _, kp := range oc.c.Keys {
		// k range such that kp.Frame + k*cycle stays inside the bake window.
		kMin := ceilDiv(float32(rng.Start)-kp.Frame, cycle)
		kMax := floorDiv(float32(rng.End)-kp.Frame, cycle)
		for k := kMin; k <= kMax; k++ {
			f := curve.RoundFrame(kp.Frame + float32(k)*cycle)
			if !rng.Contains(f) {
				continue
			}
			frames[f] = true
			set.Keys[f] = true
			if oc.owner != "" {
				set.markBoneKey(oc.owner, f)
			}
		}
	}
}

// ceilDiv returns the smallest integer k with k*d >= n.
func ceilDiv(n, d float32) int {
	q := n / d
	k := int(q)
	if float32(k) < q {
		k++
	}
	return k
}

// floorDiv returns the largest integer k with k*d <= n.
func floorDiv(n, d float32) int {
	q := n / d
	k := int(q)
	if float32(k) > q {
		k--
	}
	return k
}
