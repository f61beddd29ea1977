package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Document is an in-memory authoring scene: a rig, its authored curves, its
// constraint graph, and a shared animation clock. It implements every
// provider interface the bake engine consumes (sampler.PoseEvaluator,
// curve.Provider, curve.ConstraintProvider, rig.MetadataProvider), which
// makes the engine exercisable end to end without the authoring tool.
//
// The document's pose evaluation samples its own curves with linear
// interpolation between keys (constant keys hold). That is sufficient for
// demos and tests; a real authoring integration supplies its own evaluator
// with the tool's full constraint and IK solve.
type Document struct {
	r *rig.Rig

	boneCurves   map[string][]curve.Curve
	objectCurves map[string][]curve.Curve

	constrained map[string]bool
	ikChain     map[string]bool
	targets     map[string][]string

	skinWeighted map[string]bool
	deformScale  float32
	forceDeform  bool
	mixing       bool

	// poseOverride, when set, supplies a bone's local matrix directly,
	// bypassing curve sampling. Used to stand in for constraint- or
	// IK-driven motion.
	poseOverride func(bone string, frame int) ([16]float32, bool)

	clock int
	local map[string][16]float32
	world map[string][16]float32
}

// NewDocument creates a scene document around a rig with the specified
// options applied, and evaluates the pose at frame 0.
//
// Parameters:
//   - r: the rig the document animates
//   - options: variadic list of DocumentOption functions
//
// Returns:
//   - *Document: the assembled document
func NewDocument(r *rig.Rig, options ...DocumentOption) *Document {
	d := &Document{
		r:            r,
		boneCurves:   make(map[string][]curve.Curve),
		objectCurves: make(map[string][]curve.Curve),
		constrained:  make(map[string]bool),
		ikChain:      make(map[string]bool),
		targets:      make(map[string][]string),
		skinWeighted: make(map[string]bool),
		deformScale:  1,
	}
	for _, opt := range options {
		opt(d)
	}
	d.evaluate(0)
	return d
}

// Rig returns the document's rig.
//
// Returns:
//   - *rig.Rig: the rig
func (d *Document) Rig() *rig.Rig {
	return d.r
}

// --- curve.Provider ---

// BoneCurves returns the curves authored on the named bone.
func (d *Document) BoneCurves(bone string) []curve.Curve {
	return d.boneCurves[bone]
}

// ObjectCurves returns the curves authored on an external object.
func (d *Document) ObjectCurves(object string) []curve.Curve {
	return d.objectCurves[object]
}

// MixingTracks reports whether the document's track blender is active.
func (d *Document) MixingTracks() bool {
	return d.mixing
}

// --- curve.ConstraintProvider ---

// ConstrainedBones returns the directly constrained bone set.
func (d *Document) ConstrainedBones() map[string]bool {
	return d.constrained
}

// IKChainBones returns the IK-chain bone set.
func (d *Document) IKChainBones() map[string]bool {
	return d.ikChain
}

// TargetsOf returns the external objects driving the named bone.
func (d *Document) TargetsOf(bone string) []string {
	return d.targets[bone]
}

// --- rig.MetadataProvider ---

// SkinWeighted reports whether any mesh skins to the named bone.
func (d *Document) SkinWeighted(bone string) bool {
	return d.skinWeighted[bone]
}

// ForceDeform reports whether the deform interpretation is forced.
func (d *Document) ForceDeform() bool {
	return d.forceDeform
}

// DeformScaleFactor returns the rig's uniform deform scale.
func (d *Document) DeformScaleFactor() float32 {
	return d.deformScale
}

// --- sampler.PoseEvaluator ---

// Clock returns the active frame.
func (d *Document) Clock() int {
	return d.clock
}

// SetClock re-evaluates every bone's pose for the given frame.
func (d *Document) SetClock(frame int) error {
	d.evaluate(frame)
	return nil
}

// WorldMatrix returns the named bone's world matrix at the active clock.
func (d *Document) WorldMatrix(bone string) ([16]float32, error) {
	m, ok := d.world[bone]
	if !ok {
		return common.IdentityMat4(), fmt.Errorf("scene: unknown bone %q", bone)
	}
	return m, nil
}

// LocalMatrix returns the named bone's parent-relative matrix at the active
// clock.
func (d *Document) LocalMatrix(bone string) ([16]float32, error) {
	m, ok := d.local[bone]
	if !ok {
		return common.IdentityMat4(), fmt.Errorf("scene: unknown bone %q", bone)
	}
	return m, nil
}

// evaluate recomputes local and world matrices for all bones at a frame.
func (d *Document) evaluate(frame int) {
	d.clock = frame
	d.local = make(map[string][16]float32, len(d.r.Bones))
	d.world = make(map[string][16]float32, len(d.r.Bones))

	for _, b := range d.r.Bones {
		local := d.boneLocal(b, frame)
		d.local[b.Name] = local
		if b.Parent != nil {
			d.world[b.Name] = common.MulMat4(d.world[b.Parent.Name], local)
		} else {
			d.world[b.Name] = local
		}
	}
}

// boneLocal computes one bone's parent-relative matrix at a frame: the rest
// pose composed with the sampled pose transform, or the override when one
// applies.
func (d *Document) boneLocal(b *rig.Bone, frame int) [16]float32 {
	if d.poseOverride != nil {
		if m, ok := d.poseOverride(b.Name, frame); ok {
			return m
		}
	}
	curves := d.boneCurves[b.Name]
	if len(curves) == 0 {
		return b.RestLocal
	}
	pose := samplePoseTransform(curves, float32(frame))
	return common.MulMat4(b.RestLocal, pose)
}
