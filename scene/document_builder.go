package scene

import (
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
)

// DocumentOption is a functional option for configuring a Document during
// construction.
type DocumentOption func(*Document)

// WithBoneCurves is an option builder that attaches authored curves to a
// bone's channels.
//
// Parameters:
//   - bone: the owning bone's name
//   - curves: the curves to attach
//
// Returns:
//   - DocumentOption: a function that attaches the curves to a document
func WithBoneCurves(bone string, curves ...curve.Curve) DocumentOption {
	return func(d *Document) {
		for _, c := range curves {
			c.Bone = bone
			d.boneCurves[bone] = append(d.boneCurves[bone], c)
		}
	}
}

// WithObjectCurves is an option builder that attaches authored curves to an
// external object, typically a constraint target.
//
// Parameters:
//   - object: the external object's identifier
//   - curves: the curves to attach
//
// Returns:
//   - DocumentOption: a function that attaches the curves to a document
func WithObjectCurves(object string, curves ...curve.Curve) DocumentOption {
	return func(d *Document) {
		d.objectCurves[object] = append(d.objectCurves[object], curves...)
	}
}

// WithConstraint is an option builder that marks a bone as directly
// constrained, optionally driven by external target objects.
//
// Parameters:
//   - bone: the constrained bone's name
//   - targets: external objects whose motion drives the bone
//
// Returns:
//   - DocumentOption: a function that records the constraint in a document
func WithConstraint(bone string, targets ...string) DocumentOption {
	return func(d *Document) {
		d.constrained[bone] = true
		d.targets[bone] = append(d.targets[bone], targets...)
	}
}

// WithIKChain is an option builder that marks bones as reachable through an
// IK chain.
//
// Parameters:
//   - bones: the chain's bone names
//
// Returns:
//   - DocumentOption: a function that records the chain in a document
func WithIKChain(bones ...string) DocumentOption {
	return func(d *Document) {
		for _, b := range bones {
			d.ikChain[b] = true
		}
	}
}

// WithSkinWeights is an option builder that marks bones as skin-weighted.
//
// Parameters:
//   - bones: the skin-weighted bone names
//
// Returns:
//   - DocumentOption: a function that records the weights in a document
func WithSkinWeights(bones ...string) DocumentOption {
	return func(d *Document) {
		for _, b := range bones {
			d.skinWeighted[b] = true
		}
	}
}

// WithDeformScale is an option builder that sets the rig's uniform deform
// scale factor.
//
// Parameters:
//   - scale: the scale factor
//
// Returns:
//   - DocumentOption: a function that applies the scale to a document
func WithDeformScale(scale float32) DocumentOption {
	return func(d *Document) {
		if scale != 0 {
			d.deformScale = scale
		}
	}
}

// WithForceDeform is an option builder that forces the deform interpretation
// of the rig regardless of skin weights.
//
// Parameters:
//   - force: true to force the deform interpretation
//
// Returns:
//   - DocumentOption: a function that applies the override to a document
func WithForceDeform(force bool) DocumentOption {
	return func(d *Document) {
		d.forceDeform = force
	}
}

// WithMixingTracks is an option builder that marks the document's track
// blender as actively mixing animation sources.
//
// Parameters:
//   - mixing: true when track mixing is active
//
// Returns:
//   - DocumentOption: a function that applies the flag to a document
func WithMixingTracks(mixing bool) DocumentOption {
	return func(d *Document) {
		d.mixing = mixing
	}
}

// WithPoseOverride is an option builder that installs a direct local-matrix
// source for bones whose motion the document cannot derive from curves, such
// as constraint- or IK-driven bones.
//
// Parameters:
//   - fn: returns a bone's local matrix at a frame, ok=false to fall through
//
// Returns:
//   - DocumentOption: a function that installs the override on a document
func WithPoseOverride(fn func(bone string, frame int) ([16]float32, bool)) DocumentOption {
	return func(d *Document) {
		d.poseOverride = fn
	}
}
