package rig

// MetadataProvider exposes the authoring tool's knowledge about a rig that the
// classifier and codec cannot derive from the bone graph alone: which bones
// carry skin weights, whether the user forced a deform interpretation, and the
// rig's uniform deform scale factor.
type MetadataProvider interface {
	// SkinWeighted reports whether any mesh skins to the named bone.
	//
	// Parameters:
	//   - bone: the bone name to query
	//
	// Returns:
	//   - bool: true when at least one mesh carries weights for the bone
	SkinWeighted(bone string) bool

	// ForceDeform reports whether the user override forces the rig to be
	// treated as a deform rig regardless of skin weights.
	//
	// Returns:
	//   - bool: true when the deform interpretation is forced
	ForceDeform() bool

	// DeformScaleFactor returns the uniform scale applied when encoding
	// deform bones.
	//
	// Returns:
	//   - float32: the scale factor (1 when the rig declares none)
	DeformScaleFactor() float32
}

// Report summarizes one classification pass over a rig.
type Report struct {
	// IsSkinned is true when any bone is skin-weighted or the deform
	// interpretation is forced.
	IsSkinned bool

	// Motor, Deform, and Helper count the bones per classification.
	Motor, Deform, Helper int
}

// Classify stamps every bone in the rig with its classification and reports
// the rig-level skinning flag. A bone with the full motor rest-time triple is
// motor; a skin-weighted bone is deform; anything else is helper. Pure
// function of the rig and provider, called once per export.
//
// Parameters:
//   - r: the rig to classify
//   - meta: the authoring tool's rig metadata
//
// Returns:
//   - Report: per-class counts and the rig-level skinning flag
func Classify(r *Rig, meta MetadataProvider) Report {
	var rep Report
	for _, b := range r.Bones {
		switch {
		case b.HasMotorRest():
			b.Classification = ClassMotor
			rep.Motor++
		case meta.SkinWeighted(b.Name):
			b.Classification = ClassDeform
			rep.Deform++
			rep.IsSkinned = true
		default:
			b.Classification = ClassHelper
			rep.Helper++
		}
	}
	if meta.ForceDeform() {
		rep.IsSkinned = true
	}
	return rep
}
