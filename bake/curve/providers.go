package curve

// Provider exposes the authoring tool's curve storage. Implementations must
// return stable results for the duration of one export.
type Provider interface {
	// BoneCurves returns the curves authored directly on the named bone's
	// channels, or nil when the bone has none.
	//
	// Parameters:
	//   - bone: the bone name
	//
	// Returns:
	//   - []Curve: the bone's authored curves
	BoneCurves(bone string) []Curve

	// ObjectCurves returns the curves authored on an external object, such as
	// a constraint target.
	//
	// Parameters:
	//   - object: the external object's identifier
	//
	// Returns:
	//   - []Curve: the object's authored curves
	ObjectCurves(object string) []Curve

	// MixingTracks reports whether a track blender (NLA-equivalent) is
	// actively mixing multiple animation sources into the rig's pose.
	//
	// Returns:
	//   - bool: true when track mixing is active
	MixingTracks() bool
}

// ConstraintProvider exposes the authoring tool's constraint graph, reduced to
// the queries the bake engine needs: which bones are driven by constraints and
// which external objects drive them.
type ConstraintProvider interface {
	// ConstrainedBones returns the names of bones directly targeted by any
	// constraint.
	//
	// Returns:
	//   - map[string]bool: set of directly constrained bone names
	ConstrainedBones() map[string]bool

	// IKChainBones returns the names of bones reachable transitively through
	// an IK chain, bounded by each chain's declared length.
	//
	// Returns:
	//   - map[string]bool: set of IK-chain bone names
	IKChainBones() map[string]bool

	// TargetsOf returns the external objects whose motion drives the named
	// bone through a constraint, or nil when none do.
	//
	// Parameters:
	//   - bone: the bone name
	//
	// Returns:
	//   - []string: external target object identifiers
	TargetsOf(bone string) []string
}

// ConstrainedSet merges directly constrained and IK-chain bones into the
// single emission set the sampler consults: any bone in this set is emitted
// in every sampled frame.
//
// Parameters:
//   - p: the constraint provider
//
// Returns:
//   - map[string]bool: union of constrained and IK-chain bone names
func ConstrainedSet(p ConstraintProvider) map[string]bool {
	direct := p.ConstrainedBones()
	chain := p.IKChainBones()
	out := make(map[string]bool, len(direct)+len(chain))
	for b := range direct {
		out[b] = true
	}
	for b := range chain {
		out[b] = true
	}
	return out
}
