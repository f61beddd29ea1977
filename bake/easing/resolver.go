package easing

import (
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
)

// resolver is the implementation of the Resolver interface.
type resolver struct {
	curves      curve.Provider
	constraints curve.ConstraintProvider
	constrained map[string]bool

	// previous remembers the last emitted easing per bone for the
	// inheritance rule. Scoped to one export; the resolver is rebuilt per
	// export call.
	previous map[string]resolved
}

// resolved is one (style, direction) pair.
type resolved struct {
	style Style
	dir   Direction
}

// Resolver maps a (bone, frame) pair onto the runtime easing enums using the
// bone's own curve key at that exact frame, then a constrained bone's target
// curve, then the bone's previously emitted easing, then (Linear, Out).
//
// A Resolver carries the per-bone inheritance cache and must be created fresh
// for every export call.
type Resolver interface {
	// Resolve produces the easing for the named bone at the given frame.
	//
	// Parameters:
	//   - bone: the bone name
	//   - frame: the integer frame being sampled
	//
	// Returns:
	//   - Style: the resolved easing style
	//   - Direction: the resolved easing direction
	Resolve(bone string, frame int) (Style, Direction)

	// NoteEmitted records the easing that was actually emitted for a bone so
	// later frames with no key of their own can inherit it.
	//
	// Parameters:
	//   - bone: the bone name
	//   - style: the emitted style
	//   - dir: the emitted direction
	NoteEmitted(bone string, style Style, dir Direction)

	// KeyInterpolation returns the authored interpolation of the bone's own
	// key at the exact frame, used by the sampler's constant-hold skip.
	//
	// Parameters:
	//   - bone: the bone name
	//   - frame: the integer frame
	//
	// Returns:
	//   - curve.Interpolation: the key's interpolation mode
	//   - bool: false when the bone has no key at that frame
	KeyInterpolation(bone string, frame int) (curve.Interpolation, bool)
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver over the given curve storage and constraint
// graph. The constrained set controls when target-curve borrowing applies.
//
// Parameters:
//   - curves: the authoring tool's curve storage
//   - constraints: the authoring tool's constraint graph
//
// Returns:
//   - Resolver: a fresh resolver with an empty inheritance cache
func NewResolver(curves curve.Provider, constraints curve.ConstraintProvider) Resolver {
	return &resolver{
		curves:      curves,
		constraints: constraints,
		constrained: curve.ConstrainedSet(constraints),
		previous:    make(map[string]resolved),
	}
}

func (r *resolver) Resolve(bone string, frame int) (Style, Direction) {
	// Own key at this exact frame wins.
	if kp := keyAt(r.curves.BoneCurves(bone), frame); kp != nil {
		return mapKey(kp)
	}

	// Constrained bones borrow the constraint target's easing when the target
	// has a key at the same frame.
	if r.constrained[bone] {
		for _, target := range r.constraints.TargetsOf(bone) {
			if kp := keyAt(r.curves.ObjectCurves(target), frame); kp != nil {
				return mapKey(kp)
			}
		}
	}

	if prev, ok := r.previous[bone]; ok {
		return prev.style, prev.dir
	}
	return StyleLinear, DirectionOut
}

func (r *resolver) NoteEmitted(bone string, style Style, dir Direction) {
	r.previous[bone] = resolved{style: style, dir: dir}
}

func (r *resolver) KeyInterpolation(bone string, frame int) (curve.Interpolation, bool) {
	if kp := keyAt(r.curves.BoneCurves(bone), frame); kp != nil {
		return kp.Interpolation, true
	}
	return curve.InterpLinear, false
}

// keyAt scans a curve list for a key whose rounded frame matches.
func keyAt(curves []curve.Curve, frame int) *curve.KeyframePoint {
	for i := range curves {
		if kp := curves[i].KeyAt(frame); kp != nil {
			return kp
		}
	}
	return nil
}

// mapKey applies the style and direction tables to one key. Constant style
// always resolves to the out direction regardless of the authored easing.
func mapKey(kp *curve.KeyframePoint) (Style, Direction) {
	style := MapStyle(kp.Interpolation)
	if style == StyleConstant {
		return style, DirectionOut
	}
	return style, MapDirection(kp.Easing)
}
