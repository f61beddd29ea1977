package rig

import (
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Classification tags a bone with the encoding family it belongs to. It is
// computed once per export by Classify and carried as data so downstream code
// never re-derives it from field presence.
type Classification int

const (
	// ClassHelper marks a bone that is neither skin-weighted nor motor-driven
	// (attachments, IK controls). Encoded like a deform bone but without scale
	// normalization.
	ClassHelper Classification = iota

	// ClassMotor marks a bone whose animated value is a rest-relative joint
	// offset composed hierarchically with its parent.
	ClassMotor

	// ClassDeform marks a bone that drives mesh-skin deformation.
	ClassDeform
)

// String returns the classification name for logs and debugging.
func (c Classification) String() string {
	switch c {
	case ClassMotor:
		return "motor"
	case ClassDeform:
		return "deform"
	default:
		return "helper"
	}
}

// Bone is a single bone in a rig. Rest-time matrices are captured when the
// rig is built and treated as immutable afterwards.
type Bone struct {
	// Name is the bone's identifier, unique within its rig.
	Name string

	// Parent is a back-reference to the parent bone, nil for roots. The rig
	// owns all bones; this pointer never outlives the rig.
	Parent *Bone

	// Classification is stamped by Classify before sampling begins.
	Classification Classification

	// RestLocal is the bone's parent-relative rest transform, column-major.
	RestLocal [16]float32

	// BindOffset is the motor bind-time offset matrix. Nil for bones that are
	// not motor-driven.
	BindOffset *[16]float32

	// JointOffset is the motor joint offset matrix. Nil for bones that are
	// not motor-driven.
	JointOffset *[16]float32
}

// HasMotorRest reports whether the bone carries the full motor rest-time
// triple (rest local plus both offset matrices).
//
// Returns:
//   - bool: true when BindOffset and JointOffset are both present
func (b *Bone) HasMotorRest() bool {
	return b.BindOffset != nil && b.JointOffset != nil
}

// Rig is an ordered forest of bones. Bones are stored parent-before-child so
// a single forward pass can compose rest-world matrices.
type Rig struct {
	// Name is the rig's identifier.
	Name string

	// Bones holds every bone in topological order (parents precede children).
	Bones []*Bone

	byName map[string]*Bone
}

// New assembles a rig from an ordered bone slice. The slice must list parents
// before children; the rig takes ownership of the bones.
//
// Parameters:
//   - name: the rig identifier
//   - bones: all bones in topological order
//
// Returns:
//   - *Rig: the assembled rig
func New(name string, bones []*Bone) *Rig {
	r := &Rig{
		Name:   name,
		Bones:  bones,
		byName: make(map[string]*Bone, len(bones)),
	}
	for _, b := range bones {
		r.byName[b.Name] = b
	}
	return r
}

// Bone looks up a bone by name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - *Bone: the bone, or nil when no bone has that name
func (r *Rig) Bone(name string) *Bone {
	return r.byName[name]
}

// Has reports whether the rig contains a bone with the given name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - bool: true when the bone exists
func (r *Rig) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Hierarchy returns the bone parenting as a name map, with nil for roots.
// This is the shape the artifact's bone_hierarchy field wants.
//
// Returns:
//   - map[string]*string: bone name to parent name, nil parent for roots
func (r *Rig) Hierarchy() map[string]*string {
	h := make(map[string]*string, len(r.Bones))
	for _, b := range r.Bones {
		if b.Parent != nil {
			parent := b.Parent.Name
			h[b.Name] = &parent
		} else {
			h[b.Name] = nil
		}
	}
	return h
}

// RestWorld composes parent-relative rest matrices into a rest-world matrix
// per bone. The result is independent of any clock value and is memoized by
// the sampler's per-export context rather than here.
//
// Returns:
//   - map[string][16]float32: rest-world matrix per bone name
func (r *Rig) RestWorld() map[string][16]float32 {
	out := make(map[string][16]float32, len(r.Bones))
	for _, b := range r.Bones {
		if b.Parent != nil {
			out[b.Name] = common.MulMat4(out[b.Parent.Name], b.RestLocal)
		} else {
			out[b.Name] = b.RestLocal
		}
	}
	return out
}
