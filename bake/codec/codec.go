package codec

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// MissingRestDataError reports a motor bone that lacks part of its rest-time
// matrix triple. Fatal for that bone's encoding only; the exporter skips the
// bone and continues.
type MissingRestDataError struct {
	// Bone is the affected bone's name.
	Bone string
}

func (e *MissingRestDataError) Error() string {
	return fmt.Sprintf("codec: motor bone %q is missing rest data", e.Bone)
}

// MatrixFn yields a 4x4 matrix for a bone, typically a closure over the pose
// evaluator's state at the current clock value.
type MatrixFn func(b *rig.Bone) [16]float32

// codec is the implementation of the Codec interface.
type codec struct {
	deformScale float32
}

// Codec converts external pose matrices into the runtime's 12-component
// affine records. Motor bones are encoded as rest-relative joint offsets
// composed hierarchically with their parent; deform and helper bones are
// encoded as rest-relative deltas with the target convention's axis swizzle
// applied.
//
// The swizzle's scale-axis swap for deform bones is deliberately one-way:
// Decode reverses the sign flips and the scale factor but not the swap.
type Codec interface {
	// EncodeMotor computes the motor joint value for a bone from the current
	// world pose. When the parent is also motor, the value is made relative
	// to the parent's equivalent quantities so stored values compose
	// hierarchically like a chain of relative joints.
	//
	// Parameters:
	//   - b: the motor bone to encode
	//   - world: the current world matrix per bone at the active clock value
	//
	// Returns:
	//   - Record: the encoded joint value
	//   - error: *MissingRestDataError when the rest triple is incomplete
	EncodeMotor(b *rig.Bone, world MatrixFn) (Record, error)

	// EncodeDeform computes the rest-relative delta for a deform or helper
	// bone, relative to its nearest deform-or-motor ancestor, and applies the
	// target convention's swizzle. Helper bones take scale factor 1 and no
	// scale-axis swap.
	//
	// Parameters:
	//   - b: the deform or helper bone to encode
	//   - world: the current world matrix per bone at the active clock value
	//   - restWorld: the rest-world matrix per bone
	//
	// Returns:
	//   - Record: the encoded delta
	//   - error: encoding failure (currently none beyond degradation)
	EncodeDeform(b *rig.Bone, world, restWorld MatrixFn) (Record, error)

	// Encode dispatches on the bone's classification.
	//
	// Parameters:
	//   - b: the bone to encode
	//   - world: the current world matrix per bone at the active clock value
	//   - restWorld: the rest-world matrix per bone
	//
	// Returns:
	//   - Record: the encoded value
	//   - error: *MissingRestDataError for incomplete motor bones
	Encode(b *rig.Bone, world, restWorld MatrixFn) (Record, error)

	// Decode recovers translation, rotation, and scale from a record,
	// reversing the axis sign flips and the deform scale factor. The deform
	// scale-axis swap is not reversed.
	//
	// Parameters:
	//   - r: the record to decode
	//   - deform: true when the record was encoded as a deform bone
	//
	// Returns:
	//   - t: translation as [3]float32
	//   - q: rotation quaternion as [4]float32 (x, y, z, w)
	//   - s: scale as [3]float32
	Decode(r Record, deform bool) (t [3]float32, q [4]float32, s [3]float32)
}

var _ Codec = &codec{}

// NewCodec creates a Codec with the specified options applied.
//
// Parameters:
//   - options: variadic list of CodecBuilderOption functions
//
// Returns:
//   - Codec: the configured codec
func NewCodec(options ...CodecBuilderOption) Codec {
	c := &codec{
		deformScale: 1,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.deformScale == 0 {
		c.deformScale = 1
	}
	return c
}

func (c *codec) Encode(b *rig.Bone, world, restWorld MatrixFn) (Record, error) {
	if b.Classification == rig.ClassMotor {
		return c.EncodeMotor(b, world)
	}
	return c.EncodeDeform(b, world, restWorld)
}

func (c *codec) EncodeMotor(b *rig.Bone, world MatrixFn) (Record, error) {
	cur, orig, err := c.motorPair(b, world)
	if err != nil {
		return IdentityRecord, err
	}

	if b.Parent != nil && b.Parent.Classification == rig.ClassMotor {
		pCur, pOrig, perr := c.motorPair(b.Parent, world)
		if perr != nil {
			return IdentityRecord, perr
		}
		// Relativize against the parent's equivalent quantities so the chain
		// composes hierarchically. A singular parent matrix degrades to the
		// un-relativized value.
		if inv, ok := common.InvertMat4(pCur); ok {
			cur = common.MulMat4(inv, cur)
		}
		if inv, ok := common.InvertMat4(pOrig); ok {
			orig = common.MulMat4(inv, orig)
		}
	}

	origInv, ok := common.InvertMat4(orig)
	if !ok {
		// Non-invertible rest composition degrades to identity for this bone
		// rather than aborting the export.
		return IdentityRecord, nil
	}
	value := common.MulMat4(origInv, cur)
	return c.swizzle(value, false), nil
}

// motorPair computes the bone's current and rest-time motor quantities:
// cur = world ∘ bindOffset⁻¹ and orig = restLocal ∘ jointOffset.
func (c *codec) motorPair(b *rig.Bone, world MatrixFn) (cur, orig [16]float32, err error) {
	if !b.HasMotorRest() {
		return cur, orig, &MissingRestDataError{Bone: b.Name}
	}

	bindInv, ok := common.InvertMat4(*b.BindOffset)
	if !ok {
		// Degraded branch: treat the bind offset as identity.
		bindInv = common.IdentityMat4()
	}
	cur = common.MulMat4(world(b), bindInv)
	orig = common.MulMat4(b.RestLocal, *b.JointOffset)
	return cur, orig, nil
}

func (c *codec) EncodeDeform(b *rig.Bone, world, restWorld MatrixFn) (Record, error) {
	anchor := nearestAnchor(b)

	curRel := world(b)
	restRel := restWorld(b)
	if anchor != nil {
		if inv, ok := common.InvertMat4(world(anchor)); ok {
			curRel = common.MulMat4(inv, curRel)
		}
		if inv, ok := common.InvertMat4(restWorld(anchor)); ok {
			restRel = common.MulMat4(inv, restRel)
		}
	}

	restInv, ok := common.InvertMat4(restRel)
	if !ok {
		return IdentityRecord, nil
	}
	delta := common.MulMat4(restInv, curRel)
	return c.swizzle(delta, b.Classification == rig.ClassDeform), nil
}

// nearestAnchor walks up the parent chain to the closest deform or motor
// ancestor. Helper ancestors are skipped; nil means the bone anchors to the
// rig root and the declared uniform scale applies directly.
func nearestAnchor(b *rig.Bone) *rig.Bone {
	for p := b.Parent; p != nil; p = p.Parent {
		if p.Classification == rig.ClassDeform || p.Classification == rig.ClassMotor {
			return p
		}
	}
	return nil
}

// swizzle converts a delta matrix into the target convention: translation X
// and Z are negated, the rotation quaternion's X and Z components are
// negated, and for deform bones the Y/Z scale components are swapped and the
// translation divided by the rig's uniform scale factor.
func (c *codec) swizzle(m [16]float32, deform bool) Record {
	t, q, s := common.DecomposeTRS(m)

	t[0], t[2] = -t[0], -t[2]
	q[0], q[2] = -q[0], -q[2]

	if deform {
		s[1], s[2] = s[2], s[1]
		t[0] /= c.deformScale
		t[1] /= c.deformScale
		t[2] /= c.deformScale
	}

	return recordOf(common.ComposeTRS(t, q, s))
}

func (c *codec) Decode(r Record, deform bool) (t [3]float32, q [4]float32, s [3]float32) {
	t, q, s = common.DecomposeTRS(r.Mat4())
	if deform {
		t[0] *= c.deformScale
		t[1] *= c.deformScale
		t[2] *= c.deformScale
	}
	t[0], t[2] = -t[0], -t[2]
	q[0], q[2] = -q[0], -q[2]
	return t, q, s
}
