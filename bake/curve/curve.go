package curve

// Interpolation is the authoring tool's per-keyframe interpolation vocabulary.
// Anything other than InterpConstant and InterpLinear is a curved mode whose
// shape cannot be reproduced by two endpoints alone; the frame-set builder
// densifies those segments frame by frame.
type Interpolation int

const (
	// InterpLinear interpolates in a straight line to the next key.
	InterpLinear Interpolation = iota

	// InterpConstant holds the key's value until the next key.
	InterpConstant

	// InterpBezier follows authored bezier handles.
	InterpBezier

	// InterpSine through InterpElastic are the eased curve families.
	InterpSine
	InterpQuad
	InterpCubic
	InterpQuart
	InterpQuint
	InterpExpo
	InterpCirc
	InterpBack
	InterpBounce
	InterpElastic
)

// Curved reports whether the interpolation mode bends between keys, requiring
// dense interior sampling.
//
// Returns:
//   - bool: true for every mode except linear and constant
func (i Interpolation) Curved() bool {
	return i != InterpLinear && i != InterpConstant
}

// Easing is the authoring tool's easing-direction vocabulary for a keyframe.
type Easing int

const (
	// EaseAuto lets the interpolation mode pick its natural direction.
	EaseAuto Easing = iota

	// EaseIn applies the easing at the start of the segment.
	EaseIn

	// EaseOut applies the easing at the end of the segment.
	EaseOut

	// EaseInOut applies the easing at both ends.
	EaseInOut
)

// KeyframePoint is one authored key on a scalar channel curve.
type KeyframePoint struct {
	// Frame is the key's position on the timeline. Authoring tools allow
	// subframe positions, so this is fractional.
	Frame float32

	// Value is the channel value at the key.
	Value float32

	// Interpolation describes how the curve leaves this key.
	Interpolation Interpolation

	// Easing is the authored easing direction at this key.
	Easing Easing
}

// CycleInfo decorates a curve whose authored span repeats indefinitely before
// and after its own range. When the owning action's authored frame range is
// known it takes precedence over the observed keyframe spread as the base
// cycle window.
type CycleInfo struct {
	// ActionStart and ActionEnd are the owning action's authored frame range.
	// Only meaningful when HasActionRange is true.
	ActionStart, ActionEnd float32

	// HasActionRange is true when the owning action declares its own range.
	HasActionRange bool
}

// Curve is an ordered sequence of keyframes on one scalar transform channel.
type Curve struct {
	// Bone is the owning bone's name, empty for curves authored on external
	// objects (constraint targets).
	Bone string

	// Channel identifies the transform channel, e.g. "location".
	Channel string

	// Index is the channel's component index (0 = x, 1 = y, 2 = z, and the
	// fourth quaternion component for rotation channels).
	Index int

	// Keys holds the curve's keyframes in ascending frame order.
	Keys []KeyframePoint

	// Cyclic is non-nil when a cyclic modifier repeats the curve's span.
	Cyclic *CycleInfo
}

// Span returns the curve's first and last authored key frames.
//
// Returns:
//   - first: the first key's frame
//   - last: the last key's frame
//   - ok: false when the curve has no keys
func (c *Curve) Span() (first, last float32, ok bool) {
	if len(c.Keys) == 0 {
		return 0, 0, false
	}
	return c.Keys[0].Frame, c.Keys[len(c.Keys)-1].Frame, true
}

// KeyAt returns the keyframe whose rounded frame equals the given integer
// frame, if any.
//
// Parameters:
//   - frame: the integer frame to match
//
// Returns:
//   - *KeyframePoint: the matching key, or nil
func (c *Curve) KeyAt(frame int) *KeyframePoint {
	for i := range c.Keys {
		if RoundFrame(c.Keys[i].Frame) == frame {
			return &c.Keys[i]
		}
	}
	return nil
}

// RoundFrame rounds a fractional authored frame to the integer frame grid.
//
// Parameters:
//   - f: the fractional frame
//
// Returns:
//   - int: the nearest integer frame
func RoundFrame(f float32) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}
