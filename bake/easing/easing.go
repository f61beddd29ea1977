package easing

import (
	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
)

// Style is the runtime's easing style enum. The string forms are part of the
// artifact contract.
type Style int

const (
	// StyleLinear interpolates uniformly between keys.
	StyleLinear Style = iota

	// StyleConstant holds the previous key's value.
	StyleConstant

	// StyleCubicV2 is the runtime's cubic easing curve.
	StyleCubicV2

	// StyleBounce decays like a bouncing body.
	StyleBounce

	// StyleElastic overshoots like a spring.
	StyleElastic
)

// String returns the artifact spelling of the style.
func (s Style) String() string {
	switch s {
	case StyleConstant:
		return "Constant"
	case StyleCubicV2:
		return "CubicV2"
	case StyleBounce:
		return "Bounce"
	case StyleElastic:
		return "Elastic"
	default:
		return "Linear"
	}
}

// ParseStyle converts an artifact spelling back to a Style. Unknown spellings
// fall back to StyleLinear, mirroring MapStyle.
//
// Parameters:
//   - s: the artifact string
//
// Returns:
//   - Style: the parsed style
func ParseStyle(s string) Style {
	switch s {
	case "Constant":
		return StyleConstant
	case "CubicV2":
		return StyleCubicV2
	case "Bounce":
		return StyleBounce
	case "Elastic":
		return StyleElastic
	default:
		return StyleLinear
	}
}

// Direction is the runtime's easing direction enum. The string forms are part
// of the artifact contract.
type Direction int

const (
	// DirectionOut applies the easing toward the end of the segment.
	DirectionOut Direction = iota

	// DirectionIn applies the easing at the start of the segment.
	DirectionIn

	// DirectionInOut applies the easing at both ends.
	DirectionInOut
)

// String returns the artifact spelling of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "In"
	case DirectionInOut:
		return "InOut"
	default:
		return "Out"
	}
}

// ParseDirection converts an artifact spelling back to a Direction. Unknown
// spellings fall back to DirectionOut, mirroring MapDirection.
//
// Parameters:
//   - s: the artifact string
//
// Returns:
//   - Direction: the parsed direction
func ParseDirection(s string) Direction {
	switch s {
	case "In":
		return DirectionIn
	case "InOut":
		return DirectionInOut
	default:
		return DirectionOut
	}
}

// MapStyle maps the authoring tool's interpolation vocabulary onto the
// runtime's easing styles. Unrecognized modes fall back to linear.
//
// Parameters:
//   - i: the authored interpolation mode
//
// Returns:
//   - Style: the runtime easing style
func MapStyle(i curve.Interpolation) Style {
	switch i {
	case curve.InterpConstant:
		return StyleConstant
	case curve.InterpCubic, curve.InterpBezier:
		return StyleCubicV2
	case curve.InterpBounce:
		return StyleBounce
	case curve.InterpElastic:
		return StyleElastic
	default:
		return StyleLinear
	}
}

// MapDirection maps the authoring tool's easing vocabulary onto the runtime's
// directions. Unrecognized values fall back to out.
//
// Parameters:
//   - e: the authored easing direction
//
// Returns:
//   - Direction: the runtime easing direction
func MapDirection(e curve.Easing) Direction {
	switch e {
	case curve.EaseIn:
		return DirectionIn
	case curve.EaseInOut:
		return DirectionInOut
	default:
		return DirectionOut
	}
}
