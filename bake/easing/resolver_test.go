package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
)

type stubProvider struct {
	bone        map[string][]curve.Curve
	object      map[string][]curve.Curve
	constrained map[string]bool
	ik          map[string]bool
	targets     map[string][]string
}

func (p *stubProvider) BoneCurves(bone string) []curve.Curve     { return p.bone[bone] }
func (p *stubProvider) ObjectCurves(object string) []curve.Curve { return p.object[object] }
func (p *stubProvider) MixingTracks() bool                       { return false }
func (p *stubProvider) ConstrainedBones() map[string]bool        { return p.constrained }
func (p *stubProvider) IKChainBones() map[string]bool            { return p.ik }
func (p *stubProvider) TargetsOf(bone string) []string           { return p.targets[bone] }

func TestMapStyleTable(t *testing.T) {
	cases := map[curve.Interpolation]Style{
		curve.InterpLinear:   StyleLinear,
		curve.InterpConstant: StyleConstant,
		curve.InterpBezier:   StyleCubicV2,
		curve.InterpCubic:    StyleCubicV2,
		curve.InterpBounce:   StyleBounce,
		curve.InterpElastic:  StyleElastic,
		curve.InterpSine:     StyleLinear,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapStyle(in))
	}
}

func TestMapDirectionTable(t *testing.T) {
	assert.Equal(t, DirectionIn, MapDirection(curve.EaseIn))
	assert.Equal(t, DirectionInOut, MapDirection(curve.EaseInOut))
	assert.Equal(t, DirectionOut, MapDirection(curve.EaseOut))
	assert.Equal(t, DirectionOut, MapDirection(curve.EaseAuto))
}

func TestStyleStringRoundTrip(t *testing.T) {
	for _, s := range []Style{StyleLinear, StyleConstant, StyleCubicV2, StyleBounce, StyleElastic} {
		assert.Equal(t, s, ParseStyle(s.String()))
	}
	for _, d := range []Direction{DirectionOut, DirectionIn, DirectionInOut} {
		assert.Equal(t, d, ParseDirection(d.String()))
	}
	assert.Equal(t, StyleLinear, ParseStyle("garbage"))
	assert.Equal(t, DirectionOut, ParseDirection("garbage"))
}

func TestResolveOwnKeyWins(t *testing.T) {
	p := &stubProvider{bone: map[string][]curve.Curve{
		"arm": {{Bone: "arm", Channel: "location", Keys: []curve.KeyframePoint{
			{Frame: 5, Interpolation: curve.InterpBounce, Easing: curve.EaseInOut},
		}}},
	}}
	r := NewResolver(p, p)

	style, dir := r.Resolve("arm", 5)
	assert.Equal(t, StyleBounce, style)
	assert.Equal(t, DirectionInOut, dir)
}

func TestResolveConstantForcesOut(t *testing.T) {
	p := &stubProvider{bone: map[string][]curve.Curve{
		"arm": {{Bone: "arm", Channel: "location", Keys: []curve.KeyframePoint{
			{Frame: 5, Interpolation: curve.InterpConstant, Easing: curve.EaseInOut},
		}}},
	}}
	r := NewResolver(p, p)

	style, dir := r.Resolve("arm", 5)
	assert.Equal(t, StyleConstant, style)
	assert.Equal(t, DirectionOut, dir)
}

func TestResolveConstrainedBorrowsTargetKey(t *testing.T) {
	p := &stubProvider{
		object: map[string][]curve.Curve{
			"ctrl": {{Channel: "location", Keys: []curve.KeyframePoint{
				{Frame: 7, Interpolation: curve.InterpElastic, Easing: curve.EaseIn},
			}}},
		},
		constrained: map[string]bool{"hand": true},
		targets:     map[string][]string{"hand": {"ctrl"}},
	}
	r := NewResolver(p, p)

	style, dir := r.Resolve("hand", 7)
	assert.Equal(t, StyleElastic, style)
	assert.Equal(t, DirectionIn, dir)
}

func TestResolveUnconstrainedNeverBorrows(t *testing.T) {
	p := &stubProvider{
		object: map[string][]curve.Curve{
			"ctrl": {{Channel: "location", Keys: []curve.KeyframePoint{
				{Frame: 7, Interpolation: curve.InterpElastic},
			}}},
		},
		targets: map[string][]string{"hand": {"ctrl"}},
	}
	r := NewResolver(p, p)

	style, dir := r.Resolve("hand", 7)
	assert.Equal(t, StyleLinear, style)
	assert.Equal(t, DirectionOut, dir)
}

func TestResolveInheritsPreviousEmission(t *testing.T) {
	p := &stubProvider{}
	r := NewResolver(p, p)

	r.NoteEmitted("arm", StyleCubicV2, DirectionIn)
	style, dir := r.Resolve("arm", 9)
	assert.Equal(t, StyleCubicV2, style)
	assert.Equal(t, DirectionIn, dir)

	// Other bones do not inherit.
	style, dir = r.Resolve("leg", 9)
	assert.Equal(t, StyleLinear, style)
	assert.Equal(t, DirectionOut, dir)
}

func TestKeyInterpolation(t *testing.T) {
	p := &stubProvider{bone: map[string][]curve.Curve{
		"arm": {{Bone: "arm", Channel: "location", Keys: []curve.KeyframePoint{
			{Frame: 3, Interpolation: curve.InterpConstant},
		}}},
	}}
	r := NewResolver(p, p)

	interp, ok := r.KeyInterpolation("arm", 3)
	assert.True(t, ok)
	assert.Equal(t, curve.InterpConstant, interp)

	_, ok = r.KeyInterpolation("arm", 4)
	assert.False(t, ok)
}
