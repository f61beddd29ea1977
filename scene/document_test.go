package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

const testTol = float32(1e-5)

func locationXCurve(keys ...curve.KeyframePoint) curve.Curve {
	return curve.Curve{Channel: ChannelLocation, Index: 0, Keys: keys}
}

func twoBoneRig() *rig.Rig {
	root := &rig.Bone{Name: "root", RestLocal: common.IdentityMat4()}
	tip := &rig.Bone{Name: "tip", Parent: root, RestLocal: common.TranslationMat4(0, 1, 0)}
	return rig.New("rig", []*rig.Bone{root, tip})
}

func TestDocumentRestPoseWithoutCurves(t *testing.T) {
	d := NewDocument(twoBoneRig())

	w, err := d.WorldMatrix("tip")
	require.NoError(t, err)
	assert.Equal(t, float32(1), w[13])

	l, err := d.LocalMatrix("root")
	require.NoError(t, err)
	assert.Equal(t, common.IdentityMat4(), l)
}

func TestDocumentUnknownBone(t *testing.T) {
	d := NewDocument(twoBoneRig())
	_, err := d.WorldMatrix("ghost")
	assert.Error(t, err)
	_, err = d.LocalMatrix("ghost")
	assert.Error(t, err)
}

func TestDocumentClockDrivesCurveSampling(t *testing.T) {
	d := NewDocument(twoBoneRig(), WithBoneCurves("root", locationXCurve(
		curve.KeyframePoint{Frame: 0, Value: 0, Interpolation: curve.InterpLinear},
		curve.KeyframePoint{Frame: 10, Value: 5, Interpolation: curve.InterpLinear},
	)))

	assert.Equal(t, 0, d.Clock())

	require.NoError(t, d.SetClock(10))
	assert.Equal(t, 10, d.Clock())
	w, err := d.WorldMatrix("root")
	require.NoError(t, err)
	assert.InDelta(t, 5, w[12], float64(testTol))

	// Midpoint interpolates linearly.
	require.NoError(t, d.SetClock(5))
	w, _ = d.WorldMatrix("root")
	assert.InDelta(t, 2.5, w[12], float64(testTol))

	// Child inherits the parent's motion.
	tip, _ := d.WorldMatrix("tip")
	assert.InDelta(t, 2.5, tip[12], float64(testTol))
	assert.InDelta(t, 1, tip[13], float64(testTol))
}

func TestDocumentConstantKeyHolds(t *testing.T) {
	d := NewDocument(twoBoneRig(), WithBoneCurves("root", locationXCurve(
		curve.KeyframePoint{Frame: 0, Value: 1, Interpolation: curve.InterpConstant},
		curve.KeyframePoint{Frame: 10, Value: 9, Interpolation: curve.InterpLinear},
	)))

	require.NoError(t, d.SetClock(7))
	w, _ := d.WorldMatrix("root")
	assert.InDelta(t, 1, w[12], float64(testTol))

	require.NoError(t, d.SetClock(10))
	w, _ = d.WorldMatrix("root")
	assert.InDelta(t, 9, w[12], float64(testTol))
}

func TestDocumentSamplingClampsOutsideKeys(t *testing.T) {
	d := NewDocument(twoBoneRig(), WithBoneCurves("root", locationXCurve(
		curve.KeyframePoint{Frame: 5, Value: 3, Interpolation: curve.InterpLinear},
		curve.KeyframePoint{Frame: 10, Value: 7, Interpolation: curve.InterpLinear},
	)))

	require.NoError(t, d.SetClock(0))
	w, _ := d.WorldMatrix("root")
	assert.InDelta(t, 3, w[12], float64(testTol))

	require.NoError(t, d.SetClock(20))
	w, _ = d.WorldMatrix("root")
	assert.InDelta(t, 7, w[12], float64(testTol))
}

func TestDocumentCyclicCurveWraps(t *testing.T) {
	c := locationXCurve(
		curve.KeyframePoint{Frame: 0, Value: 0, Interpolation: curve.InterpLinear},
		curve.KeyframePoint{Frame: 10, Value: 10, Interpolation: curve.InterpLinear},
	)
	c.Cyclic = &curve.CycleInfo{}
	d := NewDocument(twoBoneRig(), WithBoneCurves("root", c))

	// Frame 13 wraps into the 0..10 window at 3.
	require.NoError(t, d.SetClock(13))
	w, _ := d.WorldMatrix("root")
	assert.InDelta(t, 3, w[12], float64(testTol))
}

func TestDocumentQuaternionChannel(t *testing.T) {
	// A 90 degree Y rotation authored w-first across four scalar curves.
	half := math32.Pi / 4
	w, y := math32.Cos(half), math32.Sin(half)
	mk := func(index int, value float32) curve.Curve {
		return curve.Curve{Channel: ChannelRotationQuaternion, Index: index, Keys: []curve.KeyframePoint{
			{Frame: 0, Value: value, Interpolation: curve.InterpLinear},
		}}
	}
	d := NewDocument(twoBoneRig(), WithBoneCurves("root",
		mk(0, w), mk(1, 0), mk(2, y), mk(3, 0),
	))

	m, err := d.WorldMatrix("root")
	require.NoError(t, err)
	want := common.ComposeTRS([3]float32{}, [4]float32{0, y, 0, w}, [3]float32{1, 1, 1})
	assert.True(t, common.Mat4NearEqual(want, m, testTol))
}

func TestDocumentEulerChannel(t *testing.T) {
	// A 90 degree Z euler rotation on a single scalar curve.
	c := curve.Curve{Channel: ChannelRotationEuler, Index: 2, Keys: []curve.KeyframePoint{
		{Frame: 0, Value: math32.Pi / 2, Interpolation: curve.InterpLinear},
	}}
	d := NewDocument(twoBoneRig(), WithBoneCurves("root", c))

	m, err := d.WorldMatrix("root")
	require.NoError(t, err)
	half := math32.Pi / 4
	want := common.ComposeTRS([3]float32{}, [4]float32{0, 0, math32.Sin(half), math32.Cos(half)}, [3]float32{1, 1, 1})
	assert.True(t, common.Mat4NearEqual(want, m, testTol))
}

func TestDocumentPoseOverride(t *testing.T) {
	d := NewDocument(twoBoneRig(), WithPoseOverride(func(bone string, frame int) ([16]float32, bool) {
		if bone == "root" {
			return common.TranslationMat4(float32(frame), 0, 0), true
		}
		return [16]float32{}, false
	}))

	require.NoError(t, d.SetClock(4))
	w, _ := d.WorldMatrix("root")
	assert.Equal(t, float32(4), w[12])

	// Bones the override declines fall back to rest.
	tip, _ := d.WorldMatrix("tip")
	assert.Equal(t, float32(4), tip[12])
	assert.Equal(t, float32(1), tip[13])
}

func TestDocumentProviderSurfaces(t *testing.T) {
	d := NewDocument(twoBoneRig(),
		WithBoneCurves("root", locationXCurve(curve.KeyframePoint{Frame: 1})),
		WithObjectCurves("ctrl", locationXCurve(curve.KeyframePoint{Frame: 2})),
		WithConstraint("tip", "ctrl"),
		WithIKChain("root", "tip"),
		WithSkinWeights("tip"),
		WithDeformScale(0.1),
		WithForceDeform(true),
		WithMixingTracks(true),
	)

	assert.Len(t, d.BoneCurves("root"), 1)
	assert.Equal(t, "root", d.BoneCurves("root")[0].Bone)
	assert.Len(t, d.ObjectCurves("ctrl"), 1)
	assert.True(t, d.ConstrainedBones()["tip"])
	assert.True(t, d.IKChainBones()["root"])
	assert.Equal(t, []string{"ctrl"}, d.TargetsOf("tip"))
	assert.True(t, d.SkinWeighted("tip"))
	assert.False(t, d.SkinWeighted("root"))
	assert.Equal(t, float32(0.1), d.DeformScaleFactor())
	assert.True(t, d.ForceDeform())
	assert.True(t, d.MixingTracks())
}
