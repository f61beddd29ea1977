package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
)

// floatBuffer packs float32 values into a little-endian byte buffer.
func floatBuffer(values ...float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// testDoc assembles a two-node skinned document with one translation channel
// keyed at 0s and 1s.
func testDoc() *gltf.Document {
	times := floatBuffer(0, 1)
	translations := floatBuffer(0, 0, 0, 2, 0, 0)
	ibm := floatBuffer(
		1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, -1, 0, 1,
	)
	data := append(append(append([]byte{}, times...), translations...), ibm...)

	return &gltf.Document{
		Scenes: []*gltf.Scene{{Name: "demo"}},
		Nodes: []*gltf.Node{
			{Name: "root", Children: []uint32{1}, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}},
			{Name: "tip", Translation: [3]float32{0, 1, 0}, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}},
		},
		Skins: []*gltf.Skin{{
			Joints:              []uint32{0, 1},
			InverseBindMatrices: gltf.Index(2),
		}},
		Animations: []*gltf.Animation{{
			Name: "move",
			Channels: []*gltf.Channel{{
				Sampler: gltf.Index(0),
				Target:  gltf.ChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation},
			}},
			Samplers: []*gltf.AnimationSampler{{
				Input:         gltf.Index(0),
				Output:        gltf.Index(1),
				Interpolation: gltf.InterpolationLinear,
			}},
		}},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorScalar, Count: 2},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 2},
			{BufferView: gltf.Index(2), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorMat4, Count: 2},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 8},
			{Buffer: 0, ByteOffset: 8, ByteLength: 24},
			{Buffer: 0, ByteOffset: 32, ByteLength: 128},
		},
		Buffers: []*gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
	}
}

func TestBuildRigFromGLTF(t *testing.T) {
	src := &gltfSource{doc: testDoc()}

	r, skinned, err := src.buildRig()
	require.NoError(t, err)

	assert.Equal(t, "demo", r.Name)
	assert.ElementsMatch(t, []string{"root", "tip"}, skinned)

	tip := r.Bone("tip")
	require.NotNil(t, tip)
	require.NotNil(t, tip.Parent)
	assert.Equal(t, "root", tip.Parent.Name)
	assert.Equal(t, float32(1), tip.RestLocal[13])

	// The second inverse bind matrix carries a -1 Y translation.
	require.NotNil(t, tip.BindOffset)
	assert.Equal(t, float32(-1), tip.BindOffset[13])
}

func TestExtractCurvesFromGLTF(t *testing.T) {
	doc := testDoc()
	src := &gltfSource{doc: doc}

	curves, last, err := src.extractCurves(doc.Animations[0], 24)
	require.NoError(t, err)

	assert.Equal(t, 24, last)
	require.Len(t, curves["root"], 3) // one scalar curve per translation axis

	var x *curve.Curve
	for i := range curves["root"] {
		c := &curves["root"][i]
		assert.Equal(t, ChannelLocation, c.Channel)
		if c.Index == 0 {
			x = c
		}
	}
	require.NotNil(t, x)
	require.Len(t, x.Keys, 2)
	assert.Equal(t, float32(0), x.Keys[0].Frame)
	assert.Equal(t, float32(0), x.Keys[0].Value)
	assert.Equal(t, float32(24), x.Keys[1].Frame)
	assert.Equal(t, float32(2), x.Keys[1].Value)
	assert.Equal(t, curve.InterpLinear, x.Keys[0].Interpolation)
}

func TestReadFloatsRejectsNonFloatAccessor(t *testing.T) {
	doc := testDoc()
	doc.Accessors[0].ComponentType = gltf.ComponentUshort
	src := &gltfSource{doc: doc}

	_, err := src.readFloats(0, 1)
	assert.Error(t, err)
}

func TestReadFloatsBoundsCheck(t *testing.T) {
	doc := testDoc()
	doc.Accessors[1].Count = 100
	src := &gltfSource{doc: doc}

	_, err := src.readFloats(1, 3)
	assert.Error(t, err)
}

func TestSamplerModeMapping(t *testing.T) {
	interp, stride, offset := samplerMode(gltf.InterpolationLinear)
	assert.Equal(t, curve.InterpLinear, interp)
	assert.Equal(t, 1, stride)
	assert.Equal(t, 0, offset)

	interp, stride, offset = samplerMode(gltf.InterpolationStep)
	assert.Equal(t, curve.InterpConstant, interp)

	interp, stride, offset = samplerMode(gltf.InterpolationCubicSpline)
	assert.Equal(t, curve.InterpBezier, interp)
	assert.Equal(t, 3, stride)
	assert.Equal(t, 1, offset)
}

func TestQuatIndexReorder(t *testing.T) {
	// glTF x,y,z,w maps onto the authored w,x,y,z channel order.
	assert.Equal(t, 1, quatIndex(ChannelRotationQuaternion, 0))
	assert.Equal(t, 2, quatIndex(ChannelRotationQuaternion, 1))
	assert.Equal(t, 3, quatIndex(ChannelRotationQuaternion, 2))
	assert.Equal(t, 0, quatIndex(ChannelRotationQuaternion, 3))
	assert.Equal(t, 2, quatIndex(ChannelLocation, 2))
}
