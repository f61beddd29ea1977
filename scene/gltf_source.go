package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/bake/rig"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// FromGLTF loads a glTF or GLB asset and builds a scene document around its
// first skin and first animation. Node transforms become the rig's rest pose,
// the skin's inverse bind matrices become bind offsets, and animation channels
// become per-bone pose curves on the document's frame grid.
//
// Parameters:
//   - path: filesystem path of the .gltf or .glb asset
//   - fps: playback rate used to map animation timestamps onto frames
//
// Returns:
//   - *Document: the scene document
//   - common.BakeRange: the frame window covering the first animation
//   - error: error if the asset cannot be read or is missing rig data
func FromGLTF(path string, fps float32) (*Document, common.BakeRange, error) {
	if fps <= 0 {
		return nil, common.BakeRange{}, fmt.Errorf("invalid fps %v", fps)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, common.BakeRange{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	src := &gltfSource{doc: doc}
	r, skinned, err := src.buildRig()
	if err != nil {
		return nil, common.BakeRange{}, fmt.Errorf("failed to build rig from %s: %w", path, err)
	}

	options := []DocumentOption{WithSkinWeights(skinned...)}
	maxFrame := 0
	if len(doc.Animations) > 0 {
		curvesByBone, last, err := src.extractCurves(doc.Animations[0], fps)
		if err != nil {
			return nil, common.BakeRange{}, fmt.Errorf("failed to extract animation from %s: %w", path, err)
		}
		maxFrame = last
		for bone, curves := range curvesByBone {
			options = append(options, WithBoneCurves(bone, curves...))
		}
	}

	rng := common.BakeRange{Start: 0, End: maxFrame, Step: 1, FPS: fps}
	return NewDocument(r, options...), rng, nil
}

// gltfSource wraps a parsed document with the accessor plumbing the rig and
// curve builders share.
type gltfSource struct {
	doc *gltf.Document
}

// buildRig converts the document's node tree into a rig. When a skin is
// present its joints carry inverse bind matrices and are reported as
// skin-weighted.
func (s *gltfSource) buildRig() (*rig.Rig, []string, error) {
	doc := s.doc
	if len(doc.Nodes) == 0 {
		return nil, nil, fmt.Errorf("document has no nodes")
	}

	hasParent := make(map[uint32]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			hasParent[child] = true
		}
	}

	bones := make([]*rig.Bone, len(doc.Nodes))
	names := make([]string, len(doc.Nodes))
	for i, node := range doc.Nodes {
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		names[i] = name
		bones[i] = &rig.Bone{
			Name:      name,
			RestLocal: nodeLocal(node),
		}
	}

	// Rig construction wants parents before children; glTF does not promise
	// that, so the node forest is walked root-down.
	ordered := make([]*rig.Bone, 0, len(bones))
	var walk func(idx uint32)
	walk = func(idx uint32) {
		ordered = append(ordered, bones[idx])
		for _, child := range doc.Nodes[idx].Children {
			if int(child) >= len(bones) {
				continue
			}
			bones[child].Parent = bones[idx]
			walk(child)
		}
	}
	for i := range doc.Nodes {
		if !hasParent[uint32(i)] {
			walk(uint32(i))
		}
	}

	var skinned []string
	if len(doc.Skins) > 0 {
		skin := doc.Skins[0]
		var binds [][16]float32
		if skin.InverseBindMatrices != nil {
			values, err := s.readFloats(*skin.InverseBindMatrices, 16)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read inverse bind matrices: %w", err)
			}
			binds = make([][16]float32, len(values)/16)
			for j := range binds {
				copy(binds[j][:], values[j*16:(j+1)*16])
			}
		}
		for j, joint := range skin.Joints {
			if int(joint) >= len(bones) {
				return nil, nil, fmt.Errorf("skin joint %d out of range", joint)
			}
			if j < len(binds) {
				m := binds[j]
				bones[joint].BindOffset = &m
			}
			skinned = append(skinned, names[joint])
		}
	}

	name := "scene"
	if len(doc.Scenes) > 0 && doc.Scenes[0].Name != "" {
		name = doc.Scenes[0].Name
	}
	return rig.New(name, ordered), skinned, nil
}

// extractCurves converts one animation's channels into per-bone scalar curves
// on the frame grid and returns the last covered frame.
func (s *gltfSource) extractCurves(anim *gltf.Animation, fps float32) (map[string][]curve.Curve, int, error) {
	curves := make(map[string][]curve.Curve)
	last := 0

	for i, ch := range anim.Channels {
		if ch.Target.Node == nil || ch.Sampler == nil {
			continue
		}
		node := int(*ch.Target.Node)
		if node >= len(s.doc.Nodes) {
			return nil, 0, fmt.Errorf("channel %d targets node %d out of range", i, node)
		}
		name := s.doc.Nodes[node].Name
		if name == "" {
			name = fmt.Sprintf("node_%d", node)
		}

		if int(*ch.Sampler) >= len(anim.Samplers) {
			return nil, 0, fmt.Errorf("channel %d: sampler %d out of range", i, *ch.Sampler)
		}
		sampler := anim.Samplers[*ch.Sampler]
		if sampler.Input == nil || sampler.Output == nil {
			continue
		}
		times, err := s.readFloats(*sampler.Input, 1)
		if err != nil {
			return nil, 0, fmt.Errorf("channel %d: failed to read timestamps: %w", i, err)
		}

		var channel string
		var components int
		switch ch.Target.Path {
		case gltf.TRSTranslation:
			channel, components = ChannelLocation, 3
		case gltf.TRSRotation:
			channel, components = ChannelRotationQuaternion, 4
		case gltf.TRSScale:
			channel, components = ChannelScale, 3
		default:
			// Morph weights have no bone equivalent.
			continue
		}

		values, err := s.readFloats(*sampler.Output, components)
		if err != nil {
			return nil, 0, fmt.Errorf("channel %d: failed to read values: %w", i, err)
		}
		interp, stride, offset := samplerMode(sampler.Interpolation)

		keyCount := min(len(times), len(values)/(components*stride))
		for c := 0; c < components; c++ {
			keys := make([]curve.KeyframePoint, keyCount)
			for k := 0; k < keyCount; k++ {
				frame := times[k] * fps
				keys[k] = curve.KeyframePoint{
					Frame:         frame,
					Value:         values[(k*stride+offset)*components+c],
					Interpolation: interp,
					Easing:        curve.EaseAuto,
				}
				if f := curve.RoundFrame(frame); f > last {
					last = f
				}
			}
			curves[name] = append(curves[name], curve.Curve{
				Bone:    name,
				Channel: channel,
				Index:   quatIndex(channel, c),
				Keys:    keys,
			})
		}
	}

	return curves, last, nil
}

// samplerMode maps a glTF interpolation mode onto curve interpolation plus
// the per-key value stride and value offset within that stride. Cubic-spline
// samplers store in-tangent, value, out-tangent triples per key.
func samplerMode(mode gltf.Interpolation) (curve.Interpolation, int, int) {
	switch mode {
	case gltf.InterpolationStep:
		return curve.InterpConstant, 1, 0
	case gltf.InterpolationCubicSpline:
		return curve.InterpBezier, 3, 1
	default:
		return curve.InterpLinear, 1, 0
	}
}

// quatIndex maps a glTF value component onto the curve's channel index. glTF
// quaternions are stored x, y, z, w while the rotation channel is authored
// w-first.
func quatIndex(channel string, component int) int {
	if channel == ChannelRotationQuaternion {
		return (component + 1) % 4
	}
	return component
}

// nodeLocal returns a node's local rest transform, preferring the explicit
// matrix over decomposed TRS when one is authored.
func nodeLocal(node *gltf.Node) [16]float32 {
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	var m [16]float32
	for i, v := range node.Matrix {
		m[i] = float32(v)
	}
	if m != identity && m != ([16]float32{}) {
		return m
	}
	t := [3]float32{float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])}
	q := [4]float32{float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2]), float32(node.Rotation[3])}
	s := [3]float32{float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2])}
	if s == ([3]float32{0, 0, 0}) {
		s = [3]float32{1, 1, 1}
	}
	return common.ComposeTRS(t, q, s)
}

// readFloats reads a float accessor as a flat slice of float32, components
// values per element.
func (s *gltfSource) readFloats(accessorIndex uint32, components int) ([]float32, error) {
	doc := s.doc
	if int(accessorIndex) >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIndex)
	}
	acc := doc.Accessors[accessorIndex]
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: component type %v is not float", accessorIndex, acc.ComponentType)
	}
	if acc.BufferView == nil {
		return make([]float32, int(acc.Count)*components), nil
	}
	if int(*acc.BufferView) >= len(doc.BufferViews) {
		return nil, fmt.Errorf("accessor %d: buffer view %d out of range", accessorIndex, *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if int(view.Buffer) >= len(doc.Buffers) {
		return nil, fmt.Errorf("accessor %d: buffer %d out of range", accessorIndex, view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data

	elementSize := components * 4
	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elementSize
	}
	base := int(view.ByteOffset) + int(acc.ByteOffset)
	count := int(acc.Count)
	if need := base + (count-1)*stride + elementSize; count > 0 && need > len(data) {
		return nil, fmt.Errorf("accessor %d: needs %d bytes, buffer has %d", accessorIndex, need, len(data))
	}

	out := make([]float32, count*components)
	for e := 0; e < count; e++ {
		off := base + e*stride
		for c := 0; c < components; c++ {
			bits := binary.LittleEndian.Uint32(data[off+c*4:])
			out[e*components+c] = math.Float32frombits(bits)
		}
	}
	return out, nil
}
