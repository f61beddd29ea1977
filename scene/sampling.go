package scene

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-bake/bake/curve"
	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Channel names the document understands, mirroring the authoring tool's
// pose-channel vocabulary.
const (
	// ChannelLocation is the translation channel (indices 0..2 → x, y, z).
	ChannelLocation = "location"

	// ChannelRotationQuaternion is the quaternion rotation channel
	// (indices 0..3 → w, x, y, z).
	ChannelRotationQuaternion = "rotation_quaternion"

	// ChannelRotationEuler is the XYZ euler rotation channel in radians
	// (indices 0..2 → x, y, z).
	ChannelRotationEuler = "rotation_euler"

	// ChannelScale is the scale channel (indices 0..2 → x, y, z).
	ChannelScale = "scale"
)

// samplePoseTransform evaluates a bone's pose transform at a frame from its
// scalar channel curves. Unkeyed channels keep their rest defaults.
func samplePoseTransform(curves []curve.Curve, frame float32) [16]float32 {
	t := [3]float32{0, 0, 0}
	q := [4]float32{0, 0, 0, 1}
	quat := [4]float32{1, 0, 0, 0} // w, x, y, z, authored order
	euler := [3]float32{0, 0, 0}
	s := [3]float32{1, 1, 1}
	hasQuat, hasEuler := false, false

	for i := range curves {
		c := &curves[i]
		if len(c.Keys) == 0 {
			continue
		}
		v := sampleCurve(c, frame)
		switch c.Channel {
		case ChannelLocation:
			if c.Index >= 0 && c.Index < 3 {
				t[c.Index] = v
			}
		case ChannelRotationQuaternion:
			if c.Index >= 0 && c.Index < 4 {
				quat[c.Index] = v
				hasQuat = true
			}
		case ChannelRotationEuler:
			if c.Index >= 0 && c.Index < 3 {
				euler[c.Index] = v
				hasEuler = true
			}
		case ChannelScale:
			if c.Index >= 0 && c.Index < 3 {
				s[c.Index] = v
			}
		}
	}

	switch {
	case hasQuat:
		q = normalizeQuat([4]float32{quat[1], quat[2], quat[3], quat[0]})
	case hasEuler:
		q = eulerToQuat(euler)
	}
	return common.ComposeTRS(t, q, s)
}

// sampleCurve evaluates one scalar curve at a frame. Constant keys hold;
// every other mode interpolates linearly, which is exact for linear segments
// and a dense-sampling approximation for curved ones. Cyclic curves wrap the
// frame into the base cycle window first.
func sampleCurve(c *curve.Curve, frame float32) float32 {
	keys := c.Keys
	first, last, _ := c.Span()

	if c.Cyclic != nil {
		lo, hi := first, last
		if c.Cyclic.HasActionRange {
			lo, hi = c.Cyclic.ActionStart, c.Cyclic.ActionEnd
		}
		if span := hi - lo; span > 0 {
			frame = lo + math32.Mod(math32.Mod(frame-lo, span)+span, span)
		}
	}

	if frame <= first {
		return keys[0].Value
	}
	if frame >= last {
		return keys[len(keys)-1].Value
	}
	for i := 0; i+1 < len(keys); i++ {
		k0, k1 := keys[i], keys[i+1]
		if frame < k0.Frame || frame > k1.Frame {
			continue
		}
		if k0.Interpolation == curve.InterpConstant || k1.Frame == k0.Frame {
			return k0.Value
		}
		u := (frame - k0.Frame) / (k1.Frame - k0.Frame)
		return k0.Value + (k1.Value-k0.Value)*u
	}
	return keys[len(keys)-1].Value
}

// normalizeQuat returns the unit quaternion, defaulting to identity for a
// zero-length input.
func normalizeQuat(q [4]float32) [4]float32 {
	n := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// eulerToQuat converts XYZ euler angles in radians to a quaternion
// (x, y, z, w).
func eulerToQuat(e [3]float32) [4]float32 {
	cx, sx := math32.Cos(e[0]/2), math32.Sin(e[0]/2)
	cy, sy := math32.Cos(e[1]/2), math32.Sin(e[1]/2)
	cz, sz := math32.Cos(e[2]/2), math32.Sin(e[2]/2)

	return normalizeQuat([4]float32{
		sx*cy*cz + cx*sy*sz,
		cx*sy*cz - sx*cy*sz,
		cx*cy*sz + sx*sy*cz,
		cx*cy*cz - sx*sy*sz,
	})
}
