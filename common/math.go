package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMat4 returns a fresh 4x4 identity matrix in column-major order.
//
// Returns:
//   - [16]float32: the identity matrix
func IdentityMat4() [16]float32 {
	var m [16]float32
	Identity(m[:])
	return m
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order. Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// MulMat4 multiplies two 4x4 column-major matrices and returns the product a * b.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - [16]float32: the matrix product
func MulMat4(a, b [16]float32) [16]float32 {
	var out [16]float32
	Mul4(out[:], a[:], b[:])
	return out
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant ≈ 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// InvertMat4 inverts a 4x4 column-major matrix.
//
// Parameters:
//   - m: source matrix
//
// Returns:
//   - [16]float32: the inverse, or the identity matrix when m is singular
//   - bool: true if the matrix was successfully inverted, false if singular
func InvertMat4(m [16]float32) ([16]float32, bool) {
	out := IdentityMat4()
	ok := Invert4(out[:], m[:])
	return out, ok
}

// TranslationMat4 builds a 4x4 column-major translation matrix.
//
// Parameters:
//   - x, y, z: translation along each axis
//
// Returns:
//   - [16]float32: the translation matrix
func TranslationMat4(x, y, z float32) [16]float32 {
	m := IdentityMat4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// ComposeTRS builds a 4x4 column-major affine matrix from a translation,
// a rotation quaternion, and a per-axis scale. The rotation quaternion is
// (x, y, z, w) and is assumed to be normalized.
//
// Parameters:
//   - t: translation as [3]float32
//   - q: rotation quaternion as [4]float32 (x, y, z, w)
//   - s: scale as [3]float32
//
// Returns:
//   - [16]float32: the composed affine matrix
func ComposeTRS(t [3]float32, q [4]float32, s [3]float32) [16]float32 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	var m [16]float32
	m[0] = (1 - 2*(yy+zz)) * s[0]
	m[1] = (2 * (xy + wz)) * s[0]
	m[2] = (2 * (xz - wy)) * s[0]

	m[4] = (2 * (xy - wz)) * s[1]
	m[5] = (1 - 2*(xx+zz)) * s[1]
	m[6] = (2 * (yz + wx)) * s[1]

	m[8] = (2 * (xz + wy)) * s[2]
	m[9] = (2 * (yz - wx)) * s[2]
	m[10] = (1 - 2*(xx+yy)) * s[2]

	m[12], m[13], m[14] = t[0], t[1], t[2]
	m[15] = 1
	return m
}

// DecomposeTRS splits a 4x4 column-major affine matrix into translation,
// rotation quaternion (x, y, z, w), and per-axis scale. Mirrored bases
// (negative determinant) fold the sign into the X scale component so the
// rotation stays proper.
//
// Parameters:
//   - m: the affine matrix to decompose
//
// Returns:
//   - t: translation as [3]float32
//   - q: normalized rotation quaternion as [4]float32 (x, y, z, w)
//   - s: scale as [3]float32
func DecomposeTRS(m [16]float32) (t [3]float32, q [4]float32, s [3]float32) {
	t = [3]float32{m[12], m[13], m[14]}

	s[0] = math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	s[1] = math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	s[2] = math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	det := m[0]*(m[5]*m[10]-m[6]*m[9]) -
		m[4]*(m[1]*m[10]-m[2]*m[9]) +
		m[8]*(m[1]*m[6]-m[2]*m[5])
	if det < 0 {
		s[0] = -s[0]
	}

	// Normalized rotation columns. Degenerate (zero-scale) axes fall back to
	// the identity basis so the quaternion stays finite.
	var r [9]float32
	for c := 0; c < 3; c++ {
		sc := s[c]
		if sc == 0 {
			r[c*3+c] = 1
			continue
		}
		r[c*3+0] = m[c*4+0] / sc
		r[c*3+1] = m[c*4+1] / sc
		r[c*3+2] = m[c*4+2] / sc
	}

	q = rotationToQuat(r)
	return t, q, s
}

// rotationToQuat converts a normalized 3x3 rotation (column-major, flat) into
// a quaternion (x, y, z, w) using Shepperd's method for numerical stability.
func rotationToQuat(r [9]float32) [4]float32 {
	// r indices: column c, row w → r[c*3+w]
	m00, m10, m20 := r[0], r[1], r[2]
	m01, m11, m21 := r[3], r[4], r[5]
	m02, m12, m22 := r[6], r[7], r[8]

	trace := m00 + m11 + m22
	var q [4]float32
	switch {
	case trace > 0:
		sq := math32.Sqrt(trace+1) * 2 // 4w
		q[3] = 0.25 * sq
		q[0] = (m21 - m12) / sq
		q[1] = (m02 - m20) / sq
		q[2] = (m10 - m01) / sq
	case m00 > m11 && m00 > m22:
		sq := math32.Sqrt(1+m00-m11-m22) * 2 // 4x
		q[3] = (m21 - m12) / sq
		q[0] = 0.25 * sq
		q[1] = (m01 + m10) / sq
		q[2] = (m02 + m20) / sq
	case m11 > m22:
		sq := math32.Sqrt(1+m11-m00-m22) * 2 // 4y
		q[3] = (m02 - m20) / sq
		q[0] = (m01 + m10) / sq
		q[1] = 0.25 * sq
		q[2] = (m12 + m21) / sq
	default:
		sq := math32.Sqrt(1+m22-m00-m11) * 2 // 4z
		q[3] = (m10 - m01) / sq
		q[0] = (m02 + m20) / sq
		q[1] = (m12 + m21) / sq
		q[2] = 0.25 * sq
	}

	// Normalize; accumulated float32 error otherwise drifts across repeated
	// compose/decompose round trips.
	n := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n > 0 {
		q[0] /= n
		q[1] /= n
		q[2] /= n
		q[3] /= n
	} else {
		q[3] = 1
	}
	return q
}

// NearEqual reports whether two float32 values differ by at most tol.
//
// Parameters:
//   - a, b: values to compare
//   - tol: absolute tolerance
//
// Returns:
//   - bool: true when |a-b| <= tol
func NearEqual(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

// Mat4NearEqual reports whether two 4x4 matrices are component-wise equal
// within an absolute tolerance.
//
// Parameters:
//   - a, b: matrices to compare
//   - tol: absolute per-component tolerance
//
// Returns:
//   - bool: true when every component pair is within tol
func Mat4NearEqual(a, b [16]float32, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
