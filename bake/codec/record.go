package codec

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-bake/common"
)

// Record is the runtime's 12-component affine record: three translation
// components followed by the nine entries of the rotation/scale 3x3 matrix in
// row-major order.
type Record [12]float32

// IdentityRecord is the record of the identity transform. Identity records
// are never stored in an artifact except where key-exactness demands it.
var IdentityRecord = Record{
	0, 0, 0,
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// recordOf packs a column-major 4x4 affine matrix into a Record, dropping the
// projective row.
func recordOf(m [16]float32) Record {
	return Record{
		m[12], m[13], m[14],
		m[0], m[4], m[8],
		m[1], m[5], m[9],
		m[2], m[6], m[10],
	}
}

// Mat4 expands the record back into a column-major 4x4 affine matrix.
//
// Returns:
//   - [16]float32: the equivalent affine matrix
func (r Record) Mat4() [16]float32 {
	m := common.IdentityMat4()
	m[12], m[13], m[14] = r[0], r[1], r[2]
	m[0], m[4], m[8] = r[3], r[4], r[5]
	m[1], m[5], m[9] = r[6], r[7], r[8]
	m[2], m[6], m[10] = r[9], r[10], r[11]
	return m
}

// NearEqual reports whether two records are component-wise equal within an
// absolute tolerance.
//
// Parameters:
//   - o: the record to compare against
//   - tol: the per-component tolerance
//
// Returns:
//   - bool: true when every component pair is within tol
func (r Record) NearEqual(o Record, tol float32) bool {
	for i := range r {
		if math32.Abs(r[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// IsIdentity reports whether the record equals the identity record within the
// given tolerance.
//
// Parameters:
//   - tol: the per-component tolerance
//
// Returns:
//   - bool: true when the record is the identity transform
func (r Record) IsIdentity(tol float32) bool {
	return r.NearEqual(IdentityRecord, tol)
}
