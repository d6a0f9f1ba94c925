package dwg

import "math"

// Matrix represents a 3D affine transformation as a 4x4 matrix in row-major
// order. Only the top three rows are meaningful; the bottom row is always
// (0, 0, 0, 1).
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| 0     0     0     1     |
//
// This represents the transformation:
//
//	x' = m[0]*x + m[1]*y + m[2]*z  + m[3]
//	y' = m[4]*x + m[5]*y + m[6]*z  + m[7]
//	z' = m[8]*x + m[9]*y + m[10]*z + m[11]
type Matrix [16]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(v Vec3) Matrix {
	return Matrix{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scaling creates a non-uniform scaling matrix.
func Scaling(v Vec3) Matrix {
	return Matrix{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation matrix about the Z axis (angle in radians,
// counter-clockwise).
func RotationZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromBasis creates the rotation matrix whose columns are the given
// orthonormal basis vectors. It maps local coordinates expressed in that
// basis into world coordinates.
func FromBasis(ex, ey, ez Vec3) Matrix {
	return Matrix{
		ex.X, ey.X, ez.X, 0,
		ex.Y, ey.Y, ez.Y, 0,
		ex.Z, ey.Z, ez.Z, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices (m * other). Applying the product to a point
// applies other first, then m.
func (m Matrix) Mul(other Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Apply transforms a point by the matrix.
func (m Matrix) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// ApplyAll transforms a point slice by the matrix, in place, and returns it.
func (m Matrix) ApplyAll(pts []Vec3) []Vec3 {
	if m.IsIdentity() {
		return pts
	}
	for i, p := range pts {
		pts[i] = m.Apply(p)
	}
	return pts
}

// IsIdentity reports whether the matrix is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// arbitraryAxisThreshold is the 1/64 threshold from the arbitrary axis
// algorithm: below it the extrusion is considered close enough to the world
// Z axis that the world Y axis must seed the local X axis instead.
const arbitraryAxisThreshold = 1.0 / 64.0

// ArbitraryAxis constructs the orthonormal local frame for the given
// extrusion (normal) direction and returns the rotation mapping local
// coordinates into world space.
//
// Following the standard construction: ez is the normalized extrusion; if
// both |ez.x| and |ez.y| are below 1/64, ex = normalize(worldY x ez),
// otherwise ex = normalize(worldZ x ez); ey = normalize(ez x ex).
func ArbitraryAxis(extrusion Vec3) Matrix {
	ez := extrusion.Normalize()
	var ex Vec3
	if math.Abs(ez.X) < arbitraryAxisThreshold && math.Abs(ez.Y) < arbitraryAxisThreshold {
		ex = Vec3{X: 0, Y: 1, Z: 0}.Cross(ez).Normalize()
	} else {
		ex = Vec3{X: 0, Y: 0, Z: 1}.Cross(ez).Normalize()
	}
	ey := ez.Cross(ex).Normalize()
	return FromBasis(ex, ey, ez)
}

// ocsMatrix returns the object-to-world rotation for an extrusion, or the
// identity when the extrusion is the default (0, 0, 1).
func ocsMatrix(extrusion Vec3) Matrix {
	if extrusion == (Vec3{}) || extrusion == defaultExtrusion {
		return Identity()
	}
	return ArbitraryAxis(extrusion)
}

// InsertTransform composes the placement transform for a block instance.
//
// In application order (the last factor of the product is applied to a
// child point first): scale by scale, rotate about the local Z axis by
// rotation, rotate by the arbitrary axis frame of extrusion, translate to
// insertion. When applyBasePoint is true the block's base point is first
// subtracted from child coordinates; by default decoders already emit child
// coordinates relative to the base point, so the offset is off.
// unitScale applies an additional uniform scale for drawing-unit conversion
// (pass 1 for none).
func InsertTransform(insertion, base, scale Vec3, rotation float64, extrusion Vec3, unitScale float64, applyBasePoint bool) Matrix {
	if unitScale == 0 {
		unitScale = 1
	}
	if scale == (Vec3{}) {
		scale = Vec3{X: 1, Y: 1, Z: 1}
	}
	m := Translation(insertion)
	m = m.Mul(ocsMatrix(extrusion))
	if rotation != 0 {
		m = m.Mul(RotationZ(rotation))
	}
	m = m.Mul(Scaling(scale.Mul(unitScale)))
	if applyBasePoint && base != (Vec3{}) {
		m = m.Mul(Translation(base.Mul(-1)))
	}
	return m
}

// ComposeNested combines a parent placement with a child placement so that a
// point in child-local space is transformed by child first, then parent.
// Nested block instances accumulate their transforms with this across
// arbitrary depth.
func ComposeNested(parent, child Matrix) Matrix {
	return parent.Mul(child)
}

// ArrayOffsets returns the per-cell translations for a row/column array
// instance. Spacings are expected to be pre-scaled by the instance's own
// axis scale. The (0,0) cell has a zero offset, so the base transform is
// used unmodified for it. Counts below 1 are treated as 1.
func ArrayOffsets(rows, cols int, rowSpacing, colSpacing float64) []Vec3 {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	offsets := make([]Vec3, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			offsets = append(offsets, Vec3{
				X: float64(col) * colSpacing,
				Y: float64(row) * rowSpacing,
			})
		}
	}
	return offsets
}
