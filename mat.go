package phong

// Mat3 is a 3x3 matrix stored column-major, matching WGSL mat3x3<f32>.
// Element (row r, column c) is at index c*3 + r.
type Mat3 [9]float32

// Mat3Identity returns the 3x3 identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix whose columns are c0, c1, c2, like the WGSL
// mat3x3 constructor.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// Mat3FromRows builds a matrix whose rows are r0, r1, r2.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3FromCols(r0, r1, r2).Transpose()
}

// Col returns column i.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{X: m[i*3+0], Y: m[i*3+1], Z: m[i*3+2]}
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{X: m[i], Y: m[3+i], Z: m[6+i]}
}

// Transpose returns the transposed matrix. For an orthonormal basis this is
// also the inverse, which is how the vertex stage maps world-space vectors
// into tangent space.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		Y: m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		Z: m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Mul returns the matrix product m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	return Mat3FromCols(
		m.MulVec3(other.Col(0)),
		m.MulVec3(other.Col(1)),
		m.MulVec3(other.Col(2)),
	)
}

// Mat4 is a 4x4 matrix stored column-major, matching WGSL mat4x4<f32> and
// the std140 uniform layout. Element (row r, column c) is at index c*4 + r.
type Mat4 [16]float32

// Mat4Identity returns the 4x4 identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromCols builds a matrix whose columns are c0..c3, like the WGSL
// mat4x4 constructor.
func Mat4FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Mat4Translate returns a translation matrix.
func Mat4Translate(t Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// Mat4Scale returns a (possibly non-uniform) scale matrix.
func Mat4Scale(s Vec3) Mat4 {
	return Mat4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{X: m[i*4+0], Y: m[i*4+1], Z: m[i*4+2], W: m[i*4+3]}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mul returns the matrix product m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4FromCols(
		m.MulVec4(other.Col(0)),
		m.MulVec4(other.Col(1)),
		m.MulVec4(other.Col(2)),
		m.MulVec4(other.Col(3)),
	)
}

// Upper3 returns the upper-left 3x3 block.
func (m Mat4) Upper3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Mat4LookAtRH builds a right-handed view matrix for a camera at eye looking
// at target, with the given up direction.
func Mat4LookAtRH(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4FromCols(
		Vec4{X: s.X, Y: u.X, Z: -f.X},
		Vec4{X: s.Y, Y: u.Y, Z: -f.Y},
		Vec4{X: s.Z, Y: u.Z, Z: -f.Z},
		Vec4{X: -s.Dot(eye), Y: -u.Dot(eye), Z: f.Dot(eye), W: 1},
	)
}

// Mat4PerspectiveRH builds a right-handed perspective projection with a
// [0, 1] depth range, the wgpu clip-space convention. fovy is the vertical
// field of view in radians.
func Mat4PerspectiveRH(fovy, aspect, near, far float32) Mat4 {
	f := 1 / tan32(fovy/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, (near * far) / (near - far), 0,
	}
}
