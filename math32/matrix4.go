// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit scene graph functionality.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// NewMatrix4Transform returns a new matrix composed from the given
// position, quaternion and scale.
func NewMatrix4Transform(pos Vector3, quat Quat, scale Vector3) *Matrix4 {
	m := &Matrix4{}
	m.SetTransform(pos, quat, scale)
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// IsIdentity returns whether this matrix is the identity matrix.
func (m *Matrix4) IsIdentity() bool {
	return *m == *Identity4()
}

// SetTransform sets this matrix to a transformation matrix for the specified position,
// rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2
	sx, sy, sz := scale.X, scale.Y, scale.Z

	m[0] = (1 - (yy + zz)) * sx
	m[1] = (xy + wz) * sx
	m[2] = (xz - wy) * sx
	m[3] = 0

	m[4] = (xy - wz) * sy
	m[5] = (1 - (xx + zz)) * sy
	m[6] = (yz + wx) * sy
	m[7] = 0

	m[8] = (xz + wy) * sz
	m[9] = (yz - wx) * sz
	m[10] = (1 - (xx + yy)) * sz
	m[11] = 0

	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Decompose decomposes this matrix into its position, quaternion and scale components.
// A negative determinant flips the sign of the X scale.
func (m *Matrix4) Decompose() (pos Vector3, quat Quat, scale Vector3) {
	sx := Vec3(m[0], m[1], m[2]).Length()
	sy := Vec3(m[4], m[5], m[6]).Length()
	sz := Vec3(m[8], m[9], m[10]).Length()

	if m.Determinant3() < 0 {
		sx = -sx
	}

	pos.X = m[12]
	pos.Y = m[13]
	pos.Z = m[14]

	// scale the rotation part
	mr := *m
	if sx != 0 {
		invSX := 1 / sx
		mr[0] *= invSX
		mr[1] *= invSX
		mr[2] *= invSX
	}
	if sy != 0 {
		invSY := 1 / sy
		mr[4] *= invSY
		mr[5] *= invSY
		mr[6] *= invSY
	}
	if sz != 0 {
		invSZ := 1 / sz
		mr[8] *= invSZ
		mr[9] *= invSZ
		mr[10] *= invSZ
	}

	quat.SetFromRotationMatrix(&mr)
	quat.Normalize()

	scale.X = sx
	scale.Y = sy
	scale.Z = sz
	return
}

// Determinant3 returns the determinant of the upper-left 3x3 part of this
// matrix, which is the determinant of the whole matrix for affine transforms.
func (m *Matrix4) Determinant3() float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// Mul returns this matrix times other matrix (this matrix is on the left).
// Applied to a point, other is applied first.
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// SetMul sets this matrix to this matrix times other.
func (m *Matrix4) SetMul(other *Matrix4) {
	m.MulMatrices(m, other)
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., b*a).
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	*m = r
}

// InverseAffine returns the inverse of this matrix, assuming it is an
// affine transform (bottom row 0, 0, 0, 1). If the matrix is singular
// the identity is returned along with false.
func (m *Matrix4) InverseAffine() (*Matrix4, bool) {
	det := m.Determinant3()
	if det == 0 {
		return Identity4(), false
	}
	inv := 1 / det
	// adjugate of the upper 3x3, row-major names
	a, b, c := m[0], m[4], m[8]
	d, e, f := m[1], m[5], m[9]
	g, h, i := m[2], m[6], m[10]

	nm := &Matrix4{}
	nm.Set(
		(e*i-f*h)*inv, (c*h-b*i)*inv, (b*f-c*e)*inv, 0,
		(f*g-d*i)*inv, (a*i-c*g)*inv, (c*d-a*f)*inv, 0,
		(d*h-e*g)*inv, (b*g-a*h)*inv, (a*e-b*d)*inv, 0,
		0, 0, 0, 1,
	)
	t := Vec3(m[12], m[13], m[14]).MulMatrix4AsDirection(nm).Negate()
	nm[12] = t.X
	nm[13] = t.Y
	nm[14] = t.Z
	return nm, true
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in radians, aspect ratio
// (width / height) and near and far clipping planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	f := 1 / Tan(fov/2)
	nf := 1 / (near - far)
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far+near)*nf, 2*far*near*nf,
		0, 0, -1, 0,
	)
}

// SetOrthographic sets this matrix to an orthographic projection matrix.
func (m *Matrix4) SetOrthographic(left, right, top, bottom, near, far float32) {
	w := right - left
	h := top - bottom
	p := far - near
	m.Set(
		2/w, 0, 0, -(right+left)/w,
		0, 2/h, 0, -(top+bottom)/h,
		0, 0, -2/p, -(far+near)/p,
		0, 0, 0, 1,
	)
}

// SetLookAt sets this matrix to a rotation matrix from the specified
// eye position to the target position with the specified up vector.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		// eye and target are in the same position
		z.Z = 1
	}
	z.SetNormal()

	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		// up and z are parallel
		if Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z.SetNormal()
		x = up.Cross(z)
	}
	x.SetNormal()
	y := z.Cross(x)

	m.SetIdentity()
	m[0], m[1], m[2] = x.X, x.Y, x.Z
	m[4], m[5], m[6] = y.X, y.Y, y.Z
	m[8], m[9], m[10] = z.X, z.Y, z.Z
}

// Position returns the translation part of this matrix.
func (m *Matrix4) Position() Vector3 {
	return Vec3(m[12], m[13], m[14])
}
