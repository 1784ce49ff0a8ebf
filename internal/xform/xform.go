// Package xform is the upstream collaborator spec.md §1 calls "already
// viewport-mapped triangles": vertex transform, homogeneous clipping,
// and viewport mapping, adapted from the teacher's polygon_core.go
// (createProjectionMatrix, createTransformationMatrix, clip_axis,
// convertToScreenSpace) and processor.go's per-component Clip loop.
// Nothing in this package is part of the rasterization core; it feeds
// raster.Primitive batches to it from cmd/demo and cmd/sdldemo.
package xform

import (
	"github.com/chewxy/math32"
)

// Vec4 is a homogeneous clip-space vector.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

func (v Vec4) Cross(o Vec4) Vec4 {
	return Vec4{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
		0,
	}
}

func (v Vec4) Interpolate(o Vec4, t float32) Vec4 {
	return Vec4{
		v.X*(1-t) + o.X*t,
		v.Y*(1-t) + o.Y*t,
		v.Z*(1-t) + o.Z*t,
		v.W*(1-t) + o.W*t,
	}
}

func (v *Vec4) Normalize() {
	inv := 1 / v.W
	v.X *= inv
	v.Y *= inv
	v.Z *= inv
}

// ToScreenSpace maps NDC x/y (post perspective-divide, [-1,1]) into
// pixel coordinates of a width x height viewport, matching the
// teacher's convertToScreenSpace (with the same +2 padding the teacher
// uses to keep edge pixels off the boundary).
func (v *Vec4) ToScreenSpace(width, height int) {
	v.X = ((v.X + 1) * float32(width+2)) / 2
	v.Y = ((-v.Y + 1) * float32(height+2)) / 2
}

// Vec2 is a 2-component UV pair.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Interpolate(o Vec2, t float32) Vec2 {
	return Vec2{v.X*(1-t) + o.X*t, v.Y*(1-t) + o.Y*t}
}

// Matrix is a 4x4 row-major transform, kept as [][]float32 the way the
// teacher's matrix.go does rather than a fixed [4][4]float32, since
// that is what createProjectionMatrix/createTransformationMatrix and
// their Multiply already assume.
type Matrix [][]float32

func (m Matrix) Multiply(o Matrix) Matrix {
	result := make(Matrix, len(m))
	for i := range result {
		result[i] = make([]float32, len(o[0]))
		for j := range result[i] {
			for k := 0; k < len(m[0]); k++ {
				result[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return result
}

func (v Vec4) Matrix() Matrix {
	return Matrix{{v.X, v.Y, v.Z, v.W}}
}

func (m Matrix) Vec4() Vec4 {
	return Vec4{m[0][0], m[0][1], m[0][2], m[0][3]}
}

// Project transforms v by m.
func Project(v Vec4, m Matrix) Vec4 {
	return v.Matrix().Multiply(m).Vec4()
}

// ProjectionMatrix builds a perspective projection matrix, identical
// in form to the teacher's createProjectionMatrix.
func ProjectionMatrix(fovDegrees, aspect, near, far float32) Matrix {
	tangent := math32.Tan((fovDegrees * (math32.Pi / 180)) / 2)

	return Matrix{
		{1 / (tangent * aspect), 0, 0, 0},
		{0, 1 / tangent, 0, 0},
		{0, 0, (far + near) / (near - far), (near * far * 2) / (near - far)},
		{0, 0, -1, 0},
	}
}

// Quaternion is a unit rotation quaternion.
type Quaternion struct {
	X, Y, Z, W float32
}

// EulerToQuaternion builds a quaternion from roll/pitch/yaw in
// degrees, matching the teacher's convertToQuaternion.
func EulerToQuaternion(rollDeg, pitchDeg, yawDeg float32) Quaternion {
	roll := rollDeg * (math32.Pi / 180) * .5
	pitch := pitchDeg * (math32.Pi / 180) * .5
	yaw := yawDeg * (math32.Pi / 180) * .5

	cr, sr := math32.Cos(roll), math32.Sin(roll)
	cp, sp := math32.Cos(pitch), math32.Sin(pitch)
	cy, sy := math32.Cos(yaw), math32.Sin(yaw)

	return Quaternion{
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// TransformationMatrix builds a translate-then-rotate matrix, matching
// the teacher's createTransformationMatrix.
func TransformationMatrix(pos Vec4, r Quaternion) Matrix {
	return Matrix{
		{1 - 2*r.Y*r.Y - 2*r.Z*r.Z, 2*r.X*r.Y + 2*r.Z*r.W, 2*r.X*r.Z - 2*r.Y*r.W, 0},
		{2*r.X*r.Y - 2*r.Z*r.W, 1 - 2*r.X*r.X - 2*r.Z*r.Z, 2*r.Y*r.Z + 2*r.W*r.X, 0},
		{2*r.X*r.Z + 2*r.Y*r.W, 2*r.Y*r.Z - 2*r.W*r.X, 1 - 2*r.X*r.X - 2*r.Y*r.Y, 0},
		{pos.X, pos.Y, pos.Z, 1},
	}
}
