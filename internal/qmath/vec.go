package qmath

import "math"

// Vec3 is a 3-component vector used for positions, directions and colors.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// Lerp interpolates component-wise between v and o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Clamp01 clamps every component to [0,1].
func (v Vec3) Clamp01() Vec3 {
	return Vec3{Clamp(v.X, 0, 1), Clamp(v.Y, 0, 1), Clamp(v.Z, 0, 1)}
}

// Vec4 is a 4-component vector. The quaternion operations in this package
// treat index 0 (X) as the real part and Y,Z,W as the imaginary units.
type Vec4 struct {
	X, Y, Z, W float64
}

func (v Vec4) Add(o Vec4) Vec4      { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Sub(o Vec4) Vec4      { return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W} }
func (v Vec4) Scale(s float64) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) Dot(o Vec4) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W }
func (v Vec4) Length() float64      { return math.Sqrt(v.Dot(v)) }

func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return Vec4{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
		v.W + (o.W-v.W)*t,
	}
}

// Array returns the components as a fixed-size array, for serialization.
func (v Vec4) Array() [4]float64 { return [4]float64{v.X, v.Y, v.Z, v.W} }

// Vec4FromArray builds a Vec4 from a serialized 4-element array.
func Vec4FromArray(a [4]float64) Vec4 { return Vec4{a[0], a[1], a[2], a[3]} }
