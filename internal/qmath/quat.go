package qmath

// QuatMul returns the Hamilton product a*b, with the X component as the
// real part. Quaternion multiplication is not commutative; argument order
// matters everywhere this is called.
func QuatMul(a, b Vec4) Vec4 {
	return Vec4{
		X: a.X*b.X - a.Y*b.Y - a.Z*b.Z - a.W*b.W,
		Y: a.X*b.Y + a.Y*b.X + a.Z*b.W - a.W*b.Z,
		Z: a.X*b.Z - a.Y*b.W + a.Z*b.X + a.W*b.Y,
		W: a.X*b.W + a.Y*b.Z - a.Z*b.Y + a.W*b.X,
	}
}

// QuatSquare is QuatMul(q, q) with the redundant products folded away.
// The distance estimator iterates this in its hot loop.
func QuatSquare(q Vec4) Vec4 {
	return Vec4{
		X: q.X*q.X - q.Y*q.Y - q.Z*q.Z - q.W*q.W,
		Y: 2 * q.X * q.Y,
		Z: 2 * q.X * q.Z,
		W: 2 * q.X * q.W,
	}
}
