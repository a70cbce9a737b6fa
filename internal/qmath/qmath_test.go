package qmath

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"unit x", Vec3{1, 0, 0}},
		{"diagonal", Vec3{1, 1, 1}},
		{"small", Vec3{1e-8, 2e-8, -3e-8}},
		{"negative", Vec3{-4, 3, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if l := n.Length(); math.Abs(l-1) > 1e-12 {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("normalize of zero should stay zero, got %v", z)
	}
}

func TestVec3_Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	z := x.Cross(y)
	if z != (Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestQuatMul_Identity(t *testing.T) {
	one := Vec4{1, 0, 0, 0}
	q := Vec4{0.3, -0.5, 0.7, 0.1}
	if got := QuatMul(one, q); got != q {
		t.Errorf("1*q = %v, want %v", got, q)
	}
	if got := QuatMul(q, one); got != q {
		t.Errorf("q*1 = %v, want %v", got, q)
	}
}

func TestQuatMul_Units(t *testing.T) {
	i := Vec4{0, 1, 0, 0}
	j := Vec4{0, 0, 1, 0}
	k := Vec4{0, 0, 0, 1}

	// i*j = k, j*i = -k, i*i = -1
	if got := QuatMul(i, j); got != k {
		t.Errorf("i*j = %v, want k", got)
	}
	if got := QuatMul(j, i); got != k.Scale(-1) {
		t.Errorf("j*i = %v, want -k", got)
	}
	if got := QuatMul(i, i); got != (Vec4{-1, 0, 0, 0}) {
		t.Errorf("i*i = %v, want -1", got)
	}
}

func TestQuatSquare_MatchesMul(t *testing.T) {
	qs := []Vec4{
		{0.5, 0.1, -0.3, 0.7},
		{-1, 2, 3, -4},
		{0, 0, 0, 0},
	}
	for _, q := range qs {
		a := QuatSquare(q)
		b := QuatMul(q, q)
		if math.Abs(a.X-b.X) > 1e-12 || math.Abs(a.Y-b.Y) > 1e-12 ||
			math.Abs(a.Z-b.Z) > 1e-12 || math.Abs(a.W-b.W) > 1e-12 {
			t.Errorf("QuatSquare(%v) = %v, QuatMul = %v", q, a, b)
		}
	}
}

func TestLerpAngle_ShortPath(t *testing.T) {
	// 3.0 -> -3.0 should cross pi, not zero.
	got := LerpAngle(3.0, -3.0, 0.5)
	want := math.Pi // midpoint of the short arc, up to 2pi wrap
	diff := math.Abs(math.Mod(got-want+3*math.Pi, 2*math.Pi) - math.Pi)
	if diff > 1e-9 {
		t.Errorf("LerpAngle(3,-3,0.5) = %v, want +-pi", got)
	}
	if got := LerpAngle(0.2, 0.4, 0.5); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("LerpAngle(0.2,0.4,0.5) = %v, want 0.3", got)
	}
}

func TestEaseInOut(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 4 * 0.25 * 0.25 * 0.25},
		{0.5, 0.5},
		{0.75, 1 - math.Pow(-2*0.75+2, 3)/2},
		{1, 1},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOut(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseInOut(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	// Monotonic on [0,1].
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotonic at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestMod2Pi(t *testing.T) {
	for _, a := range []float64{-7, -1, 0, 1, 7, 100} {
		m := Mod2Pi(a)
		if m < 0 || m >= 2*math.Pi {
			t.Errorf("Mod2Pi(%v) = %v out of range", a, m)
		}
		if math.Abs(math.Sin(m)-math.Sin(a)) > 1e-9 {
			t.Errorf("Mod2Pi(%v) changed the angle", a)
		}
	}
}
