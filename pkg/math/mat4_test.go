package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(V3(10, 20, 30))
	got := m.TransformPoint(V3(1, 2, 3))

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformPointScale(t *testing.T) {
	got := Scale(V3(2, 2, 2)).TransformPoint(V3(1, 2, 3))
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	got := RotateY(HalfPi).TransformPoint(V3(1, 0, 0))

	// (1,0,0) turns into (0,0,-1)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	a := RotateAxis(V3(0, 0, 1), 0.7)
	b := RotateZ(0.7)
	for i := range a {
		if abs(a[i]-b[i]) > 1e-6 {
			t.Fatalf("RotateAxis(z) element %d = %f, RotateZ = %f", i, a[i], b[i])
		}
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-5, 5, -5, 5, 0.1, 1000)
	got := m.TransformPoint(V3(5, 5, -0.1))
	if abs(got.X-1) > 1e-5 || abs(got.Y-1) > 1e-5 || abs(got.Z+1) > 1e-5 {
		t.Errorf("Ortho corner: got %v, want (1, 1, -1)", got)
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(V3(20, 20, 20), Vec3{}, V3(0, 1, 0))

	// The target sits on the view axis at distance |eye|.
	got := m.TransformPoint(Vec3{})
	dist := float32(math.Sqrt(3 * 400))
	if abs(got.X) > 1e-4 || abs(got.Y) > 1e-4 || abs(got.Z+dist) > 1e-3 {
		t.Errorf("LookAt target: got %v, want (0, 0, %f)", got, -dist)
	}
}

func TestInverse(t *testing.T) {
	m := Compose(V3(1, -2, 3), V3(0.3, 0.2, 0.1), V3(1.5, 1.5, 1.5))
	id := m.Mul(m.Inverse())
	want := Identity()
	for i := range id {
		if abs(id[i]-want[i]) > 1e-5 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, id[i], want[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
