package math

import (
	"math"
	"testing"
)

func TestEulerRoundTrip(t *testing.T) {
	tests := []Vec3{
		{0, 0, 0},
		{0.3, -0.2, 1.1},
		{-1.2, 0.4, -2.9},
		{HalfPi, 0, 0},
		{0, 0, HalfPi},
	}
	for _, e := range tests {
		got := EulerFromMat4(EulerXYZ(e))
		a, b := EulerXYZ(got), EulerXYZ(e)
		for i := range a {
			if abs(a[i]-b[i]) > 1e-5 {
				t.Errorf("EulerFromMat4(%v) = %v does not rebuild the same matrix", e, got)
				break
			}
		}
	}
}

func TestEulerFromMat4GimbalLock(t *testing.T) {
	e := EulerFromMat4(RoundRotation(EulerXYZ(Vec3{0.4, HalfPi, 0})))
	if e.Z != 0 {
		t.Errorf("gimbal lock should report Z = 0, got %v", e.Z)
	}
	if abs(e.Y-HalfPi) > 1e-6 {
		t.Errorf("gimbal lock Y = %v, want pi/2", e.Y)
	}
}

func TestRoundRotation(t *testing.T) {
	m := RotateX(HalfPi + 0.01).Mul(RotateZ(float32(math.Pi) - 0.02))
	r := RoundRotation(m)
	for i, v := range r {
		if v != 0 && v != 1 && v != -1 {
			t.Errorf("element %d = %v, want -1, 0 or 1", i, v)
		}
	}
	if r[12] != 0 || r[13] != 0 || r[14] != 0 || r[15] != 1 {
		t.Error("RoundRotation should drop translation")
	}
}

func TestRoundToMultiple(t *testing.T) {
	tests := []struct {
		v, step, want float32
	}{
		{0.74, 0.5, 0.5},
		{-1.26, 0.5, -1.5},
		{1.49, 0.5, 1.5},
		{HalfPi + 0.1, HalfPi, HalfPi},
		{-0.2, HalfPi, 0},
	}
	for _, tt := range tests {
		if got := RoundToMultiple(tt.v, tt.step); got != tt.want {
			t.Errorf("RoundToMultiple(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
	}
}
