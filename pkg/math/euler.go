package math

import "math"

// HalfPi is a quarter turn in radians.
const HalfPi = float32(math.Pi / 2)

// EulerXYZ returns the rotation matrix for XYZ-ordered Euler angles, Rx * Ry * Rz.
func EulerXYZ(e Vec3) Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// EulerFromMat4 extracts XYZ-ordered Euler angles from the (unscaled) rotation
// part of m. At gimbal lock (|m13| ~ 1) the Z angle is reported as 0.
func EulerFromMat4(m Mat4) Vec3 {
	m11, m12, m13 := float64(m.At(0, 0)), float64(m.At(0, 1)), float64(m.At(0, 2))
	m22, m23 := float64(m.At(1, 1)), float64(m.At(1, 2))
	m32, m33 := float64(m.At(2, 1)), float64(m.At(2, 2))

	y := math.Asin(math.Max(-1, math.Min(1, m13)))
	if math.Abs(m13) < 0.9999999 {
		return Vec3{
			X: float32(math.Atan2(-m23, m33)),
			Y: float32(y),
			Z: float32(math.Atan2(-m12, m11)),
		}
	}
	return Vec3{
		X: float32(math.Atan2(m32, m22)),
		Y: float32(y),
		Z: 0,
	}
}

// RoundRotation rounds every entry of the 3x3 rotation block to -1, 0 or 1.
// Only meaningful for rotations that are already close to a multiple of 90
// degrees on each axis; translation is dropped.
func RoundRotation(m Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*4+row] = float32(math.Round(float64(m[col*4+row])))
		}
	}
	out[15] = 1
	return out
}

// RoundToMultiple rounds v to the nearest multiple of step.
func RoundToMultiple(v, step float32) float32 {
	return float32(math.Round(float64(v)/float64(step))) * step
}
