package scene

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Hex creates an opaque color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float32((rgb>>16)&0xFF) / 255.0,
		G: float32((rgb>>8)&0xFF) / 255.0,
		B: float32(rgb&0xFF) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// RGB returns the color components without alpha.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Scale multiplies the color channels by f, leaving alpha.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Bytes returns the RGB channels as 8-bit values, clamped.
func (c Color) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Palette.
var (
	White      = Color{1, 1, 1, 1}
	CubeColor  = Hex(0x6559C2)
	Background = Hex(0x111111)
	GridCenter = Hex(0x555555)
	GridLine   = Hex(0x333333)
	Specular   = Hex(0xEEEEEE)
)
