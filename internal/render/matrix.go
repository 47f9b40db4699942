package render

// Matrix is a 4x5 affine color transform in row-major order:
//
//	| Rr Rg Rb Ra Ro |
//	| Gr Gg Gb Ga Go |
//	| Br Bg Bb Ba Bo |
//	| Ar Ag Ab Aa Ao |
//
// The first four columns are the linear part, the fifth is a per-channel
// offset measured in 8-bit channel units (0..255):
//
//	out[i] = m[i*5+0]*r + m[i*5+1]*g + m[i*5+2]*b + m[i*5+3]*a + m[i*5+4]
type Matrix [20]float64

// BT.709 luminance coefficients.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Identity returns the identity color transform.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Saturation builds a saturation matrix. s=1 is identity, s=0 collapses
// every channel onto its BT.709 luminance, s>1 extrapolates away from gray.
func Saturation(s float64) Matrix {
	inv := 1 - s
	r := lumR * inv
	g := lumG * inv
	b := lumB * inv
	return Matrix{
		r + s, g, b, 0, 0,
		r, g + s, b, 0, 0,
		r, g, b + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast builds a contrast matrix pivoting around mid-gray (127.5)
// instead of black. c=1 is identity.
func Contrast(c float64) Matrix {
	t := (1 - c) * 0.5 * 255
	return Matrix{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	}
}

// Brightness builds a brightness matrix adding b*255 to each color
// channel. b=0 is identity.
func Brightness(b float64) Matrix {
	o := b * 255
	return Matrix{
		1, 0, 0, 0, o,
		0, 1, 0, 0, o,
		0, 0, 1, 0, o,
		0, 0, 0, 1, 0,
	}
}

// Mul composes two affine transforms as a∘b: b is applied to the color
// first, then a. Both offset columns are folded in, so the result is a
// single equivalent transform.
func Mul(a, b Matrix) Matrix {
	var c Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[i*5+k] * b[k*5+j]
			}
			c[i*5+j] = sum
		}
		off := a[i*5+4]
		for k := 0; k < 4; k++ {
			off += a[i*5+k] * b[k*5+4]
		}
		c[i*5+4] = off
	}
	return c
}

// Compose folds an Adjustment into one matrix. The order is fixed:
// saturation is applied to the pixel first, then contrast, then
// brightness. These transforms do not commute (each mixes a scale with
// an offset), so the chain must be built exactly this way.
func Compose(adj Adjustment) Matrix {
	m := Mul(Contrast(adj.Contrast), Saturation(adj.Saturation))
	return Mul(Brightness(adj.Brightness), m)
}

// ApplyTo transforms one RGBA color given in 8-bit channel units. The
// result is not clamped; callers clamp when converting back to bytes.
func (m Matrix) ApplyTo(r, g, b, a float64) (float64, float64, float64, float64) {
	or := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
	og := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
	ob := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
	oa := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
	return or, og, ob, oa
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
