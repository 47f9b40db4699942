package render

import (
	"image"
	"image/color"
)

// Filter applies m to every pixel of src and returns the result as a new
// NRGBA image with the same bounds. Channels are clamped to [0,255] after
// the transform.
func Filter(src image.Image, m Matrix) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	if m.IsIdentity() {
		// Still copies: callers may draw over the result.
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.Set(x, y, src.At(x, y))
			}
		}
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			r, g, b, a := m.ApplyTo(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
			dst.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(r),
				G: clampByte(g),
				B: clampByte(b),
				A: clampByte(a),
			})
		}
	}
	return dst
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
