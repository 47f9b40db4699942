package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Segment is one drawn stroke segment in local coordinates.
type Segment struct {
	X1, Y1 float32
	X2, Y2 float32
}

// Flatten renders the full composite: src with m applied, scaled by scale,
// with the stroke segments drawn on top. Stroke width and coordinates are
// given in local units and multiplied by scale, so strokes keep their
// on-screen proportions at any export resolution.
func Flatten(src image.Image, m Matrix, segs []Segment, width float64, col color.NRGBA, scale float64) *image.NRGBA {
	filtered := Filter(src, m)

	b := filtered.Bounds()
	dst := filtered
	if scale != 1 {
		outW := int(math.Round(float64(b.Dx()) * scale))
		outH := int(math.Round(float64(b.Dy()) * scale))
		dst = image.NewNRGBA(image.Rect(0, 0, outW, outH))
		xdraw.BiLinear.Scale(dst, dst.Bounds(), filtered, b, xdraw.Src, nil)
	}

	for _, s := range segs {
		DrawSegment(dst, s, width*scale, col, scale)
	}
	return dst
}

// DrawSegment paints one thick, round-capped, antialiased segment onto
// dst. The segment endpoints are local coordinates and are multiplied by
// scale; width is already in destination pixels.
func DrawSegment(dst *image.NRGBA, s Segment, width float64, col color.NRGBA, scale float64) {
	x1 := float64(s.X1) * scale
	y1 := float64(s.Y1) * scale
	x2 := float64(s.X2) * scale
	y2 := float64(s.Y2) * scale
	radius := width / 2

	// Bounding box padded for the caps plus one pixel of antialias.
	minX := int(math.Floor(math.Min(x1, x2) - radius - 1))
	maxX := int(math.Ceil(math.Max(x1, x2) + radius + 1))
	minY := int(math.Floor(math.Min(y1, y2) - radius - 1))
	maxY := int(math.Ceil(math.Max(y1, y2) + radius + 1))

	b := dst.Bounds()
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxX > b.Max.X {
		maxX = b.Max.X
	}
	if maxY > b.Max.Y {
		maxY = b.Max.Y
	}

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			d := distToSegment(float64(px)+0.5, float64(py)+0.5, x1, y1, x2, y2)
			// 1px linear falloff at the edge approximates coverage.
			cov := radius + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			blendNRGBA(dst, px, py, col, cov)
		}
	}
}

// distToSegment returns the distance from point (px,py) to the segment
// (x1,y1)-(x2,y2). Round caps fall out of this formulation: distance to a
// degenerate segment is distance to its single point.
func distToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-x1)*dx + (py-y1)*dy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx := x1 + t*dx
	cy := y1 + t*dy
	return math.Hypot(px-cx, py-cy)
}

// blendNRGBA does source-over blending of col at the given coverage.
// The blend runs in premultiplied space and converts back to straight
// alpha, so translucent destination pixels contribute in proportion to
// their own alpha.
func blendNRGBA(dst *image.NRGBA, x, y int, col color.NRGBA, cov float64) {
	sa := float64(col.A) / 255 * cov
	if sa <= 0 {
		return
	}
	old := dst.NRGBAAt(x, y)
	da := float64(old.A) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}
	blend := func(s, d uint8) uint8 {
		p := float64(s)*sa + float64(d)*da*(1-sa)
		return clampByte(p / outA)
	}
	dst.SetNRGBA(x, y, color.NRGBA{
		R: blend(col.R, old.R),
		G: blend(col.G, old.G),
		B: blend(col.B, old.B),
		A: clampByte(outA * 255),
	})
}
