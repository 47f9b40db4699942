package render

// Adjustment holds the three slider parameters that drive the color
// matrix. Ranges: Brightness in [-1,1], Contrast in [0,4], Saturation in
// [0,2]. The input layer clamps values to these ranges before they reach
// the editor; Adjustment itself is a plain value and is replaced wholesale
// on every change.
type Adjustment struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

// DefaultAdjustment is the identity: no brightness shift, unit contrast,
// unit saturation.
func DefaultAdjustment() Adjustment {
	return Adjustment{Brightness: 0, Contrast: 1, Saturation: 1}
}

// IsDefault reports whether adj leaves the image unchanged.
func (adj Adjustment) IsDefault() bool {
	return adj == DefaultAdjustment()
}
