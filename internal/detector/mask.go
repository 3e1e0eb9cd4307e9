package detector

// Mask is a binary image with row-major pixels.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask allocates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, p := range m.Pix {
		if p {
			n++
		}
	}
	return n
}

// Coverage returns the foreground fraction of the mask, 0 for an empty mask.
func (m *Mask) Coverage() float64 {
	total := m.Width * m.Height
	if total == 0 {
		return 0
	}
	return float64(m.Count()) / float64(total)
}

// ColorMaskSpec selects pixels by hue union plus saturation and value
// intervals.
type ColorMaskSpec struct {
	Hues     HueRangeSet  `mapstructure:"hues" yaml:"hues" json:"hues"`
	SatRange ChannelRange `mapstructure:"sat_range" yaml:"sat_range" json:"sat_range"`
	ValRange ChannelRange `mapstructure:"val_range" yaml:"val_range" json:"val_range"`
}

// BuildColorMask produces a binary mask over hsv where a pixel is
// foreground iff its hue lies in the spec's hue union AND its saturation
// and value lie in the spec's channel ranges. An empty hue set yields an
// all-background mask. Channel bounds are clamped and, if reversed,
// swapped before masking.
func BuildColorMask(hsv *HSVImage, spec ColorMaskSpec) *Mask {
	mask := NewMask(hsv.Width, hsv.Height)
	if spec.Hues.Empty() {
		return mask
	}
	sat := spec.SatRange.normalized()
	val := spec.ValRange.normalized()
	for i := range mask.Pix {
		if !sat.Contains(int(hsv.S[i])) || !val.Contains(int(hsv.V[i])) {
			continue
		}
		if spec.Hues.Contains(int(hsv.H[i])) {
			mask.Pix[i] = true
		}
	}
	return mask
}
