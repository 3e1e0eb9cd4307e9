package detector

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVImage holds per-pixel hue/saturation/value planes in row-major order.
// Hue is stored in [0,179] (degrees halved), saturation and value in
// [0,255].
type HSVImage struct {
	Width  int
	Height int
	H      []uint8
	S      []uint8
	V      []uint8
}

// NewHSVImage allocates zeroed planes for the given dimensions.
func NewHSVImage(width, height int) *HSVImage {
	n := width * height
	return &HSVImage{
		Width:  width,
		Height: height,
		H:      make([]uint8, n),
		S:      make([]uint8, n),
		V:      make([]uint8, n),
	}
}

// SetPixel writes one HSV triplet; out-of-range channel values are clamped.
func (img *HSVImage) SetPixel(x, y, h, s, v int) {
	idx := y*img.Width + x
	img.H[idx] = uint8(clampHue(h))
	img.S[idx] = uint8(clampChannel(s))
	img.V[idx] = uint8(clampChannel(v))
}

// ConvertImage converts a decoded frame into HSV planes. Alpha is ignored;
// fully transparent pixels convert like their RGB payload.
func ConvertImage(src image.Image) *HSVImage {
	b := src.Bounds()
	out := NewHSVImage(b.Dx(), b.Dy())
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(bl) / 65535.0,
			}
			h, s, v := c.Hsv()
			out.H[idx] = uint8(int(math.Round(h/2)) % 180)
			out.S[idx] = uint8(clampChannel(int(math.Round(s * 255))))
			out.V[idx] = uint8(clampChannel(int(math.Round(v * 255))))
			idx++
		}
	}
	return out
}
