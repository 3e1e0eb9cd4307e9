// Package testutil builds synthetic marker scenes for tests: solid
// backgrounds with colored discs and rings at exact HSV coordinates.
package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVColor converts a hue in [0,179] plus 8-bit saturation/value into an
// opaque RGBA color. Hue uses the halved OpenCV-style domain so test
// scenes line up with detector configurations.
func HSVColor(h, s, v int) color.RGBA {
	c := colorful.Hsv(float64(h)*2, float64(s)/255.0, float64(v)/255.0).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// NewScene returns a solid background frame.
func NewScene(width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	return img
}

// DrawDisc paints a filled disc. A pixel belongs to the disc when its
// center lies within radius of (cx,cy).
func DrawDisc(img *image.RGBA, cx, cy, radius int, col color.Color) {
	rsq := radius * radius
	b := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !image.Pt(x, y).In(b) {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rsq {
				img.Set(x, y, col)
			}
		}
	}
}

// DrawRing paints a filled annulus: pixels farther than inner and no
// farther than outer from (cx,cy).
func DrawRing(img *image.RGBA, cx, cy, inner, outer int, col color.Color) {
	innerSq := inner * inner
	outerSq := outer * outer
	b := img.Bounds()
	for y := cy - outer; y <= cy+outer; y++ {
		for x := cx - outer; x <= cx+outer; x++ {
			if !image.Pt(x, y).In(b) {
				continue
			}
			dx, dy := x-cx, y-cy
			d2 := dx*dx + dy*dy
			if d2 > innerSq && d2 <= outerSq {
				img.Set(x, y, col)
			}
		}
	}
}
