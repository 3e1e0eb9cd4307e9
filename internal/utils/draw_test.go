package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var red = color.RGBA{R: 255, A: 255}

func blankRGBA(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func countPixels(img *image.RGBA, want color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestDrawRect(t *testing.T) {
	img := blankRGBA(20, 20)
	rect := image.Rect(5, 5, 15, 15)
	DrawRect(img, rect, red, 1)

	// All four edges stroked, interior untouched.
	assert.Equal(t, red, img.RGBAAt(5, 5))
	assert.Equal(t, red, img.RGBAAt(14, 14))
	assert.Equal(t, red, img.RGBAAt(10, 5))
	assert.Equal(t, red, img.RGBAAt(5, 10))
	assert.NotEqual(t, red, img.RGBAAt(10, 10))
}

func TestDrawRect_ClippedAndEmpty(t *testing.T) {
	img := blankRGBA(10, 10)
	DrawRect(img, image.Rect(-5, -5, 5, 5), red, 1)
	assert.Equal(t, red, img.RGBAAt(0, 0))

	outside := blankRGBA(10, 10)
	DrawRect(outside, image.Rect(50, 50, 60, 60), red, 1)
	assert.Equal(t, 0, countPixels(outside, red))
}

func TestDrawCircle(t *testing.T) {
	img := blankRGBA(40, 40)
	DrawCircle(img, image.Pt(20, 20), 10, red, 1)

	// Cardinal extremes lie on the outline.
	assert.Equal(t, red, img.RGBAAt(30, 20))
	assert.Equal(t, red, img.RGBAAt(10, 20))
	assert.Equal(t, red, img.RGBAAt(20, 30))
	assert.Equal(t, red, img.RGBAAt(20, 10))
	// Center stays clear.
	assert.NotEqual(t, red, img.RGBAAt(20, 20))
}

func TestDrawPolygon(t *testing.T) {
	img := blankRGBA(20, 20)
	pts := []Point{{X: 2, Y: 2}, {X: 17, Y: 2}, {X: 17, Y: 17}, {X: 2, Y: 17}}
	DrawPolygon(img, pts, red, 1)

	assert.Equal(t, red, img.RGBAAt(2, 2))
	assert.Equal(t, red, img.RGBAAt(10, 2), "closing edges connect the corners")
	assert.Equal(t, red, img.RGBAAt(2, 10))
	assert.NotEqual(t, red, img.RGBAAt(10, 10))

	// Too few points is a no-op.
	empty := blankRGBA(10, 10)
	DrawPolygon(empty, pts[:1], red, 1)
	assert.Equal(t, 0, countPixels(empty, red))
}

func TestDrawLabel(t *testing.T) {
	textCol := color.RGBA{G: 255, A: 255}
	bgCol := color.RGBA{B: 255, A: 255}

	t.Run("renders text pixels", func(t *testing.T) {
		img := blankRGBA(80, 30)
		DrawLabel(img, "A 0.93", image.Pt(5, 20), textCol, bgCol, false, 2)
		assert.Positive(t, countPixels(img, textCol))
		assert.Equal(t, 0, countPixels(img, bgCol))
	})

	t.Run("background fills behind text", func(t *testing.T) {
		img := blankRGBA(80, 30)
		DrawLabel(img, "A 0.93", image.Pt(5, 20), textCol, bgCol, true, 2)
		assert.Positive(t, countPixels(img, textCol))
		assert.Positive(t, countPixels(img, bgCol))
	})

	t.Run("empty text is a no-op", func(t *testing.T) {
		img := blankRGBA(20, 20)
		DrawLabel(img, "", image.Pt(5, 5), textCol, bgCol, true, 2)
		assert.Equal(t, 0, countPixels(img, textCol))
	})

	t.Run("overflowing anchor is nudged inside", func(t *testing.T) {
		img := blankRGBA(80, 30)
		DrawLabel(img, "A 0.93", image.Pt(200, -50), textCol, bgCol, false, 2)
		assert.Positive(t, countPixels(img, textCol))
	})
}
