package utils

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawRect draws an axis-aligned rectangle outline into dst.
func DrawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for t := range thickness {
		yTop := rect.Min.Y + t
		yBot := rect.Max.Y - 1 - t
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, yTop, col)
			dst.Set(x, yBot, col)
		}
	}
	for t := range thickness {
		xLeft := rect.Min.X + t
		xRight := rect.Max.X - 1 - t
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(xLeft, y, col)
			dst.Set(xRight, y, col)
		}
	}
}

// DrawPolygon draws connected line segments and closes the polygon.
func DrawPolygon(dst *image.RGBA, pts []Point, col color.Color, thickness int) {
	if len(pts) < 2 {
		return
	}
	ip := make([]image.Point, len(pts))
	for i, p := range pts {
		ip[i] = image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	}
	for i := range ip {
		drawLine(dst, ip[i], ip[(i+1)%len(ip)], col, thickness)
	}
}

// DrawCircle draws a circle outline using the midpoint algorithm.
func DrawCircle(dst *image.RGBA, center image.Point, radius int, col color.Color, thickness int) {
	if radius < 1 {
		radius = 1
	}
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		plotCirclePoints(dst, center, x, y, col, thickness)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func plotCirclePoints(dst *image.RGBA, c image.Point, x, y int, col color.Color, thickness int) {
	offsets := [8][2]int{
		{x, y}, {y, x}, {-y, x}, {-x, y},
		{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
	}
	for _, o := range offsets {
		drawThickPoint(dst, c.X+o[0], c.Y+o[1], col, thickness)
	}
}

// drawLine draws a line between two points using a simple Bresenham variant.
func drawLine(dst *image.RGBA, a, b image.Point, col color.Color, thickness int) {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		drawThickPoint(dst, x0, y0, col, thickness)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawThickPoint(dst *image.RGBA, x, y int, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	r := (thickness - 1) / 2
	for yy := y - r; yy <= y+r; yy++ {
		for xx := x - r; xx <= x+r; xx++ {
			if image.Pt(xx, yy).In(dst.Bounds()) {
				dst.Set(xx, yy, col)
			}
		}
	}
}

// DrawLabel renders a single line of text at the anchor point, optionally
// with a filled background rectangle behind it. The anchor is the text
// baseline origin; it is nudged back inside the image when the text would
// overflow.
func DrawLabel(dst *image.RGBA, text string, anchor image.Point, textCol, bgCol color.Color, withBackground bool, padding int) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	b := dst.Bounds()
	x := anchor.X
	if x < b.Min.X {
		x = b.Min.X
	}
	if x+textWidth+2 >= b.Max.X {
		x = b.Max.X - textWidth - 2
		if x < b.Min.X {
			x = b.Min.X
		}
	}
	y := anchor.Y
	if y < b.Min.Y+ascent+1 {
		y = b.Min.Y + ascent + 1
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 2
		if y < b.Min.Y+ascent+1 {
			y = b.Min.Y + ascent + 1
		}
	}

	if withBackground {
		bg := image.Rect(x-padding, y-ascent-padding, x+textWidth+padding, y+descent+padding)
		bg = bg.Intersect(b)
		draw.Draw(dst, bg, &image.Uniform{bgCol}, image.Point{}, draw.Src)
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{textCol},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
