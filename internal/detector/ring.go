package detector

import (
	"image"
	"math"

	"github.com/glint-vision/chromafind/internal/utils"
)

// ringRadii derives the annulus radii in pixels from the enclosing circle
// radius and the configured percentages. The inner cut is at least 1px and
// the outer rim always clears the inner cut by at least 1px.
func ringRadii(radius float64, cfg ContextRingConfig) (inner, outer int) {
	inner = int(math.Round(radius * float64(cfg.InnerRadiusPercent) / 100.0))
	if inner < 1 {
		inner = 1
	}
	outer = int(math.Round(radius * float64(cfg.OuterRadiusPercent) / 100.0))
	if outer < inner+1 {
		outer = inner + 1
	}
	return inner, outer
}

// ringSupportRatio measures the fraction of the candidate's annulus covered
// by the support mask. Annulus membership is inner < dist <= outer around
// the candidate center. Pixels hit by the exclusion mask are removed from
// the annulus before measuring; an annulus with no valid pixels yields 0.
func ringSupportRatio(center image.Point, inner, outer int, support, exclude *Mask) float64 {
	w, h := support.Width, support.Height
	x0 := max(0, center.X-outer)
	x1 := min(w-1, center.X+outer)
	y0 := max(0, center.Y-outer)
	y1 := min(h-1, center.Y+outer)

	innerSq := inner * inner
	outerSq := outer * outer

	validPx := 0
	supportPx := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := x-center.X, y-center.Y
			d2 := dx*dx + dy*dy
			if d2 > outerSq || d2 <= innerSq {
				continue
			}
			idx := y*w + x
			if exclude != nil && exclude.Pix[idx] {
				continue
			}
			validPx++
			if support.Pix[idx] {
				supportPx++
			}
		}
	}
	return utils.Clamp01(utils.SafeDiv(float64(supportPx), float64(validPx)))
}
