package detector

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingRadii(t *testing.T) {
	cfg := ContextRingConfig{InnerRadiusPercent: 105, OuterRadiusPercent: 225}

	t.Run("scales by percent", func(t *testing.T) {
		inner, outer := ringRadii(10, cfg)
		assert.Equal(t, 11, inner)
		assert.Equal(t, 23, outer)
	})

	t.Run("inner floor is one pixel", func(t *testing.T) {
		inner, _ := ringRadii(0.1, cfg)
		assert.Equal(t, 1, inner)
	})

	t.Run("outer clears inner", func(t *testing.T) {
		tight := ContextRingConfig{InnerRadiusPercent: 100, OuterRadiusPercent: 100}
		inner, outer := ringRadii(5, tight)
		assert.Equal(t, 5, inner)
		assert.Equal(t, 6, outer)
	})
}

func fullMask(w, h int) *Mask {
	m := NewMask(w, h)
	for i := range m.Pix {
		m.Pix[i] = true
	}
	return m
}

func TestRingSupportRatio(t *testing.T) {
	center := image.Pt(15, 15)

	t.Run("full support yields one", func(t *testing.T) {
		ratio := ringSupportRatio(center, 3, 8, fullMask(31, 31), nil)
		assert.InDelta(t, 1.0, ratio, 1e-9)
	})

	t.Run("no support yields zero", func(t *testing.T) {
		ratio := ringSupportRatio(center, 3, 8, NewMask(31, 31), nil)
		assert.InDelta(t, 0.0, ratio, 1e-9)
	})

	t.Run("membership excludes the inner disc", func(t *testing.T) {
		// Support only strictly inside the inner radius: nothing of it
		// lands in the annulus.
		support := NewMask(31, 31)
		for y := range 31 {
			for x := range 31 {
				dx, dy := x-15, y-15
				if dx*dx+dy*dy <= 3*3 {
					support.Pix[y*31+x] = true
				}
			}
		}
		ratio := ringSupportRatio(center, 3, 8, support, nil)
		assert.InDelta(t, 0.0, ratio, 1e-9)
	})

	t.Run("excluded pixels leave the denominator", func(t *testing.T) {
		// Half of the annulus is excluded; the remaining half is fully
		// supported, so the ratio stays 1.
		support := fullMask(31, 31)
		exclude := NewMask(31, 31)
		for y := range 31 {
			for x := 16; x < 31; x++ {
				exclude.Pix[y*31+x] = true
			}
		}
		ratio := ringSupportRatio(center, 3, 8, support, exclude)
		assert.InDelta(t, 1.0, ratio, 1e-9)
	})

	t.Run("fully excluded annulus yields zero", func(t *testing.T) {
		ratio := ringSupportRatio(center, 3, 8, fullMask(31, 31), fullMask(31, 31))
		assert.InDelta(t, 0.0, ratio, 1e-9)
	})

	t.Run("annulus clipped by the frame still measures", func(t *testing.T) {
		ratio := ringSupportRatio(image.Pt(0, 0), 1, 4, fullMask(10, 10), nil)
		assert.InDelta(t, 1.0, ratio, 1e-9)
	})
}
