package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitSquare = []Point{
	{X: 0, Y: 0},
	{X: 4, Y: 0},
	{X: 4, Y: 4},
	{X: 0, Y: 4},
}

func TestPolygonArea(t *testing.T) {
	assert.InDelta(t, 16.0, PolygonArea(unitSquare), 1e-9)

	triangle := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}
	assert.InDelta(t, 6.0, PolygonArea(triangle), 1e-9)

	// Orientation does not matter.
	reversed := []Point{{X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0}}
	assert.InDelta(t, 16.0, PolygonArea(reversed), 1e-9)

	assert.Equal(t, 0.0, PolygonArea(nil))
	assert.Equal(t, 0.0, PolygonArea(unitSquare[:2]))
}

func TestPolygonPerimeter(t *testing.T) {
	assert.InDelta(t, 16.0, PolygonPerimeter(unitSquare), 1e-9)

	// Two points form a closed out-and-back loop.
	assert.InDelta(t, 8.0, PolygonPerimeter([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}}), 1e-9)

	assert.Equal(t, 0.0, PolygonPerimeter(nil))
	assert.Equal(t, 0.0, PolygonPerimeter(unitSquare[:1]))
}

func TestConvexHull(t *testing.T) {
	t.Run("interior points are dropped", func(t *testing.T) {
		pts := append(append([]Point(nil), unitSquare...), Point{X: 2, Y: 2}, Point{X: 1, Y: 3})
		hull := ConvexHull(pts)
		require.Len(t, hull, 4)
		for _, corner := range unitSquare {
			assert.Contains(t, hull, corner)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		pts := []Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}}
		hull := ConvexHull(pts)
		assert.Len(t, hull, 3)
	})

	t.Run("small inputs pass through", func(t *testing.T) {
		assert.Empty(t, ConvexHull(nil))
		assert.Equal(t, []Point{{X: 1, Y: 1}}, ConvexHull([]Point{{X: 1, Y: 1}}))
	})
}

func TestCircle_Contains(t *testing.T) {
	c := Circle{Center: Point{X: 0, Y: 0}, Radius: 5}
	assert.True(t, c.Contains(Point{X: 3, Y: 4}))
	assert.True(t, c.Contains(Point{X: 0, Y: 0}))
	assert.False(t, c.Contains(Point{X: 4, Y: 4}))
}

func TestMinEnclosingCircle(t *testing.T) {
	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Equal(t, Circle{}, MinEnclosingCircle(nil))

		single := MinEnclosingCircle([]Point{{X: 3, Y: 4}})
		assert.Equal(t, Point{X: 3, Y: 4}, single.Center)
		assert.Equal(t, 0.0, single.Radius)
	})

	t.Run("two points span a diameter", func(t *testing.T) {
		c := MinEnclosingCircle([]Point{{X: 0, Y: 0}, {X: 6, Y: 8}})
		assert.InDelta(t, 5.0, c.Radius, 1e-9)
		assert.InDelta(t, 3.0, c.Center.X, 1e-9)
		assert.InDelta(t, 4.0, c.Center.Y, 1e-9)
	})

	t.Run("square", func(t *testing.T) {
		c := MinEnclosingCircle(unitSquare)
		assert.InDelta(t, 2*math.Sqrt2, c.Radius, 1e-9)
		assert.InDelta(t, 2.0, c.Center.X, 1e-9)
		assert.InDelta(t, 2.0, c.Center.Y, 1e-9)
	})

	t.Run("contains every input point", func(t *testing.T) {
		pts := []Point{
			{X: 1, Y: 1}, {X: 9, Y: 2}, {X: 4, Y: 8},
			{X: 7, Y: 7}, {X: 2, Y: 6}, {X: 5, Y: 3},
		}
		c := MinEnclosingCircle(pts)
		for _, p := range pts {
			assert.True(t, c.Contains(p), "point %+v outside circle %+v", p, c)
		}
	})

	t.Run("collinear points", func(t *testing.T) {
		c := MinEnclosingCircle([]Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 8, Y: 0}})
		assert.InDelta(t, 4.0, c.Radius, 1e-9)
		assert.InDelta(t, 4.0, c.Center.X, 1e-9)
	})

	t.Run("circle approximation is tight", func(t *testing.T) {
		var pts []Point
		for i := range 36 {
			ang := float64(i) * 10 * math.Pi / 180
			pts = append(pts, Point{X: 50 + 10*math.Cos(ang), Y: 50 + 10*math.Sin(ang)})
		}
		c := MinEnclosingCircle(pts)
		assert.InDelta(t, 10.0, c.Radius, 0.05)
		assert.InDelta(t, 50.0, c.Center.X, 0.05)
		assert.InDelta(t, 50.0, c.Center.Y, 0.05)
	})
}
