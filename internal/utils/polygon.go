package utils

import "math"

// PolygonArea returns the area enclosed by a closed polygon using the
// shoelace formula. The polygon is treated as closed (last point connects
// back to the first). Fewer than 3 points enclose no area.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter returns the length of a closed polygon outline.
func PolygonPerimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for i := range pts {
		total += pts[i].Dist(pts[(i+1)%len(pts)])
	}
	return total
}

// ConvexHull computes the convex hull of a set of points using the
// monotone chain algorithm. Returns the hull in CCW order without
// duplicating the first point at the end.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n <= 1 {
		return append([]Point(nil), pts...)
	}
	p := make([]Point, n)
	copy(p, pts)
	sortPoints(p)
	p = removeDuplicatePoints(p)
	n = len(p)
	if n <= 1 {
		return append([]Point(nil), p...)
	}
	lower := buildHullChain(p, false)
	upper := buildHullChain(p, true)
	hull := make([]Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func removeDuplicatePoints(p []Point) []Point {
	q := p[:0]
	var last Point
	hasLast := false
	for _, pt := range p {
		if !hasLast || pt.X != last.X || pt.Y != last.Y {
			q = append(q, pt)
			last = pt
			hasLast = true
		}
	}
	return q
}

func buildHullChain(p []Point, reversed bool) []Point {
	chain := make([]Point, 0, len(p))
	for i := range p {
		pt := p[i]
		if reversed {
			pt = p[len(p)-1-i]
		}
		for len(chain) >= 2 && cross(chain[len(chain)-2], chain[len(chain)-1], pt) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, pt)
	}
	return chain
}

func sortPoints(p []Point) {
	// insertion sort; contour point sets are small
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && (p[j].X > v.X || (p[j].X == v.X && p[j].Y > v.Y)) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Circle is a center plus radius in pixel coordinates.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on the circle, with a small
// epsilon to absorb floating point error.
func (c Circle) Contains(p Point) bool {
	return c.Center.Dist(p) <= c.Radius+1e-7
}

// MinEnclosingCircle computes the smallest circle containing all points.
// The search runs on the convex hull, which keeps the quadratic candidate
// scan cheap for contour-sized inputs.
func MinEnclosingCircle(pts []Point) Circle {
	switch len(pts) {
	case 0:
		return Circle{}
	case 1:
		return Circle{Center: pts[0]}
	}
	hull := ConvexHull(pts)
	if len(hull) == 1 {
		return Circle{Center: hull[0]}
	}
	if len(hull) == 2 {
		return circleFrom2(hull[0], hull[1])
	}

	// Welzl-style growth over hull points: start from the first pair and
	// enlarge whenever a point falls outside.
	c := circleFrom2(hull[0], hull[1])
	for i := 2; i < len(hull); i++ {
		if c.Contains(hull[i]) {
			continue
		}
		c = circleWithPoint(hull[:i], hull[i])
	}
	return c
}

// circleWithPoint returns the minimal circle over pts that has q on its
// boundary.
func circleWithPoint(pts []Point, q Point) Circle {
	c := circleFrom2(pts[0], q)
	for i := 1; i < len(pts); i++ {
		if c.Contains(pts[i]) {
			continue
		}
		c = circleWithTwoPoints(pts[:i], pts[i], q)
	}
	return c
}

// circleWithTwoPoints returns the minimal circle over pts with both p and q
// on its boundary.
func circleWithTwoPoints(pts []Point, p, q Point) Circle {
	c := circleFrom2(p, q)
	for _, r := range pts {
		if c.Contains(r) {
			continue
		}
		c = circleFrom3(p, q, r)
	}
	return c
}

func circleFrom2(a, b Point) Circle {
	center := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return Circle{Center: center, Radius: center.Dist(a)}
}

func circleFrom3(a, b, c Point) Circle {
	// Circumcircle; collinear triples fall back to the widest pair.
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		ab := circleFrom2(a, b)
		ac := circleFrom2(a, c)
		bc := circleFrom2(b, c)
		best := ab
		if ac.Radius > best.Radius {
			best = ac
		}
		if bc.Radius > best.Radius {
			best = bc
		}
		return best
	}
	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	ux := (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d
	uy := (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d
	center := Point{X: ux, Y: uy}
	return Circle{Center: center, Radius: center.Dist(a)}
}
