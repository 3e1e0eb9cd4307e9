package detector

import "github.com/glint-vision/chromafind/internal/utils"

// traceContour extracts the external boundary polygon of a labeled
// component using Moore-neighbor tracing, scanning only its bounding box.
// Points are pixel centers; runs of collinear points are compressed so
// straight edges contribute only their endpoints.
func traceContour(labels []int, w, h, label int, st componentStats) []utils.Point {
	if label <= 0 || len(labels) != w*h {
		return nil
	}
	sx, sy := findBoundaryStart(labels, w, h, label, st)
	if sx == -1 {
		return nil
	}

	pts := make([]utils.Point, 0, 64)
	push := func(x, y int) {
		p := utils.Point{X: float64(x), Y: float64(y)}
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			// drop b when a,b,p are collinear
			if (b.X-a.X)*(p.Y-b.Y)-(b.Y-a.Y)*(p.X-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts to the left of the start pixel
	push(cx, cy)

	startCx, startCy := cx, cy
	startBx, startBy := bx, by
	limit := w*h*4 + 8

	for steps := 0; steps < limit; steps++ {
		nx, ny, nbx, nby, ok := nextBoundaryPixel(labels, w, h, label, cx, cy, bx, by)
		if !ok {
			break
		}
		bx, by = nbx, nby
		cx, cy = nx, ny

		if n := len(pts); n == 0 || pts[n-1].X != float64(cx) || pts[n-1].Y != float64(cy) {
			push(cx, cy)
		}
		if cx == startCx && cy == startCy && bx == startBx && by == startBy {
			break
		}
	}

	// drop a duplicated closing point
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// findBoundaryStart locates the first pixel of the component that touches
// background, falling back to any component pixel for solid single-pixel
// regions.
func findBoundaryStart(labels []int, w, h, label int, st componentStats) (int, int) {
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if hasLabel(labels, w, h, label, x, y) &&
				(!hasLabel(labels, w, h, label, x+1, y) ||
					!hasLabel(labels, w, h, label, x-1, y) ||
					!hasLabel(labels, w, h, label, x, y+1) ||
					!hasLabel(labels, w, h, label, x, y-1)) {
				return x, y
			}
		}
	}
	for y := st.minY; y <= st.maxY; y++ {
		for x := st.minX; x <= st.maxX; x++ {
			if hasLabel(labels, w, h, label, x, y) {
				return x, y
			}
		}
	}
	return -1, -1
}

func hasLabel(labels []int, w, h, label, x, y int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return labels[y*w+x] == label
}

// clockwise Moore neighborhood: E, SE, S, SW, W, NW, N, NE
var (
	mooreDx = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDy = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// nextBoundaryPixel scans the Moore neighborhood of (cx,cy) clockwise
// starting just past the backtrack pixel (bx,by) and returns the next
// component pixel plus the new backtrack: the last background pixel
// examined before the hit. That backtrack is what makes the stop
// condition in traceContour fire when the walk closes.
func nextBoundaryPixel(labels []int, w, h, label, cx, cy, bx, by int) (int, int, int, int, bool) {
	start := 0
	for i := range 8 {
		if mooreDx[i] == bx-cx && mooreDy[i] == by-cy {
			start = (i + 1) % 8
			break
		}
	}
	for k := range 8 {
		i := (start + k) % 8
		tx, ty := cx+mooreDx[i], cy+mooreDy[i]
		if hasLabel(labels, w, h, label, tx, ty) {
			return tx, ty, bx, by, true
		}
		bx, by = tx, ty
	}
	return 0, 0, bx, by, false
}
