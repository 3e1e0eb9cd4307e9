package detector

import "container/list"

// componentStats carries per-component pixel count and bounding extent,
// accumulated during labeling.
type componentStats struct {
	count int
	minX  int
	minY  int
	maxX  int
	maxY  int
}

// connectedComponents labels 8-connected foreground regions in the mask.
// It returns the per-component stats and the label plane (0 = background,
// labels start at 1). Components are numbered in row-major discovery
// order, which downstream code relies on for deterministic candidate
// ordering.
func connectedComponents(mask *Mask) ([]componentStats, []int) {
	w, h := mask.Width, mask.Height
	labels := make([]int, w*h)
	var comps []componentStats
	next := 1

	for y := range h {
		for x := range w {
			idx := y*w + x
			if mask.Pix[idx] && labels[idx] == 0 {
				comps = append(comps, labelComponent(mask, labels, x, y, next))
				next++
			}
		}
	}
	return comps, labels
}

// eight-neighborhood, matching external-contour extraction semantics
var connectivityDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// labelComponent floods one component from a seed pixel via BFS, writing
// its label and accumulating stats.
func labelComponent(mask *Mask, labels []int, startX, startY, label int) componentStats {
	w, h := mask.Width, mask.Height
	st := componentStats{minX: startX, minY: startY, maxX: startX, maxY: startY}

	q := list.New()
	q.PushBack(startY*w + startX)
	labels[startY*w+startX] = label

	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue
		}
		cx, cy := ci%w, ci/w

		st.count++
		if cx < st.minX {
			st.minX = cx
		}
		if cy < st.minY {
			st.minY = cy
		}
		if cx > st.maxX {
			st.maxX = cx
		}
		if cy > st.maxY {
			st.maxY = cy
		}

		for _, d := range connectivityDirs {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if mask.Pix[ni] && labels[ni] == 0 {
				labels[ni] = label
				q.PushBack(ni)
			}
		}
	}
	return st
}
