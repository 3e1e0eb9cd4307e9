package detector

// The structuring element is the fixed 3x3 cross (the elliptical 3x3
// kernel): a pixel's neighborhood is itself plus its four edge neighbors.
var crossOffsets = [5][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// ApplyMorphology runs the cleanup sequence on mask: an opening with
// openIterations, then a closing with closeIterations, then
// dilateIterations plain dilations. An N-iteration opening is N erosions
// followed by N dilations (a closing is the reverse), so larger counts
// remove larger noise blobs instead of repeating an idempotent one-step
// opening. Counts <= 0 are no-ops. The input mask is not modified.
func ApplyMorphology(mask *Mask, cfg MorphologyConfig) *Mask {
	out := mask
	for range max(0, cfg.OpenIterations) {
		out = erodeMask(out)
	}
	for range max(0, cfg.OpenIterations) {
		out = dilateMask(out)
	}
	for range max(0, cfg.CloseIterations) {
		out = dilateMask(out)
	}
	for range max(0, cfg.CloseIterations) {
		out = erodeMask(out)
	}
	for range max(0, cfg.DilateIterations) {
		out = dilateMask(out)
	}
	if out == mask {
		out = mask.Clone()
	}
	return out
}

// dilateMask sets a pixel when any pixel in its cross neighborhood is set.
func dilateMask(m *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := range m.Height {
		for x := range m.Width {
			for _, d := range crossOffsets {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
					continue
				}
				if m.Pix[ny*m.Width+nx] {
					out.Pix[y*m.Width+x] = true
					break
				}
			}
		}
	}
	return out
}

// erodeMask keeps a pixel only when its whole cross neighborhood is set.
// Neighbors outside the image are ignored, so regions touching the border
// do not erode inward from that side.
func erodeMask(m *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := range m.Height {
		for x := range m.Width {
			keep := true
			for _, d := range crossOffsets {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
					continue
				}
				if !m.Pix[ny*m.Width+nx] {
					keep = false
					break
				}
			}
			if keep {
				out.Pix[y*m.Width+x] = true
			}
		}
	}
	return out
}
