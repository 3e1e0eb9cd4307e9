package detector

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/glint-vision/chromafind/internal/utils"
)

// DebugImages holds the diagnostic renderings for one run.
type DebugImages struct {
	// Overlay is the scene with detection boxes, circles and labels.
	Overlay *image.RGBA
	// Mask is the same annotation over the binary center mask.
	Mask *image.RGBA
	// SideBySide is Overlay and Mask concatenated horizontally.
	SideBySide *image.RGBA
}

// RenderDebug draws the run's detections over the scene and over the
// center mask. It is a pure presentation step built from the RunResult;
// detection is never re-run.
func RenderDebug(scene image.Image, result *RunResult, cfg DebugConfig) *DebugImages {
	if scene == nil || result == nil {
		return nil
	}
	if cfg.LineThickness < 1 {
		cfg.LineThickness = 1
	}

	overlay := cloneToRGBA(scene)
	maskView := maskToRGBA(result.CenterMask)

	for _, det := range result.Detections {
		accepted := det.Metrics.Accepted
		if !accepted && !cfg.DrawRejected {
			continue
		}
		stroke := cfg.RejectedColor
		if accepted {
			stroke = cfg.AcceptedColor
		}
		annotate(overlay, det, stroke, cfg)
		if maskView != nil {
			annotate(maskView, det, stroke, cfg)
		}
	}

	out := &DebugImages{Overlay: overlay, Mask: maskView}
	if maskView != nil {
		out.SideBySide = utils.HConcat(overlay, maskView)
	}
	return out
}

func annotate(dst *image.RGBA, det Detection, stroke color.RGBA, cfg DebugConfig) {
	utils.DrawRect(dst, det.Box, stroke, 2)
	radius := int(math.Round(det.Radius))
	if radius < 2 {
		radius = 2
	}
	utils.DrawCircle(dst, det.Center, radius, stroke, cfg.LineThickness)

	if !cfg.DrawLabels {
		return
	}
	label := metricLabel(det.Metrics)
	anchor := image.Pt(det.Box.Min.X, max(12, det.Box.Min.Y-4))
	utils.DrawLabel(dst, label, anchor, cfg.TextColor, cfg.LabelBgColor, cfg.DrawLabelBackground, cfg.LabelPaddingPx)
}

// metricLabel formats the per-detection annotation, e.g.
// "A rr=1.00 c=0.88 f=0.93".
func metricLabel(m DetectionMetrics) string {
	verdict := "R"
	if m.Accepted {
		verdict = "A"
	}
	return fmt.Sprintf("%s rr=%.2f c=%.2f f=%.2f", verdict, m.RingSupportRatio, m.Circularity, m.CenterFillRatio)
}

func cloneToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// maskToRGBA renders a binary mask as a grayscale RGBA image.
func maskToRGBA(m *Mask) *image.RGBA {
	if m == nil {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i, on := range m.Pix {
		v := uint8(0)
		if on {
			v = 255
		}
		o := i * 4
		dst.Pix[o] = v
		dst.Pix[o+1] = v
		dst.Pix[o+2] = v
		dst.Pix[o+3] = 255
	}
	return dst
}
