package detector

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/glint-vision/chromafind/internal/utils"
)

// Finder runs color-pattern detection against single frames. It is
// stateless between calls and safe for concurrent use; every Find call
// works on its own masks and result.
type Finder struct {
	cfg Config
}

// NewFinder validates the configuration and returns a Finder holding an
// immutable copy of it.
func NewFinder(cfg Config) (*Finder, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Finder{cfg: cfg}, nil
}

// Config returns a copy of the finder's configuration.
func (f *Finder) Config() Config { return f.cfg }

// Find locates color markers in the frame and returns a fresh RunResult.
// Empty frames fail with ErrInvalidInput before any pixel work. Panics
// from the pixel primitives surface as ErrRuntime; no partial result is
// returned in that case.
func (f *Finder) Find(frame image.Image) (result *RunResult, err error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidInput)
	}
	b := frame.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty frame %dx%d", ErrInvalidInput, b.Dx(), b.Dy())
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrRuntime, rec)
		}
	}()

	hsv := ConvertImage(frame)
	return f.FindHSV(hsv)
}

// FindHSV runs detection over pre-converted HSV planes. It backs Find and
// gives tests exact control over channel values.
func (f *Finder) FindHSV(hsv *HSVImage) (*RunResult, error) {
	if hsv == nil || hsv.Width <= 0 || hsv.Height <= 0 {
		return nil, fmt.Errorf("%w: empty hsv frame", ErrInvalidInput)
	}

	centerMask := BuildColorMask(hsv, f.cfg.CenterColor)
	centerMask = ApplyMorphology(centerMask, f.cfg.CenterMorph)

	var supportMask, excludeMask *Mask
	if f.cfg.Context.Enabled {
		supportMask = BuildColorMask(hsv, f.cfg.Context.SupportColor)
		if !f.cfg.Context.ExcludeHues.Empty() {
			excludeMask = BuildColorMask(hsv, ColorMaskSpec{
				Hues:     f.cfg.Context.ExcludeHues,
				SatRange: f.cfg.Context.ExcludeSatRange,
				ValRange: f.cfg.Context.ExcludeValRange,
			})
		}
	}

	comps, labels := connectedComponents(centerMask)

	result := &RunResult{
		RawCandidateCount: len(comps),
		SceneMaskCoverage: centerMask.Coverage(),
		CenterMask:        centerMask,
	}

	for i, comp := range comps {
		det, ok := f.scoreComponent(labels, centerMask, comp, i+1, supportMask, excludeMask)
		if !ok {
			continue
		}
		result.Detections = append(result.Detections, det)
	}

	result.aggregate()

	slog.Debug("detection run complete",
		"raw_candidates", result.RawCandidateCount,
		"accepted", result.AcceptedCount,
		"coverage", result.SceneMaskCoverage,
		"score", result.Score)
	return result, nil
}

// scoreComponent turns one labeled component into a scored detection.
// Components whose contour encloses no area are degenerate noise and are
// dropped here by policy rather than carried as zero-score detections.
func (f *Finder) scoreComponent(labels []int, mask *Mask, comp componentStats, label int,
	supportMask, excludeMask *Mask,
) (Detection, bool) {
	contour := traceContour(labels, mask.Width, mask.Height, label, comp)
	area := utils.PolygonArea(contour)
	if area <= 0 {
		return Detection{}, false
	}
	perimeter := utils.PolygonPerimeter(contour)
	circle := utils.MinEnclosingCircle(contour)
	center := image.Pt(int(math.Round(circle.Center.X)), int(math.Round(circle.Center.Y)))
	box := image.Rect(comp.minX, comp.minY, comp.maxX+1, comp.maxY+1)

	return Detection{
		Box:     box,
		Center:  center,
		Radius:  circle.Radius,
		Contour: contour,
		Metrics: scoreCandidate(area, perimeter, circle, center, f.cfg, supportMask, excludeMask),
	}, true
}
