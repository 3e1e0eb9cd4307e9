package detector

import (
	"image"
	"math"

	"github.com/glint-vision/chromafind/internal/utils"
)

// Composite score weights. These are tuned constants; acceptance
// thresholds downstream were calibrated against them, so they must not be
// "improved".
const (
	circularityWeight = 0.55
	fillRatioWeight   = 0.45
	shapeScoreWeight  = 0.60
	ringScoreWeight   = 0.40
)

// DetectionMetrics records every per-candidate measurement and decision.
// Accepted is always the conjunction of the four pass flags.
type DetectionMetrics struct {
	AreaPx           float64 `json:"area_px"`
	Circularity      float64 `json:"circularity"`
	CenterFillRatio  float64 `json:"center_fill_ratio"`
	RingSupportRatio float64 `json:"ring_support_ratio"`
	Score            float64 `json:"score"`

	PassesArea        bool `json:"passes_area"`
	PassesCircularity bool `json:"passes_circularity"`
	PassesCenterFill  bool `json:"passes_center_fill"`
	PassesContext     bool `json:"passes_context"`
	Accepted          bool `json:"accepted"`
}

// circularity computes 4π·area/perimeter², the compactness measure that is
// 1 for a perfect circle. Degenerate contours score 0.
func circularity(area, perimeter float64) float64 {
	if area <= 0 || perimeter <= 0 {
		return 0
	}
	return utils.Clamp01(4 * math.Pi * area / (perimeter * perimeter))
}

// scoreCandidate runs every geometric and contextual decision rule for one
// candidate and assembles its metrics. support and exclude may be nil when
// the context ring is disabled.
func scoreCandidate(area, perimeter float64, circle utils.Circle, center image.Point,
	cfg Config, support, exclude *Mask,
) DetectionMetrics {
	var m DetectionMetrics
	m.AreaPx = area
	m.Circularity = circularity(area, perimeter)
	m.PassesArea = area >= float64(cfg.Shape.MinArea) && area <= float64(cfg.Shape.MaxArea)
	m.PassesCircularity = m.Circularity >= cfg.Shape.MinCircularity

	circleArea := math.Max(1, math.Pi*circle.Radius*circle.Radius)
	m.CenterFillRatio = utils.Clamp01(utils.SafeDiv(area, circleArea))
	m.PassesCenterFill = m.CenterFillRatio >= cfg.Shape.MinFillRatio

	if cfg.Context.Enabled {
		inner, outer := ringRadii(circle.Radius, cfg.Context)
		m.RingSupportRatio = ringSupportRatio(center, inner, outer, support, exclude)
		m.PassesContext = m.RingSupportRatio >= cfg.Context.MinSupportRatio
	} else {
		m.RingSupportRatio = 1
		m.PassesContext = true
	}

	shapeScore := circularityWeight*m.Circularity + fillRatioWeight*m.CenterFillRatio
	if cfg.Context.Enabled {
		m.Score = utils.Clamp01(shapeScoreWeight*shapeScore + ringScoreWeight*m.RingSupportRatio)
	} else {
		m.Score = utils.Clamp01(shapeScore)
	}

	m.Accepted = m.PassesArea && m.PassesCircularity && m.PassesCenterFill && m.PassesContext
	return m
}
