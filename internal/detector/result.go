package detector

import (
	"encoding/json"
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/glint-vision/chromafind/internal/utils"
)

// Detection is one scored candidate region.
type Detection struct {
	// Box is the pixel-aligned bounding box of the contour.
	Box image.Rectangle
	// Center is the rounded center of the minimal enclosing circle.
	Center image.Point
	// Radius is the enclosing circle radius in pixels.
	Radius float64
	// Contour holds the traced boundary, pixel-center coordinates.
	Contour []utils.Point
	Metrics DetectionMetrics
}

// ScoreStats summarizes the score distribution over all candidates of a
// run.
type ScoreStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// RunResult is the complete outcome of one detection run. It is owned by
// the caller; nothing in it is shared with later runs.
type RunResult struct {
	// Detections holds every non-degenerate candidate, accepted first,
	// score-descending within each partition.
	Detections []Detection

	AcceptedCenters []image.Point
	AcceptedBoxes   []image.Rectangle

	RawCandidateCount int
	AcceptedCount     int
	AcceptedRatio     float64
	SceneMaskCoverage float64
	// Score is the best accepted score, 0 when nothing was accepted.
	Score      float64
	ScoreStats ScoreStats

	// CenterMask is the post-cleanup center color mask, retained for
	// diagnostic rendering.
	CenterMask *Mask
}

// sortDetections orders accepted before rejected, then by descending
// score. The sort is stable: equal-score candidates keep their extraction
// (row-major component discovery) order.
func sortDetections(dets []Detection) {
	sort.SliceStable(dets, func(i, j int) bool {
		a, b := dets[i].Metrics, dets[j].Metrics
		if a.Accepted != b.Accepted {
			return a.Accepted
		}
		return a.Score > b.Score
	})
}

// aggregate finalizes the run: sorts detections, fills the accepted
// partitions and computes the run-level statistics.
func (r *RunResult) aggregate() {
	sortDetections(r.Detections)

	scores := make([]float64, 0, len(r.Detections))
	for _, det := range r.Detections {
		scores = append(scores, det.Metrics.Score)
		if !det.Metrics.Accepted {
			continue
		}
		r.AcceptedCenters = append(r.AcceptedCenters, det.Center)
		r.AcceptedBoxes = append(r.AcceptedBoxes, det.Box)
		r.AcceptedCount++
		if det.Metrics.Score > r.Score {
			r.Score = det.Metrics.Score
		}
	}

	den := r.RawCandidateCount
	if den < 1 {
		den = 1
	}
	r.AcceptedRatio = float64(r.AcceptedCount) / float64(den)

	if len(scores) > 0 {
		r.ScoreStats.Mean = stat.Mean(scores, nil)
	}
	if len(scores) > 1 {
		r.ScoreStats.StdDev = stat.StdDev(scores, nil)
	}
}

// JSON-facing shapes. Kept flat so API consumers do not need to know
// the internal geometry types.

type RunResultJSON struct {
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	Detections        []DetectionJSON `json:"detections"`
	AcceptedCenters   []PointJSON     `json:"accepted_centers"`
	RawCandidateCount int             `json:"raw_candidate_count"`
	AcceptedCount     int             `json:"accepted_count"`
	AcceptedRatio     float64         `json:"accepted_ratio"`
	SceneMaskCoverage float64         `json:"scene_mask_coverage"`
	Score             float64         `json:"score"`
	ScoreStats        ScoreStats      `json:"score_stats"`
}

type DetectionJSON struct {
	Box     BoxJSON          `json:"box"`
	Center  PointJSON        `json:"center"`
	Radius  float64          `json:"radius"`
	Metrics DetectionMetrics `json:"metrics"`
}

type BoxJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type PointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToJSON serializes the run result with the frame dimensions it was
// computed against.
func (r *RunResult) ToJSON(width, height int) ([]byte, error) {
	out := RunResultJSON{
		Width:             width,
		Height:            height,
		Detections:        make([]DetectionJSON, 0, len(r.Detections)),
		AcceptedCenters:   make([]PointJSON, 0, len(r.AcceptedCenters)),
		RawCandidateCount: r.RawCandidateCount,
		AcceptedCount:     r.AcceptedCount,
		AcceptedRatio:     r.AcceptedRatio,
		SceneMaskCoverage: r.SceneMaskCoverage,
		Score:             r.Score,
		ScoreStats:        r.ScoreStats,
	}
	for _, d := range r.Detections {
		out.Detections = append(out.Detections, DetectionJSON{
			Box:     BoxJSON{X: d.Box.Min.X, Y: d.Box.Min.Y, W: d.Box.Dx(), H: d.Box.Dy()},
			Center:  PointJSON{X: d.Center.X, Y: d.Center.Y},
			Radius:  d.Radius,
			Metrics: d.Metrics,
		})
	}
	for _, p := range r.AcceptedCenters {
		out.AcceptedCenters = append(out.AcceptedCenters, PointJSON{X: p.X, Y: p.Y})
	}
	return json.MarshalIndent(out, "", "  ")
}
