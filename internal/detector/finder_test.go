package detector

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glint-vision/chromafind/internal/testutil"
)

// discConfig accepts a mid-hue disc of roughly 8-20px radius with no
// context requirement.
func discConfig() Config {
	cfg := DefaultConfig()
	cfg.CenterColor = ColorMaskSpec{
		Hues:     NewHueRangeSet(HueRange{MinHue: 100, MaxHue: 120}),
		SatRange: ChannelRange{MinValue: 100, MaxValue: 255},
		ValRange: ChannelRange{MinValue: 100, MaxValue: 255},
	}
	cfg.CenterMorph = MorphologyConfig{OpenIterations: 1, CloseIterations: 1}
	cfg.Shape = ShapeFilterConfig{
		MinArea:        50,
		MaxArea:        2000,
		MinCircularity: 0.7,
		MinFillRatio:   0.6,
	}
	cfg.Context.Enabled = false
	return cfg
}

// ringConfig extends discConfig with a bright-ring context requirement.
func ringConfig() Config {
	cfg := discConfig()
	cfg.Context = ContextRingConfig{
		Enabled:            true,
		InnerRadiusPercent: 105,
		OuterRadiusPercent: 225,
		SupportColor: ColorMaskSpec{
			Hues:     NewHueRangeSet(HueRange{MinHue: 0, MaxHue: 179}),
			SatRange: ChannelRange{MinValue: 0, MaxValue: 255},
			ValRange: ChannelRange{MinValue: 120, MaxValue: 255},
		},
		ExcludeHues:     NewHueRangeSet(HueRange{MinHue: 52, MaxHue: 68}),
		ExcludeSatRange: ChannelRange{MinValue: 0, MaxValue: 255},
		ExcludeValRange: ChannelRange{MinValue: 120, MaxValue: 255},
		MinSupportRatio: 0.42,
	}
	return cfg
}

var (
	darkBg    = testutil.HSVColor(0, 0, 10)
	discColor = testutil.HSVColor(110, 200, 220)
	ringColor = testutil.HSVColor(0, 0, 200)
)

func mustFinder(t *testing.T, cfg Config) *Finder {
	t.Helper()
	f, err := NewFinder(cfg)
	require.NoError(t, err)
	return f
}

func TestNewFinder_RejectsInvalidConfig(t *testing.T) {
	cfg := discConfig()
	cfg.Shape.MinCircularity = 3

	f, err := NewFinder(cfg)
	assert.Nil(t, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFind_InputValidation(t *testing.T) {
	f := mustFinder(t, discConfig())

	t.Run("nil frame", func(t *testing.T) {
		_, err := f.Find(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty frame", func(t *testing.T) {
		_, err := f.Find(image.NewRGBA(image.Rect(0, 0, 0, 0)))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("nil hsv planes", func(t *testing.T) {
		_, err := f.FindHSV(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestFind_SingleDisc(t *testing.T) {
	scene := testutil.NewScene(120, 120, darkBg)
	testutil.DrawDisc(scene, 60, 60, 15, discColor)

	result, err := mustFinder(t, discConfig()).Find(scene)
	require.NoError(t, err)

	assert.Equal(t, 1, result.RawCandidateCount)
	require.Equal(t, 1, result.AcceptedCount)
	require.Len(t, result.Detections, 1)

	det := result.Detections[0]
	assert.True(t, det.Metrics.Accepted)
	assert.InDelta(t, 60, det.Center.X, 2)
	assert.InDelta(t, 60, det.Center.Y, 2)
	assert.InDelta(t, 15, det.Radius, 3)
	assert.Greater(t, det.Metrics.CenterFillRatio, 0.85)
	assert.Greater(t, det.Metrics.Circularity, 0.8)
	assert.True(t, det.Center.In(det.Box))

	require.Len(t, result.AcceptedCenters, 1)
	assert.Equal(t, det.Center, result.AcceptedCenters[0])
	require.Len(t, result.AcceptedBoxes, 1)
	assert.Equal(t, det.Box, result.AcceptedBoxes[0])

	assert.InDelta(t, 1.0, result.AcceptedRatio, 1e-9)
	assert.Equal(t, det.Metrics.Score, result.Score)
	assert.Greater(t, result.SceneMaskCoverage, 0.0)
	assert.Less(t, result.SceneMaskCoverage, 0.2)
}

func TestFind_EmptyScene(t *testing.T) {
	scene := testutil.NewScene(80, 80, darkBg)

	result, err := mustFinder(t, discConfig()).Find(scene)
	require.NoError(t, err)

	assert.Equal(t, 0, result.RawCandidateCount)
	assert.Equal(t, 0, result.AcceptedCount)
	assert.Empty(t, result.Detections)
	assert.Equal(t, 0.0, result.AcceptedRatio)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0.0, result.SceneMaskCoverage)
}

func TestFind_ContextRing(t *testing.T) {
	t.Run("supported ring accepts", func(t *testing.T) {
		scene := testutil.NewScene(150, 150, darkBg)
		testutil.DrawRing(scene, 75, 75, 15, 42, ringColor)
		testutil.DrawDisc(scene, 75, 75, 15, discColor)

		result, err := mustFinder(t, ringConfig()).Find(scene)
		require.NoError(t, err)

		require.Equal(t, 1, result.AcceptedCount)
		det := result.Detections[0]
		assert.Greater(t, det.Metrics.RingSupportRatio, 0.9)
		assert.True(t, det.Metrics.PassesContext)
	})

	t.Run("missing ring rejects", func(t *testing.T) {
		scene := testutil.NewScene(150, 150, darkBg)
		testutil.DrawDisc(scene, 75, 75, 15, discColor)

		result, err := mustFinder(t, ringConfig()).Find(scene)
		require.NoError(t, err)

		assert.Equal(t, 0, result.AcceptedCount)
		require.Len(t, result.Detections, 1)
		det := result.Detections[0]
		assert.False(t, det.Metrics.Accepted)
		assert.False(t, det.Metrics.PassesContext)
		assert.True(t, det.Metrics.PassesArea)
		assert.True(t, det.Metrics.PassesCircularity)
		assert.Less(t, det.Metrics.RingSupportRatio, 0.42)
	})

	t.Run("excluded hue cannot support", func(t *testing.T) {
		// The ring is bright but entirely in the excluded band, so its
		// pixels leave the annulus instead of counting as support.
		scene := testutil.NewScene(150, 150, darkBg)
		testutil.DrawRing(scene, 75, 75, 14, 42, testutil.HSVColor(60, 200, 200))
		testutil.DrawDisc(scene, 75, 75, 15, discColor)

		result, err := mustFinder(t, ringConfig()).Find(scene)
		require.NoError(t, err)

		assert.Equal(t, 0, result.AcceptedCount)
		require.Len(t, result.Detections, 1)
		assert.Less(t, result.Detections[0].Metrics.RingSupportRatio, 0.42)
	})
}

func TestFind_SortsAcceptedFirst(t *testing.T) {
	scene := testutil.NewScene(200, 120, darkBg)
	testutil.DrawDisc(scene, 50, 60, 15, discColor)
	// Elongated blob: bad circularity, still a candidate.
	for dx := -20; dx <= 20; dx++ {
		testutil.DrawDisc(scene, 150+dx, 60, 4, discColor)
	}

	result, err := mustFinder(t, discConfig()).Find(scene)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RawCandidateCount)
	require.Len(t, result.Detections, 2)
	assert.Equal(t, 1, result.AcceptedCount)
	assert.InDelta(t, 0.5, result.AcceptedRatio, 1e-9)

	assert.True(t, result.Detections[0].Metrics.Accepted)
	assert.False(t, result.Detections[1].Metrics.Accepted)
	assert.InDelta(t, 50, result.Detections[0].Center.X, 2)
}

func TestFind_IsRepeatable(t *testing.T) {
	scene := testutil.NewScene(120, 120, darkBg)
	testutil.DrawDisc(scene, 60, 60, 15, discColor)
	f := mustFinder(t, discConfig())

	first, err := f.Find(scene)
	require.NoError(t, err)
	second, err := f.Find(scene)
	require.NoError(t, err)

	assert.Equal(t, first.AcceptedCount, second.AcceptedCount)
	require.Len(t, second.Detections, len(first.Detections))
	assert.Equal(t, first.Detections[0].Center, second.Detections[0].Center)
	assert.Equal(t, first.Detections[0].Metrics, second.Detections[0].Metrics)
}
