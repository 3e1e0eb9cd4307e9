package detector

import "image/color"

// MorphologyConfig sets iteration counts for the fixed open → close →
// dilate cleanup order. Zero or negative counts are no-ops.
type MorphologyConfig struct {
	OpenIterations   int `mapstructure:"open_iterations" yaml:"open_iterations" json:"open_iterations"`
	CloseIterations  int `mapstructure:"close_iterations" yaml:"close_iterations" json:"close_iterations"`
	DilateIterations int `mapstructure:"dilate_iterations" yaml:"dilate_iterations" json:"dilate_iterations"`
}

// ShapeFilterConfig bounds candidate geometry. Areas are in pixel².
type ShapeFilterConfig struct {
	MinArea        int     `mapstructure:"min_area" yaml:"min_area" json:"min_area"`
	MaxArea        int     `mapstructure:"max_area" yaml:"max_area" json:"max_area"`
	MinCircularity float64 `mapstructure:"min_circularity" yaml:"min_circularity" json:"min_circularity"`
	MinFillRatio   float64 `mapstructure:"min_fill_ratio" yaml:"min_fill_ratio" json:"min_fill_ratio"`
}

// ContextRingConfig describes the annular color-support check around a
// candidate. Ring radii are percentages of the candidate's enclosing
// circle radius.
type ContextRingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	InnerRadiusPercent int `mapstructure:"inner_radius_percent" yaml:"inner_radius_percent" json:"inner_radius_percent"`
	OuterRadiusPercent int `mapstructure:"outer_radius_percent" yaml:"outer_radius_percent" json:"outer_radius_percent"`

	SupportColor ColorMaskSpec `mapstructure:"support_color" yaml:"support_color" json:"support_color"`

	ExcludeHues     HueRangeSet  `mapstructure:"exclude_hues" yaml:"exclude_hues" json:"exclude_hues"`
	ExcludeSatRange ChannelRange `mapstructure:"exclude_sat_range" yaml:"exclude_sat_range" json:"exclude_sat_range"`
	ExcludeValRange ChannelRange `mapstructure:"exclude_val_range" yaml:"exclude_val_range" json:"exclude_val_range"`

	MinSupportRatio float64 `mapstructure:"min_support_ratio" yaml:"min_support_ratio" json:"min_support_ratio"`
}

// DebugConfig controls the optional diagnostic rendering. It never affects
// detection results.
type DebugConfig struct {
	DrawRejected        bool `mapstructure:"draw_rejected" yaml:"draw_rejected" json:"draw_rejected"`
	DrawLabels          bool `mapstructure:"draw_labels" yaml:"draw_labels" json:"draw_labels"`
	DrawLabelBackground bool `mapstructure:"draw_label_background" yaml:"draw_label_background" json:"draw_label_background"`

	AcceptedColor color.RGBA `mapstructure:"-" yaml:"-" json:"-"`
	RejectedColor color.RGBA `mapstructure:"-" yaml:"-" json:"-"`
	TextColor     color.RGBA `mapstructure:"-" yaml:"-" json:"-"`
	LabelBgColor  color.RGBA `mapstructure:"-" yaml:"-" json:"-"`

	LineThickness  int `mapstructure:"line_thickness" yaml:"line_thickness" json:"line_thickness"`
	LabelPaddingPx int `mapstructure:"label_padding_px" yaml:"label_padding_px" json:"label_padding_px"`
}

// Config aggregates everything one detection run needs. A Config is an
// immutable value: the Finder copies it at construction and callers must
// not rely on later mutation.
type Config struct {
	CenterColor ColorMaskSpec     `mapstructure:"center_color" yaml:"center_color" json:"center_color"`
	CenterMorph MorphologyConfig  `mapstructure:"center_morph" yaml:"center_morph" json:"center_morph"`
	Shape       ShapeFilterConfig `mapstructure:"shape" yaml:"shape" json:"shape"`
	Context     ContextRingConfig `mapstructure:"context" yaml:"context" json:"context"`
	Debug       DebugConfig       `mapstructure:"debug" yaml:"debug" json:"debug"`
}

// DefaultConfig returns the tuned marker profile: an orange-ish center dot
// with a bright surrounding ring, greens and yellows excluded from the
// ring measurement.
func DefaultConfig() Config {
	return Config{
		CenterColor: ColorMaskSpec{
			Hues:     NewHueRangeSet(HueRange{MinHue: 16, MaxHue: 32}),
			SatRange: ChannelRange{MinValue: 50, MaxValue: 125},
			ValRange: ChannelRange{MinValue: 85, MaxValue: 255},
		},
		CenterMorph: MorphologyConfig{
			OpenIterations:   5,
			CloseIterations:  3,
			DilateIterations: 1,
		},
		Shape: ShapeFilterConfig{
			MinArea:        20,
			MaxArea:        800,
			MinCircularity: 0.75,
			MinFillRatio:   0.68,
		},
		Context: ContextRingConfig{
			Enabled:            true,
			InnerRadiusPercent: 105,
			OuterRadiusPercent: 225,
			SupportColor: ColorMaskSpec{
				Hues:     NewHueRangeSet(HueRange{MinHue: 0, MaxHue: 179}),
				SatRange: ChannelRange{MinValue: 0, MaxValue: 255},
				ValRange: ChannelRange{MinValue: 120, MaxValue: 255},
			},
			ExcludeHues: NewHueRangeSet(
				HueRange{MinHue: 52, MaxHue: 68},
				HueRange{MinHue: 24, MaxHue: 48},
			),
			ExcludeSatRange: ChannelRange{MinValue: 0, MaxValue: 255},
			ExcludeValRange: ChannelRange{MinValue: 120, MaxValue: 255},
			MinSupportRatio: 0.42,
		},
		Debug: DefaultDebugConfig(),
	}
}

// DefaultDebugConfig returns the standard overlay palette: green for
// accepted, red for rejected.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{
		DrawRejected:        false,
		DrawLabels:          true,
		DrawLabelBackground: true,
		AcceptedColor:       color.RGBA{R: 0, G: 255, B: 0, A: 255},
		RejectedColor:       color.RGBA{R: 255, G: 0, B: 0, A: 255},
		TextColor:           color.RGBA{R: 0, G: 255, B: 0, A: 255},
		LabelBgColor:        color.RGBA{R: 0, G: 0, B: 0, A: 255},
		LineThickness:       1,
		LabelPaddingPx:      2,
	}
}
