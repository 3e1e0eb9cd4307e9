package detector

// Hue values use the halved OpenCV-style 8-bit domain [0,179] where red
// sits at both ends of the circle.
const (
	HueMin = 0
	HueMax = 179
)

// HueRange is a closed interval on the circular hue domain. When
// MinHue > MaxHue the range wraps around red: it denotes
// [0,MaxHue] ∪ [MinHue,179].
type HueRange struct {
	MinHue int `mapstructure:"min_hue" yaml:"min_hue" json:"min_hue"`
	MaxHue int `mapstructure:"max_hue" yaml:"max_hue" json:"max_hue"`
}

// NewHueRange constructs a HueRange with both bounds clamped to [0,179].
func NewHueRange(minHue, maxHue int) HueRange {
	return HueRange{MinHue: clampHue(minHue), MaxHue: clampHue(maxHue)}
}

// Contains reports whether h lies inside the range, honoring wraparound.
func (r HueRange) Contains(h int) bool {
	if r.MinHue <= r.MaxHue {
		return h >= r.MinHue && h <= r.MaxHue
	}
	return h <= r.MaxHue || h >= r.MinHue
}

func clampHue(h int) int {
	if h < HueMin {
		return HueMin
	}
	if h > HueMax {
		return HueMax
	}
	return h
}

// HueRangeSet is a union of hue ranges. Membership is the union of the
// member ranges; an empty set matches nothing.
type HueRangeSet []HueRange

// NewHueRangeSet clamps and collects the given ranges.
func NewHueRangeSet(ranges ...HueRange) HueRangeSet {
	set := make(HueRangeSet, 0, len(ranges))
	for _, r := range ranges {
		set = append(set, NewHueRange(r.MinHue, r.MaxHue))
	}
	return set
}

// Empty reports whether the set has no ranges.
func (s HueRangeSet) Empty() bool { return len(s) == 0 }

// Contains reports whether h lies inside any member range.
func (s HueRangeSet) Contains(h int) bool {
	for _, r := range s {
		if r.Contains(h) {
			return true
		}
	}
	return false
}

// ChannelRange is an inclusive interval over [0,255] for the saturation or
// value channel.
type ChannelRange struct {
	MinValue int `mapstructure:"min_value" yaml:"min_value" json:"min_value"`
	MaxValue int `mapstructure:"max_value" yaml:"max_value" json:"max_value"`
}

// normalized clamps both bounds to [0,255] and swaps them if reversed.
// Validation already rejects reversed ranges; this is the mask builder's
// last line of defense.
func (r ChannelRange) normalized() ChannelRange {
	lo := clampChannel(r.MinValue)
	hi := clampChannel(r.MaxValue)
	if lo > hi {
		lo, hi = hi, lo
	}
	return ChannelRange{MinValue: lo, MaxValue: hi}
}

// Contains reports whether v lies inside the inclusive interval.
func (r ChannelRange) Contains(v int) bool {
	return v >= r.MinValue && v <= r.MaxValue
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
