package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHueRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		r        HueRange
		hue      int
		expected bool
	}{
		{"inside plain range", HueRange{MinHue: 20, MaxHue: 40}, 30, true},
		{"lower bound inclusive", HueRange{MinHue: 20, MaxHue: 40}, 20, true},
		{"upper bound inclusive", HueRange{MinHue: 20, MaxHue: 40}, 40, true},
		{"below lower bound", HueRange{MinHue: 20, MaxHue: 40}, 19, false},
		{"above upper bound", HueRange{MinHue: 20, MaxHue: 40}, 41, false},
		{"degenerate single hue", HueRange{MinHue: 90, MaxHue: 90}, 90, true},
		{"degenerate misses neighbor", HueRange{MinHue: 90, MaxHue: 90}, 91, false},

		{"wraparound low side", HueRange{MinHue: 170, MaxHue: 10}, 5, true},
		{"wraparound high side", HueRange{MinHue: 170, MaxHue: 10}, 175, true},
		{"wraparound at zero", HueRange{MinHue: 170, MaxHue: 10}, 0, true},
		{"wraparound at max", HueRange{MinHue: 170, MaxHue: 10}, 179, true},
		{"wraparound low boundary", HueRange{MinHue: 170, MaxHue: 10}, 10, true},
		{"wraparound just past low boundary", HueRange{MinHue: 170, MaxHue: 10}, 11, false},
		{"wraparound just before high boundary", HueRange{MinHue: 170, MaxHue: 10}, 169, false},
		{"wraparound high boundary", HueRange{MinHue: 170, MaxHue: 10}, 170, true},
		{"wraparound middle gap", HueRange{MinHue: 170, MaxHue: 10}, 90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Contains(tt.hue))
		})
	}
}

func TestNewHueRange_Clamping(t *testing.T) {
	r := NewHueRange(-5, 300)
	assert.Equal(t, 0, r.MinHue)
	assert.Equal(t, 179, r.MaxHue)
}

func TestHueRangeSet(t *testing.T) {
	set := NewHueRangeSet(
		HueRange{MinHue: 10, MaxHue: 20},
		HueRange{MinHue: 100, MaxHue: 110},
	)

	assert.False(t, set.Empty())
	assert.True(t, set.Contains(15))
	assert.True(t, set.Contains(105))
	assert.False(t, set.Contains(50))

	empty := NewHueRangeSet()
	assert.True(t, empty.Empty())
	assert.False(t, empty.Contains(0))
}

func TestChannelRange(t *testing.T) {
	r := ChannelRange{MinValue: 50, MaxValue: 100}
	assert.True(t, r.Contains(50))
	assert.True(t, r.Contains(100))
	assert.False(t, r.Contains(49))
	assert.False(t, r.Contains(101))
}

func TestChannelRange_Normalized(t *testing.T) {
	t.Run("clamps out-of-domain bounds", func(t *testing.T) {
		n := ChannelRange{MinValue: -10, MaxValue: 400}.normalized()
		assert.Equal(t, ChannelRange{MinValue: 0, MaxValue: 255}, n)
	})

	t.Run("swaps reversed bounds", func(t *testing.T) {
		n := ChannelRange{MinValue: 200, MaxValue: 100}.normalized()
		assert.Equal(t, ChannelRange{MinValue: 100, MaxValue: 200}, n)
	})
}
