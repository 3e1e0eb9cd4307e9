package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectedComponents_Empty(t *testing.T) {
	comps, labels := connectedComponents(NewMask(4, 4))
	assert.Empty(t, comps)
	for _, l := range labels {
		assert.Equal(t, 0, l)
	}
}

func TestConnectedComponents_TwoBlobs(t *testing.T) {
	m := maskFromRows(
		"1100000",
		"1100000",
		"0000011",
		"0000011",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 2)

	// Row-major discovery order: top-left blob first.
	assert.Equal(t, 4, comps[0].count)
	assert.Equal(t, 0, comps[0].minX)
	assert.Equal(t, 1, comps[0].maxX)
	assert.Equal(t, 0, comps[0].minY)
	assert.Equal(t, 1, comps[0].maxY)

	assert.Equal(t, 4, comps[1].count)
	assert.Equal(t, 5, comps[1].minX)
	assert.Equal(t, 6, comps[1].maxX)
	assert.Equal(t, 2, comps[1].minY)
	assert.Equal(t, 3, comps[1].maxY)

	assert.Equal(t, 1, labels[0])
	assert.Equal(t, 2, labels[2*7+5])
}

func TestConnectedComponents_DiagonalTouchIsOneComponent(t *testing.T) {
	m := maskFromRows(
		"100",
		"010",
		"001",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 1)
	assert.Equal(t, 3, comps[0].count)
	assert.Equal(t, labels[0], labels[4])
	assert.Equal(t, labels[4], labels[8])
}

func TestConnectedComponents_DiscoveryOrderIsRowMajor(t *testing.T) {
	m := maskFromRows(
		"001",
		"100",
		"000",
	)
	comps, labels := connectedComponents(m)
	require.Len(t, comps, 2)
	// The pixel at (2,0) is reached before (0,1).
	assert.Equal(t, 1, labels[2])
	assert.Equal(t, 2, labels[3])
	assert.Equal(t, 2, comps[0].minX)
	assert.Equal(t, 0, comps[1].minX)
}
