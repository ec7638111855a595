package sfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateToReaches(t *testing.T) {
	reaches := []Reach{
		{Node: 1, Iseg: 1, Ireach: 1, Rchlen: 100, Strtop: 5},
		{Node: 2, Iseg: 1, Ireach: 2, Rchlen: 100, Strtop: 4},
		{Node: 3, Iseg: 1, Ireach: 3, Rchlen: 200, Strtop: 3},
	}
	segments := []Segment{{Per: 0, Nseg: 1, Outseg: 0, Hcond1: 8, Hcond2: 0}}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	v := s.InterpolateToReaches(
		func(g Segment) float64 { return g.Hcond1 },
		func(g Segment) float64 { return g.Hcond2 }, 0)

	// midpoint fractions over total length 400: 0.125, 0.375, 0.75
	assert.InDelta(t, 7., v[1], 1e-12)
	assert.InDelta(t, 5., v[2], 1e-12)
	assert.InDelta(t, 2., v[3], 1e-12)
}

func TestDistributeSegmentProperties(t *testing.T) {
	// reach strtop column entirely unset; segment ends carry the elevations
	reaches := []Reach{
		{Node: 1, Iseg: 1, Ireach: 1, Rchlen: 100},
		{Node: 2, Iseg: 1, Ireach: 2, Rchlen: 100},
	}
	segments := []Segment{{Per: 0, Nseg: 1, Outseg: 0, Elevup: 20, Elevdn: 10, Width1: 4, Width2: 4}}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	// midpoints at 0.25 and 0.75 of the 20 -> 10 profile
	assert.InDelta(t, 17.5, s.Reaches[0].Strtop, 1e-12)
	assert.InDelta(t, 12.5, s.Reaches[1].Strtop, 1e-12)
	assert.Equal(t, 4., s.Reaches[0].Width)

	// thickness was set on neither table: configured default applies
	assert.Equal(t, 1., s.Reaches[0].Strthick)
}

func TestDistributeSegmentPropertiesGradient(t *testing.T) {
	// rno column unset: distribution must still give each reach its own
	// midpoint value, and the slopes derived from them follow the profile
	reaches := []Reach{
		{Node: 1, Iseg: 1, Ireach: 1, Rchlen: 100},
		{Node: 2, Iseg: 1, Ireach: 2, Rchlen: 100},
		{Node: 3, Iseg: 1, Ireach: 3, Rchlen: 100},
	}
	segments := []Segment{{Per: 0, Nseg: 1, Outseg: 0, Elevup: 30, Elevdn: 0}}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	assert.InDelta(t, 25., s.Reaches[0].Strtop, 1e-12)
	assert.InDelta(t, 15., s.Reaches[1].Strtop, 1e-12)
	assert.InDelta(t, 5., s.Reaches[2].Strtop, 1e-12)
	assert.InDelta(t, 0.1, s.Reaches[0].Slope, 1e-12)
	assert.InDelta(t, 0.1, s.Reaches[1].Slope, 1e-12)
	assert.Equal(t, 0.001, s.Reaches[2].Slope)
}

func TestDistributeLeavesSetColumnsAlone(t *testing.T) {
	reaches := []Reach{
		{Node: 1, Iseg: 1, Ireach: 1, Rchlen: 100, Strtop: 99},
		{Node: 2, Iseg: 1, Ireach: 2, Rchlen: 100, Strtop: 98},
	}
	segments := []Segment{{Per: 0, Nseg: 1, Outseg: 0, Elevup: 20, Elevdn: 10}}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)
	assert.Equal(t, 99., s.Reaches[0].Strtop, "a populated reach column wins over segment ends")
}
