package sfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[int]float64

func (m mapSource) Value(cell int) (float64, bool) {
	v, ok := m[cell]
	return v, ok
}

func TestSampleReachElevations(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)

	src := mapSource{10: 101.5, 11: 91.5, 12: 81.5}
	elevs, err := s.SampleReachElevations(src, false)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 101.5, 2: 91.5, 3: 81.5}, elevs)
}

func TestSampleReachElevationsCoverage(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)

	var ce *CoverageError
	_, err = s.SampleReachElevations(mapSource{}, false)
	require.ErrorAs(t, err, &ce, "zero overlap is fatal")
	assert.Equal(t, 3, ce.Missing)

	_, err = s.SampleReachElevations(mapSource{10: 101.5, 11: 91.5}, false)
	require.ErrorAs(t, err, &ce, "partial coverage is just as fatal")
	assert.Equal(t, 1, ce.Missing)
}

func TestSampleReachElevationsSmoothing(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)

	// middle reach sampled above its upstream neighbour
	src := mapSource{10: 100, 11: 120, 12: 80}
	elevs, err := s.SampleReachElevations(src, true)
	require.NoError(t, err)
	assert.Equal(t, 100., elevs[1])
	assert.Equal(t, 100., elevs[2], "lowered to the running minimum")
	assert.Equal(t, 80., elevs[3])
}

func TestSmoothElevations(t *testing.T) {
	// two headwaters joining at reach 3
	rno := []int{1, 2, 3, 4}
	outreach := []int{3, 3, 4, 0}
	elevs := map[int]float64{1: 50, 2: 30, 3: 40, 4: 45}
	smoothElevations(rno, outreach, elevs)
	assert.Equal(t, 50., elevs[1])
	assert.Equal(t, 30., elevs[2])
	assert.Equal(t, 30., elevs[3], "takes the lower of its upstream paths")
	assert.Equal(t, 30., elevs[4])
}

func TestSetStreambedElevationsFromDEM(t *testing.T) {
	cfg := Defaults()
	cfg.LengthUnits = "meters"
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, cfg)
	require.NoError(t, err)

	src := mapSource{10: 300, 11: 200, 12: 100} // feet
	require.NoError(t, s.SetStreambedElevationsFromDEM(src, "feet", false))
	assert.InDelta(t, 300*0.3048, s.Reaches[0].Strtop, 1e-9)
	assert.InDelta(t, 100*0.3048, s.Reaches[2].Strtop, 1e-9)
}
