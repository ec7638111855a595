package sfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenumbersInvalidNsegs(t *testing.T) {
	// segments numbered 5 and 3, 5 discharging to 3: neither dense nor
	// increasing downstream, so construction renumbers to [1, 2]
	reaches := []Reach{
		{Node: 1, Iseg: 5, Ireach: 1, Rchlen: 10, Strtop: 9},
		{Node: 2, Iseg: 5, Ireach: 2, Rchlen: 10, Strtop: 8},
		{Node: 3, Iseg: 3, Ireach: 1, Rchlen: 10, Strtop: 7},
	}
	segments := []Segment{
		{Per: 0, Nseg: 5, Outseg: 3},
		{Per: 0, Nseg: 3, Outseg: 0},
	}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	nseg, outseg := segmentRoutingColumns(s.periodGroup(0))
	assert.Equal(t, []int{1, 2}, nseg)
	assert.Equal(t, []int{2, 0}, outseg)
	assert.True(t, ValidNsegs(nseg, outseg, true))

	// relabeling propagated to the reaches, numbering follows the new order
	assert.Equal(t, []int{1, 1, 2}, func() []int {
		o := make([]int, len(s.Reaches))
		for i, r := range s.Reaches {
			o[i] = r.Iseg
		}
		return o
	}())
	assert.Equal(t, []int{1, 2, 3}, reachRnos(s.Reaches))
	assert.Equal(t, []int{2, 3, 0}, outreaches(s))
}

func TestResetSegmentsPropagatesToAllPeriods(t *testing.T) {
	reaches := []Reach{
		{Node: 1, Iseg: 7, Ireach: 1, Rchlen: 10, Strtop: 9},
		{Node: 2, Iseg: 4, Ireach: 1, Rchlen: 10, Strtop: 7},
	}
	segments := []Segment{
		{Per: 0, Nseg: 7, Outseg: 4},
		{Per: 0, Nseg: 4, Outseg: 0},
		{Per: 1, Nseg: 7, Outseg: 4, Flow: 100},
		{Per: 1, Nseg: 4, Outseg: 0},
	}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	for _, per := range []int{0, 1} {
		nseg, _ := segmentRoutingColumns(s.periodGroup(per))
		assert.Equal(t, []int{1, 2}, nseg, "period %d", per)
	}
	// attribute values ride along with the relabeled rows
	assert.Equal(t, 100., s.periodGroup(1)[0].Flow)
}

func TestResetSegmentsPreservesLakes(t *testing.T) {
	reaches := []Reach{
		{Node: 1, Iseg: 9, Ireach: 1, Rchlen: 10, Strtop: 9},
		{Node: 2, Iseg: 2, Ireach: 1, Rchlen: 10, Strtop: 7},
	}
	segments := []Segment{
		{Per: 0, Nseg: 9, Outseg: 2},
		{Per: 0, Nseg: 2, Outseg: -3}, // discharges to a lake
	}
	s, err := New(reaches, segments, nil, Defaults())
	require.NoError(t, err)

	nseg, outseg := segmentRoutingColumns(s.periodGroup(0))
	assert.Equal(t, []int{1, 2}, nseg)
	assert.Equal(t, []int{2, -3}, outseg, "lake ids survive renumbering unchanged")
	assert.Equal(t, 0, s.Reaches[1].Outreach, "lake discharge is an outlet at reach level")
}

func TestRepairOutsegs(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)
	assert.Equal(t, 0, s.RepairOutsegs(), "clean tables need no repair")

	s.Segments[0].Outseg = 99
	n := s.RepairOutsegs()
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, s.Segments[0].Outseg)
}

func TestResetReachesUnknownSegment(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)

	s.Reaches[1].Iseg = 42
	err = s.ResetReaches()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "42", "error names the missing segment")
}

func TestResetReachesRenumbers(t *testing.T) {
	s, err := New(testReachesA(), []Segment{{Per: 0, Nseg: 1, Outseg: 0}}, nil, Defaults())
	require.NoError(t, err)

	s.Reaches[0].Ireach = 4
	s.Reaches[1].Ireach = 7
	s.Reaches[2].Ireach = 9
	require.NoError(t, s.ResetReaches())
	for i, r := range s.Reaches {
		assert.Equal(t, i+1, r.Ireach)
	}
}
