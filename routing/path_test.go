package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPath(t *testing.T) {
	g := map[int]int{1: 2, 2: 3, 3: 0, 0: 0}

	p, err := FindPath(g, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 0}, p)

	p, err = FindPath(g, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, p)

	p, err = FindPath(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p)
}

func TestFindPathRestartable(t *testing.T) {
	// the walk keeps no state between calls
	g := map[int]int{1: 2, 2: 0, 0: 0}
	p1, err := FindPath(g, 1)
	require.NoError(t, err)
	p2, err := FindPath(g, 1)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestFindPathCycle(t *testing.T) {
	g := map[int]int{1: 2, 2: 3, 3: 1, 0: 0}
	_, err := FindPath(g, 1)
	require.Error(t, err)
	var ce *CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Start)
	assert.Equal(t, 1, ce.At)
	assert.Equal(t, []int{1, 2, 3}, ce.Path)
}

func TestFindPathMissingEntry(t *testing.T) {
	g := map[int]int{1: 5} // 5 has no outgoing entry
	_, err := FindPath(g, 1)
	var re *RoutingError
	require.ErrorAs(t, err, &re)
}
