package sfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRnos(t *testing.T) {
	assert.True(t, ValidRnos([]int{1, 2, 3}))
	assert.True(t, ValidRnos([]int{3, 1, 2}), "order is irrelevant")
	assert.True(t, ValidRnos(nil))
	assert.False(t, ValidRnos([]int{1, 2, 2}), "duplicate")
	assert.False(t, ValidRnos([]int{1, 2, 4}), "gap")
	assert.False(t, ValidRnos([]int{0, 1, 2}), "must start at 1")
	assert.False(t, ValidRnos([]int{-1, 1, 2}))
}

func TestValidNsegs(t *testing.T) {
	assert.True(t, ValidNsegs([]int{1, 2}, []int{2, 0}, true))
	assert.True(t, ValidNsegs([]int{1, 2}, []int{-3, 0}, true), "lakes are exempt from the increasing rule")
	assert.False(t, ValidNsegs([]int{1, 2}, []int{0, 1}, true), "outseg must exceed nseg")
	assert.True(t, ValidNsegs([]int{1, 2}, []int{0, 1}, false), "unless unenforced")
	assert.False(t, ValidNsegs([]int{1, 3}, []int{3, 0}, false), "numbering must be dense regardless")
	assert.False(t, ValidNsegs([]int{2, 2}, []int{0, 0}, false))
}

func TestRoutingConsistent(t *testing.T) {
	nseg := []int{1, 2}
	outseg := []int{2, 0}
	iseg := []int{1, 1, 2}
	ireach := []int{1, 2, 1}
	rno := []int{1, 2, 3}

	assert.True(t, RoutingConsistent(nseg, outseg, iseg, ireach, rno, []int{2, 3, 0}))
	assert.False(t, RoutingConsistent(nseg, outseg, iseg, ireach, rno, []int{2, 0, 0}),
		"last reach of segment 1 must route to reach 1 of segment 2")
	assert.False(t, RoutingConsistent(nseg, outseg, iseg, ireach, rno, []int{2, 3, 3}),
		"outlet segment's last reach must route to 0")
}
