package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenumberSegments(t *testing.T) {
	// 5 routes to 3, 3 is the outlet: downstream-increasing relabeling
	r, err := RenumberSegments([]int{5, 3}, []int{3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, r[5])
	assert.Equal(t, 2, r[3])
	assert.Equal(t, 0, r[0])
}

func TestRenumberSegmentsMonotone(t *testing.T) {
	ids := []int{9, 2, 7, 4, 1}
	dests := []int{2, 4, 2, 1, 0}
	r, err := RenumberSegments(ids, dests)
	require.NoError(t, err)

	// dense 1..N over the segment ids
	seen := make(map[int]bool)
	for _, id := range ids {
		n := r[id]
		assert.True(t, n >= 1 && n <= len(ids), "id %d -> %d out of range", id, n)
		assert.False(t, seen[n], "new id %d assigned twice", n)
		seen[n] = true
	}
	// numbering increases downstream
	for i, id := range ids {
		if d := dests[i]; d > 0 {
			assert.Less(t, r[id], r[d], "segment %d must be numbered before %d", id, d)
		}
	}
}

func TestRenumberSegmentsIsomorphism(t *testing.T) {
	// relabeled routing is the same graph under the new names
	ids := []int{9, 2, 7}
	dests := []int{2, 0, 2}
	r, err := RenumberSegments(ids, dests)
	require.NoError(t, err)

	relabeled := make(map[int]int, len(ids))
	for i, id := range ids {
		relabeled[r[id]] = r[dests[i]]
	}
	// 9 and 7 both discharge to 2; 2 is the outlet segment
	assert.Equal(t, map[int]int{1: 3, 2: 3, 3: 0}, relabeled)
}

func TestRenumberSegmentsLakesAndStrays(t *testing.T) {
	r, err := RenumberSegments([]int{1, 2, 3}, []int{-12, 0, 99})
	require.NoError(t, err)
	assert.Equal(t, -12, r[-12], "lake ids keep their identity")
	assert.Equal(t, 0, r[99], "stray positive destinations become outlets")
	// every segment is a headwater here; input order decides
	assert.Equal(t, map[int]int{0: 0, -12: -12, 99: 0, 1: 1, 2: 2, 3: 3}, r)
}

func TestRenumberSegmentsStableOrder(t *testing.T) {
	// no ordering constraint between 4 and 6: input order decides
	r, err := RenumberSegments([]int{4, 6, 2}, []int{2, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, r[4])
	assert.Equal(t, 2, r[6])
	assert.Equal(t, 3, r[2])
}

func TestRenumberSegmentsErrors(t *testing.T) {
	var re *RoutingError

	_, err := RenumberSegments([]int{1, 2}, []int{2, 1}) // cycle
	require.ErrorAs(t, err, &re)

	_, err = RenumberSegments([]int{1, 1}, []int{0, 0}) // duplicate id
	require.ErrorAs(t, err, &re)

	_, err = RenumberSegments([]int{0}, []int{0}) // nonpositive id
	require.ErrorAs(t, err, &re)

	_, err = RenumberSegments([]int{1}, []int{0, 0}) // length mismatch
	require.ErrorAs(t, err, &re)
}
