package sfr

import (
	"sort"

	"github.com/maseology/mmaths"
)

// Reach is one discretized unit of the stream network, mapped to a single
// model cell (Node). Iseg/Ireach place the reach within its segment;
// Outreach and Outseg carry the derived routing, where 0 is a network
// outlet and a negative Outseg is a lake. Slope is derived by GetSlopes
// and is never user-authoritative once routing has been set.
type Reach struct {
	Rno      int
	Node     int
	K, I, J  int
	Iseg     int
	Ireach   int
	Rchlen   float64
	Width    float64
	Slope    float64
	Strtop   float64
	Strthick float64
	Strhc1   float64
	Asum     float64
	Outreach int
	Outseg   int
	LineID   int
	Name     string
	Geom     []mmaths.Point // line vertices; feature export only, never used for routing
}

// sortReaches orders the reach table by (iseg, ireach), ties broken by
// original row order.
func sortReaches(rs []Reach) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Iseg != rs[j].Iseg {
			return rs[i].Iseg < rs[j].Iseg
		}
		return rs[i].Ireach < rs[j].Ireach
	})
}

// NewReachTable returns an empty reach table of n rows with sequential
// reach numbering, ready to be filled column-wise.
func NewReachTable(n int) []Reach {
	o := make([]Reach, n)
	for i := range o {
		o[i].Rno = i + 1
	}
	return o
}

func reachRnos(rs []Reach) []int {
	o := make([]int, len(rs))
	for i, r := range rs {
		o[i] = r.Rno
	}
	return o
}
