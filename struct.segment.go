package sfr

import "sort"

// Segment is a MODFLOW-2005-style grouping of consecutively numbered
// reaches with its own routing. Attribute values may vary by stress
// period (Per); routing (Outseg) is taken from period 0 and held
// time-invariant. Outseg 0 is a network outlet, negative is a lake.
type Segment struct {
	Per     int
	Nseg    int
	Icalc   int
	Outseg  int
	Iupseg  int
	Iprior  int
	Nstrpts int

	Flow    float64
	Runoff  float64
	Etsw    float64
	Pptsw   float64
	Roughch float64
	Roughbk float64

	// upstream (1) and downstream (2) segment-end properties
	Hcond1, Thickm1, Elevup, Width1, Depth1 float64
	Hcond2, Thickm2, Elevdn, Width2, Depth2 float64
}

// sortSegments orders the segment table by (per, nseg).
func sortSegments(ss []Segment) {
	sort.SliceStable(ss, func(i, j int) bool {
		if ss[i].Per != ss[j].Per {
			return ss[i].Per < ss[j].Per
		}
		return ss[i].Nseg < ss[j].Nseg
	})
}

// NewSegmentTable returns an empty period-0 segment table of n rows with
// sequential numbering.
func NewSegmentTable(n int) []Segment {
	o := make([]Segment, n)
	for i := range o {
		o[i].Per = 0
		o[i].Nseg = i + 1
	}
	return o
}

// periodNsegSets returns the set of nseg values held by each stress
// period. Every period must carry the identical set; only attribute
// values may vary.
func periodNsegSets(ss []Segment) map[int]map[int]bool {
	o := make(map[int]map[int]bool)
	for _, s := range ss {
		if _, ok := o[s.Per]; !ok {
			o[s.Per] = make(map[int]bool)
		}
		o[s.Per][s.Nseg] = true
	}
	return o
}
