package sfr

import "sort"

// PeriodReach is one per-reach, per-period boundary input row (the
// MODFLOW-6 style), flattened from the per-segment stress-period tables:
// segment inflows and areal terms land on the first reach of the segment.
type PeriodReach struct {
	Per         int
	Rno         int
	Inflow      float64
	Runoff      float64
	Evaporation float64
	Rainfall    float64
}

// PeriodData flattens the per-period segment inputs (flow, runoff, etsw,
// pptsw) to first-reach rows, skipping segments with no nonzero terms in
// a period. Rows are ordered by (per, rno).
func (s *SFRData) PeriodData() []PeriodReach {
	reach1 := make(map[int]int)
	for _, r := range s.Reaches {
		if r.Ireach == 1 {
			reach1[r.Iseg] = r.Rno
		}
	}
	var o []PeriodReach
	for _, sg := range s.Segments {
		if sg.Flow == 0 && sg.Runoff == 0 && sg.Etsw == 0 && sg.Pptsw == 0 {
			continue
		}
		rno, ok := reach1[sg.Nseg]
		if !ok {
			continue
		}
		o = append(o, PeriodReach{
			Per: sg.Per, Rno: rno,
			Inflow: sg.Flow, Runoff: sg.Runoff,
			Evaporation: sg.Etsw, Rainfall: sg.Pptsw,
		})
	}
	sort.Slice(o, func(i, j int) bool {
		if o[i].Per != o[j].Per {
			return o[i].Per < o[j].Per
		}
		return o[i].Rno < o[j].Rno
	})
	return o
}
