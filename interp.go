package sfr

import "github.com/maseology/mmaths"

// InterpolateToReaches interpolates segment-end values (e.g. hcond1 and
// hcond2) to each reach, positioned at the reach midpoint by cumulative
// length along the segment. up and dn select the upstream- and
// downstream-end variables from a segment row; per selects the stress
// period. Returns values keyed by reach number; the rno column must be
// a valid numbering.
func (s *SFRData) InterpolateToReaches(up, dn func(Segment) float64, per int) map[int]float64 {
	vals := s.interpolateToSorted(up, dn, per)
	o := make(map[int]float64, len(vals))
	for i, v := range vals {
		o[s.Reaches[i].Rno] = v
	}
	return o
}

// interpolateToSorted is the positional form: one value per row of the
// (iseg, ireach) sorted reach table, so it is usable before reach
// numbers have been assigned.
func (s *SFRData) interpolateToSorted(up, dn func(Segment) float64, per int) []float64 {
	seg := make(map[int]Segment)
	for _, sg := range s.periodGroup(per) {
		seg[sg.Nseg] = sg
	}
	sortReaches(s.Reaches)

	o := make([]float64, len(s.Reaches))
	i := 0
	for i < len(s.Reaches) {
		j := i // rows [i, j) share a segment
		tot := 0.
		for j < len(s.Reaches) && s.Reaches[j].Iseg == s.Reaches[i].Iseg {
			tot += s.Reaches[j].Rchlen
			j++
		}
		sg, ok := seg[s.Reaches[i].Iseg]
		cum := 0.
		for k := i; k < j; k++ {
			r := s.Reaches[k]
			f := 0.5
			if tot > 0 {
				f = (cum + r.Rchlen/2.) / tot
			}
			if ok {
				o[k] = mmaths.LinearTransform(up(sg), dn(sg), f)
			}
			cum += r.Rchlen
		}
		i = j
	}
	return o
}

// distributeSegmentProperties fills reach properties from segment-end
// values where the reach column is entirely unset (the MODFLOW-2005
// isfropt=0 style, where properties live on segments).
func (s *SFRData) distributeSegmentProperties() {
	type prop struct {
		get    func(Reach) float64
		set    func(*Reach, float64)
		up, dn func(Segment) float64
	}
	props := []prop{
		{func(r Reach) float64 { return r.Strtop }, func(r *Reach, v float64) { r.Strtop = v },
			func(g Segment) float64 { return g.Elevup }, func(g Segment) float64 { return g.Elevdn }},
		{func(r Reach) float64 { return r.Strthick }, func(r *Reach, v float64) { r.Strthick = v },
			func(g Segment) float64 { return g.Thickm1 }, func(g Segment) float64 { return g.Thickm2 }},
		{func(r Reach) float64 { return r.Strhc1 }, func(r *Reach, v float64) { r.Strhc1 = v },
			func(g Segment) float64 { return g.Hcond1 }, func(g Segment) float64 { return g.Hcond2 }},
		{func(r Reach) float64 { return r.Width }, func(r *Reach, v float64) { r.Width = v },
			func(g Segment) float64 { return g.Width1 }, func(g Segment) float64 { return g.Width2 }},
	}
	sd0 := s.periodGroup(0)
	changed := false
	for _, p := range props {
		rsum := 0.
		for _, r := range s.Reaches {
			rsum += p.get(r)
		}
		ssum := 0.
		for _, sg := range sd0 {
			ssum += p.up(sg) + p.dn(sg)
		}
		if rsum == 0 && ssum != 0 {
			// positional: runs at construction, before rnos exist
			vals := s.interpolateToSorted(p.up, p.dn, 0)
			for i := range s.Reaches {
				p.set(&s.Reaches[i], vals[i])
			}
			changed = true
		}
	}
	if changed {
		s.touch()
	}
}
