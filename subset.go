package sfr

import (
	"fmt"
	"sort"

	"github.com/aleaf/SFR/routing"
)

// RivSelector names the reaches to extract into a RIV-type boundary
// dataset. The selectors are combined with AND; a zero selector takes
// the whole network (in which case nothing is dropped from the source,
// regardless of DropInSFR).
type RivSelector struct {
	Segments  []int // reaches owned by these segments
	Rnos      []int // these reach numbers
	LineIDs   []int // reaches from these source hydrography lines
	DropInSFR bool  // remove the extracted reaches from this dataset
}

func (sel *RivSelector) empty() bool {
	return len(sel.Segments) == 0 && len(sel.Rnos) == 0 && len(sel.LineIDs) == 0
}

// ToRiv converts the selected reaches, and everything downstream of
// them, into an independent boundary-condition dataset: the downstream
// closure is consolidated to one entry per model cell (conductances
// summed, the dominant reach keeping the other attributes) and
// renumbered independently. With DropInSFR the extracted reaches are
// removed from this dataset, dangling routing re-terminated to 0, fully
// consumed segments dropped, and the remainder renumbered and re-derived.
func (s *SFRData) ToRiv(sel RivSelector) (*RivData, error) {
	drop := sel.DropInSFR
	if sel.empty() {
		drop = false
	}
	seeds := s.selectReaches(sel)
	if len(seeds) == 0 {
		return nil, &ValidationError{Reason: "selector matched no reaches"}
	}

	rp, err := s.ReachPaths()
	if err != nil {
		return nil, err
	}
	keep := make(map[int]bool)
	for _, rno := range seeds {
		if keep[rno] {
			continue // already swept by an upstream seed
		}
		for _, d := range rp[rno] {
			if d > 0 {
				keep[d] = true
			}
		}
	}

	var sub []Reach
	for _, r := range s.Reaches {
		if keep[r.Rno] {
			sub = append(sub, r)
		}
	}
	rows := consolidateReachConductances(sub)

	// routing within the extract: re-terminate edges that left it during
	// consolidation, then renumber independently
	inrows := make(map[int]bool, len(rows))
	for _, rr := range rows {
		inrows[rr.rno] = true
	}
	rnos := make([]int, len(rows))
	outs := make([]int, len(rows))
	for i, rr := range rows {
		rnos[i] = rr.rno
		if inrows[rr.out] {
			outs[i] = rr.out
		} else {
			outs[i] = 0
		}
	}
	renum, err := routing.RenumberSegments(rnos, outs)
	if err != nil {
		return nil, fmt.Errorf("ToRiv: %w", err)
	}

	depths := s.rivDepths()
	riv := &RivData{GD: s.GD, PackageName: s.Cfg.PackageName}
	for i, rr := range rows {
		r := rr.src
		stage := r.Strtop
		if d, ok := depths[r.Rno]; ok {
			stage += d
		}
		riv.Reaches = append(riv.Reaches, RivReach{
			Per: 0, Rno: renum[rr.rno], Node: r.Node, K: r.K, I: r.I, J: r.J,
			Cond: rr.cond, Stage: stage, Rbot: r.Strtop - r.Strthick,
			Outreach: renum[outs[i]], LineID: r.LineID, Name: r.Name, Geom: r.Geom,
		})
	}
	sort.Slice(riv.Reaches, func(i, j int) bool { return riv.Reaches[i].Rno < riv.Reaches[j].Rno })

	if drop {
		if err := s.dropReaches(keep); err != nil {
			return nil, err
		}
	}
	return riv, nil
}

func (s *SFRData) selectReaches(sel RivSelector) []int {
	inSeg := intSet(sel.Segments)
	inRno := intSet(sel.Rnos)
	inLine := intSet(sel.LineIDs)
	var o []int
	for _, r := range s.Reaches {
		if len(sel.Segments) > 0 && !inSeg[r.Iseg] {
			continue
		}
		if len(sel.Rnos) > 0 && !inRno[r.Rno] {
			continue
		}
		if len(sel.LineIDs) > 0 && !inLine[r.LineID] {
			continue
		}
		o = append(o, r.Rno)
	}
	return o
}

func intSet(vv []int) map[int]bool {
	m := make(map[int]bool, len(vv))
	for _, v := range vv {
		m[v] = true
	}
	return m
}

type consolidated struct {
	rno  int // dominant reach
	out  int
	cond float64 // summed over the cell
	src  Reach
}

// consolidateReachConductances reduces the rows to one per model cell:
// conductance (strhc1*width*rchlen/strthick) is summed across co-located
// reaches and the reach with the largest individual conductance keeps
// the remaining attributes; equal conductances fall to the lowest rno.
func consolidateReachConductances(rs []Reach) []consolidated {
	cond := func(r Reach) float64 {
		if r.Strthick <= 0 {
			return 0
		}
		return r.Strhc1 * r.Width * r.Rchlen / r.Strthick
	}
	byNode := make(map[int]*consolidated)
	var nodes []int
	for _, r := range rs {
		c := cond(r)
		e, ok := byNode[r.Node]
		if !ok {
			byNode[r.Node] = &consolidated{rno: r.Rno, out: r.Outreach, cond: c, src: r}
			nodes = append(nodes, r.Node)
			continue
		}
		e.cond += c
		dominant := cond(e.src)
		if c > dominant || (c == dominant && r.Rno < e.rno) {
			e.rno, e.out, e.src = r.Rno, r.Outreach, r
		}
	}
	sort.Ints(nodes)
	o := make([]consolidated, len(nodes))
	for i, n := range nodes {
		o[i] = *byNode[n]
	}
	return o
}

// rivDepths returns interpolated stream depths by reach number when any
// segment specifies one, using the stress period carrying the most depth
// entries; otherwise nil (stage falls back to the streambed top).
func (s *SFRData) rivDepths() map[int]float64 {
	best, nbest := -1, 0
	for _, per := range s.Periods() {
		n := 0
		for _, sg := range s.periodGroup(per) {
			if sg.Depth1 > 0 {
				n++
			}
		}
		if n > nbest {
			best, nbest = per, n
		}
	}
	if best < 0 {
		return nil
	}
	return s.InterpolateToReaches(
		func(g Segment) float64 { return g.Depth1 },
		func(g Segment) float64 { return g.Depth2 }, best)
}

// dropReaches removes every reach sharing a model cell with the
// extracted set, re-terminates dangling routing to 0, drops segments
// whose reaches were all consumed, and rebuilds numbering and routing on
// the remainder.
func (s *SFRData) dropReaches(extracted map[int]bool) error {
	nodes := make(map[int]bool)
	for _, r := range s.Reaches {
		if extracted[r.Rno] {
			nodes[r.Node] = true
		}
	}
	var kept []Reach
	for _, r := range s.Reaches {
		if !nodes[r.Node] {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return &ValidationError{Reason: "conversion consumed every reach; nothing left to renumber"}
	}
	s.Reaches = kept

	keptRno := make(map[int]bool, len(kept))
	keptSeg := make(map[int]bool)
	for _, r := range s.Reaches {
		keptRno[r.Rno] = true
		keptSeg[r.Iseg] = true
	}
	for i := range s.Reaches {
		if o := s.Reaches[i].Outreach; o > 0 && !keptRno[o] {
			s.Reaches[i].Outreach = 0
		}
		if o := s.Reaches[i].Outseg; o > 0 && !keptSeg[o] {
			s.Reaches[i].Outseg = 0
		}
	}
	var segs []Segment
	for _, sg := range s.Segments {
		if keptSeg[sg.Nseg] {
			if sg.Outseg > 0 && !keptSeg[sg.Outseg] {
				sg.Outseg = 0
			}
			segs = append(segs, sg)
		}
	}
	s.Segments = segs
	s.touch()

	if err := s.ResetReaches(); err != nil {
		return err
	}
	if err := s.ResetSegments(); err != nil {
		return err
	}
	return s.SetOutreaches()
}
