package sfr

import (
	"fmt"

	"github.com/aleaf/SFR/routing"
)

// RepairOutsegs forces any outseg that is neither a known segment nor a
// lake (negative) to 0, outlet status, on both tables. Always succeeds;
// returns the number of rows corrected so silently bad source data stays
// observable.
func (s *SFRData) RepairOutsegs() int {
	known := make(map[int]bool)
	for _, sg := range s.Segments {
		if sg.Per == 0 {
			known[sg.Nseg] = true
		}
	}
	n := 0
	for i := range s.Segments {
		if o := s.Segments[i].Outseg; o > 0 && !known[o] {
			s.Segments[i].Outseg = 0
			n++
		}
	}
	for i := range s.Reaches {
		if o := s.Reaches[i].Outseg; o > 0 && !known[o] {
			s.Reaches[i].Outseg = 0
			n++
		}
	}
	if n > 0 {
		fmt.Printf("  repaired %d stray outseg values\n", n)
		s.touch()
	}
	return n
}

// ResetSegments renumbers the segments so numbering is dense, starts at
// 1 and only increases downstream, and propagates the relabeling to the
// reaches' iseg/outseg. The routing topology is preserved exactly. The
// relabeling is computed in full before either table is mutated, so a
// failure leaves both tables untouched.
func (s *SFRData) ResetSegments() error {
	nseg, outseg := segmentRoutingColumns(s.periodGroup(0))
	r, err := routing.RenumberSegments(nseg, outseg)
	if err != nil {
		return err
	}
	relabel := func(id int) int {
		if v, ok := r[id]; ok {
			return v
		}
		if id < 0 {
			return id
		}
		return 0
	}
	for i := range s.Segments {
		s.Segments[i].Nseg = relabel(s.Segments[i].Nseg)
		s.Segments[i].Outseg = relabel(s.Segments[i].Outseg)
	}
	for i := range s.Reaches {
		s.Reaches[i].Iseg = relabel(s.Reaches[i].Iseg)
		s.Reaches[i].Outseg = relabel(s.Reaches[i].Outseg)
	}
	sortSegments(s.Segments)
	sortReaches(s.Reaches)
	for i, sg := range s.periodGroup(0) { // numbering must now be 1..N
		if sg.Nseg != i+1 {
			panic("ResetSegments: renumbering failed to produce consecutive nsegs")
		}
	}
	s.touch()
	return nil
}

// ResetReaches renumbers ireach within each segment to a dense 1..k,
// keeping the existing (iseg, ireach) order with ties broken by original
// row order. A reach referencing a segment absent from the period-0
// table is a hard error naming the segment; nothing is mutated on
// failure.
func (s *SFRData) ResetReaches() error {
	known := make(map[int]bool)
	for _, sg := range s.Segments {
		if sg.Per == 0 {
			known[sg.Nseg] = true
		}
	}
	for _, r := range s.Reaches {
		if !known[r.Iseg] {
			return &ValidationError{Reason: fmt.Sprintf("reach %d belongs to segment %d, which is not in the segment table", r.Rno, r.Iseg)}
		}
	}
	sortReaches(s.Reaches)
	cnt := make(map[int]int)
	for i := range s.Reaches {
		cnt[s.Reaches[i].Iseg]++
		s.Reaches[i].Ireach = cnt[s.Reaches[i].Iseg]
	}
	s.touch()
	return nil
}

// SetOutreaches derives reach-level routing from the period-0 segment
// routing and the (iseg, ireach) ordering: an interior reach routes to
// the next reach of its segment; the last reach of a segment routes to
// reach 1 of the destination segment, or to 0 for outlets and lakes.
// Reach numbers are synthesized fresh (sequential in sorted order) if
// the existing rno column is not a valid dense numbering. One O(N) pass
// after the sort.
func (s *SFRData) SetOutreaches() error {
	sortReaches(s.Reaches)
	sortSegments(s.Segments)
	if !ValidRnos(reachRnos(s.Reaches)) {
		for i := range s.Reaches {
			s.Reaches[i].Rno = i + 1
		}
	}
	if err := s.ResetReaches(); err != nil {
		return err
	}
	s.RepairOutsegs()

	outseg := s.SegmentRouting()
	reach1 := make(map[int]int) // segment -> rno of its first reach
	for _, r := range s.Reaches {
		if r.Ireach == 1 {
			reach1[r.Iseg] = r.Rno
		}
	}
	n := len(s.Reaches)
	for i := range s.Reaches {
		if i+1 == n || s.Reaches[i+1].Ireach == 1 { // last reach of its segment
			next := outseg[s.Reaches[i].Iseg]
			if next > 0 {
				r1, ok := reach1[next]
				if !ok {
					return &ValidationError{Reason: fmt.Sprintf("segment %d routes to segment %d, which has no reaches",
						s.Reaches[i].Iseg, next)}
				}
				s.Reaches[i].Outreach = r1
			} else {
				s.Reaches[i].Outreach = 0
			}
		} else {
			s.Reaches[i].Outreach = s.Reaches[i+1].Rno
		}
	}
	s.touch()
	return nil
}
