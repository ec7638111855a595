package sfr

import "github.com/aleaf/SFR/routing"

// touch advances the table generation, invalidating every derived
// routing graph and path cache. Called by every operation that mutates
// either table. Caches record the generation they were built at and are
// rebuilt lazily on the next read; this replaces the original
// changed-and-inconsistent staleness heuristic with one that can never
// serve stale routing.
func (s *SFRData) touch() { s.gen++ }

// closeSinks adds a self-terminating entry to 0 for every destination
// (outlets, lakes, anything referenced but never a source) so the graph
// is total and every walk ends at 0.
func closeSinks(g map[int]int) {
	for _, d := range g {
		if _, ok := g[d]; !ok {
			g[d] = 0
		}
	}
	g[0] = 0
}

// SegmentRouting returns the period-0 segment routing graph {nseg:
// outseg} with all sinks closed to 0. The map is cached; treat it as
// read-only.
func (s *SFRData) SegmentRouting() map[int]int {
	if s.segRouting == nil || s.segGen != s.gen {
		g := make(map[int]int)
		for _, sg := range s.Segments {
			if sg.Per == 0 {
				g[sg.Nseg] = sg.Outseg
			}
		}
		closeSinks(g)
		s.segRouting = g
		s.segGen = s.gen
	}
	return s.segRouting
}

// ReachRouting returns the reach routing graph {rno: outreach} with all
// sinks closed to 0, re-deriving outreaches from the segment routing
// first. The map is cached; treat it as read-only.
func (s *SFRData) ReachRouting() (map[int]int, error) {
	if s.rnoRouting == nil || s.rnoGen != s.gen {
		if err := s.SetOutreaches(); err != nil {
			return nil, err
		}
		g := make(map[int]int, len(s.Reaches))
		for _, r := range s.Reaches {
			g[r.Rno] = r.Outreach
		}
		closeSinks(g)
		s.rnoRouting = g
		s.rnoGen = s.gen
	}
	return s.rnoRouting, nil
}

// Paths returns, for every segment (and sink), its ordered routing
// sequence down to the outlet, 0 inclusive.
func (s *SFRData) Paths() (map[int][]int, error) {
	if s.paths == nil || s.pathGen != s.gen {
		g := s.SegmentRouting()
		p := make(map[int][]int, len(g))
		for id := range g {
			pth, err := routing.FindPath(g, id)
			if err != nil {
				return nil, err
			}
			p[id] = pth
		}
		s.paths = p
		s.pathGen = s.gen
	}
	return s.paths, nil
}

// ReachPaths returns, for every reach (and sink), its ordered routing
// sequence down to the outlet, 0 inclusive.
func (s *SFRData) ReachPaths() (map[int][]int, error) {
	if s.reachPaths == nil || s.rpathGen != s.gen {
		g, err := s.ReachRouting()
		if err != nil {
			return nil, err
		}
		p := make(map[int][]int, len(g))
		for id := range g {
			pth, err := routing.FindPath(g, id)
			if err != nil {
				return nil, err
			}
			p[id] = pth
		}
		s.reachPaths = p
		s.rpathGen = s.gen
	}
	return s.reachPaths, nil
}
