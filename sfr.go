// Package sfr builds and manipulates input for the streamflow-routing
// (SFR) package of a groundwater-flow model. A stream network is held as
// two tables: reaches (one per model cell) and segments (groupings of
// consecutively numbered reaches, attributes varying by stress period).
// The package validates and repairs segment numbering, derives reach
// routing and streambed slopes, extracts boundary-condition subsets, and
// writes model-ready package files and table/feature exports.
package sfr

import (
	"fmt"
	"sort"

	"github.com/maseology/goHydro/grid"
)

// default slope policy applied at construction; see GetSlopes
const (
	defaultSlope = 0.001
	minimumSlope = 0.0001
	maximumSlope = 1.
)

// Config enumerates every recognized global default and unit setting.
// Start from Defaults and override fields; New validates the record as
// given and honors explicit zero values (Icalc 0 means specified stage,
// EnforceIncreasingNsegs false disables the ordering check), so a
// zero-valued Config is rejected rather than silently filled in.
type Config struct {
	Icalc                  int     // default segment icalc
	Roughch                float64 // default Manning's roughness, main channel
	Strthick               float64 // default streambed thickness
	Strhc1                 float64 // default streambed hydraulic conductivity
	LengthUnits            string  // "meters", "feet", "centimeters" or "undefined"
	TimeUnits              string  // "s", "m", "h", "d" or "y"
	EnforceIncreasingNsegs bool
	UTMZone                int // >0 adds lat/lon fields to point exports
	GageStartingUnit       int // first file unit number for gage output
	PackageName            string
}

// Defaults returns the stock configuration.
func Defaults() Config {
	return Config{
		Icalc:                  1,
		Roughch:                0.037,
		Strthick:               1.,
		Strhc1:                 1.,
		LengthUnits:            "undefined",
		TimeUnits:              "d",
		EnforceIncreasingNsegs: true,
		GageStartingUnit:       228,
		PackageName:            "model",
	}
}

func (c *Config) check() error {
	if _, ok := lenuniValues[c.LengthUnits]; !ok {
		return &ValidationError{Reason: fmt.Sprintf("unrecognized length units %q; start from Defaults", c.LengthUnits)}
	}
	if _, ok := itmuniValues[c.TimeUnits]; !ok {
		return &ValidationError{Reason: fmt.Sprintf("unrecognized time units %q; start from Defaults", c.TimeUnits)}
	}
	if c.Icalc < 0 || c.Icalc > 4 {
		return &ValidationError{Reason: fmt.Sprintf("icalc %d outside 0-4", c.Icalc)}
	}
	if c.Strthick <= 0 {
		return &ValidationError{Reason: "default streambed thickness must be positive"}
	}
	if c.Strhc1 < 0 || c.Roughch < 0 {
		return &ValidationError{Reason: "negative streambed conductivity or roughness default"}
	}
	if c.GageStartingUnit <= 0 {
		return &ValidationError{Reason: "gage starting unit must be positive"}
	}
	if c.PackageName == "" {
		return &ValidationError{Reason: "empty package name"}
	}
	return nil
}

// SFRData owns the reach and segment tables of one SFR dataset and the
// routing state derived from them. All mutation is in-place and
// single-threaded; derived graphs and paths are cached per instance and
// rebuilt whenever a table mutates.
type SFRData struct {
	Reaches  []Reach
	Segments []Segment // sorted by (per, nseg); period 0 governs routing
	GD       *grid.Definition
	Cfg      Config
	Obs      []Observation

	// derived-state caches, keyed to gen; see touch
	gen                    uint64
	segGen, rnoGen         uint64
	pathGen, rpathGen      uint64
	segRouting, rnoRouting map[int]int
	paths, reachPaths      map[int][]int
}

// New assembles an SFR dataset from a reach table and an optional segment
// table, applies configured defaults, validates and (where allowed)
// repairs numbering, and derives reach routing and slopes. The grid may
// be nil; it is needed only for feature exports and DEM sampling.
func New(reaches []Reach, segments []Segment, gd *grid.Definition, cfg Config) (*SFRData, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if len(reaches) == 0 {
		return nil, &ValidationError{Reason: "empty reach table"}
	}

	s := &SFRData{
		Reaches:  append([]Reach{}, reaches...),
		Segments: append([]Segment{}, segments...),
		GD:       gd,
		Cfg:      cfg,
	}
	if len(s.Segments) == 0 {
		if err := s.synthesizeSegments(); err != nil {
			return nil, err
		}
	}
	s.applySegmentDefaults()
	sortSegments(s.Segments)

	// invariant: every stress period carries the identical nseg set
	if err := s.checkPeriodSets(); err != nil {
		return nil, err
	}
	if err := s.propagateOutsegs(); err != nil {
		return nil, err
	}
	s.distributeSegmentProperties()
	s.applyReachDefaults() // after distribution, so unset columns are still recognizable

	sd0 := s.periodGroup(0)
	nseg, outseg := segmentRoutingColumns(sd0)
	if !ValidNsegs(nseg, outseg, cfg.EnforceIncreasingNsegs) {
		if err := s.ResetSegments(); err != nil {
			return nil, err
		}
	}
	if err := s.SetOutreaches(); err != nil {
		return nil, err
	}
	if err := s.GetSlopes(defaultSlope, minimumSlope, maximumSlope); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SFRData) applyReachDefaults() {
	for i := range s.Reaches {
		if s.Reaches[i].Strthick == 0 {
			s.Reaches[i].Strthick = s.Cfg.Strthick
		}
		if s.Reaches[i].Strhc1 == 0 {
			s.Reaches[i].Strhc1 = s.Cfg.Strhc1
		}
	}
}

func (s *SFRData) applySegmentDefaults() {
	for i := range s.Segments {
		if s.Segments[i].Icalc == 0 {
			s.Segments[i].Icalc = s.Cfg.Icalc
		}
		if s.Segments[i].Roughch == 0 {
			s.Segments[i].Roughch = s.Cfg.Roughch
		}
	}
}

// synthesizeSegments builds a segment table when none was supplied:
// from the reaches' iseg/outseg columns when those carry a usable
// numbering, otherwise one segment per reach from rno/outreach
// (the MODFLOW-6 style, where there is no segment concept).
func (s *SFRData) synthesizeSegments() error {
	isegs := make([]int, 0)
	routingBySeg := make(map[int]int)
	anyOutseg := false
	for _, r := range s.Reaches {
		if _, ok := routingBySeg[r.Iseg]; !ok && r.Iseg > 0 {
			isegs = append(isegs, r.Iseg)
		}
		routingBySeg[r.Iseg] = r.Outseg
		if r.Outseg != 0 {
			anyOutseg = true
		}
	}
	if ValidRnos(isegs) && anyOutseg {
		sortReaches(s.Reaches)
		ss := make([]Segment, len(isegs))
		for i := range ss {
			ns := i + 1
			ss[i] = Segment{Per: 0, Nseg: ns, Outseg: routingBySeg[ns]}
		}
		s.Segments = ss
		return nil
	}
	// one reach per segment: need a valid rno numbering with routing
	anyOutreach := false
	for _, r := range s.Reaches {
		if r.Outreach != 0 {
			anyOutreach = true
			break
		}
	}
	if !ValidRnos(reachRnos(s.Reaches)) || !anyOutreach {
		return &ValidationError{Reason: "no segment table supplied: reaches must carry segment routing " +
			"in iseg/outseg, or unique consecutive rno values starting at 1 with outreach connections"}
	}
	ss := make([]Segment, len(s.Reaches))
	for i, r := range s.Reaches {
		ss[i] = Segment{Per: 0, Nseg: r.Rno, Outseg: r.Outreach}
		s.Reaches[i].Iseg = r.Rno
		s.Reaches[i].Ireach = 1
	}
	s.Segments = ss
	return nil
}

func (s *SFRData) checkPeriodSets() error {
	sets := periodNsegSets(s.Segments)
	ref, ok := sets[0]
	if !ok {
		return &ValidationError{Reason: "segment table has no period-0 entries; routing is undefined"}
	}
	for per, set := range sets {
		if len(set) != len(ref) {
			return &ValidationError{Reason: fmt.Sprintf("period %d defines %d segments; period 0 defines %d", per, len(set), len(ref))}
		}
		for ns := range set {
			if !ref[ns] {
				return &ValidationError{Reason: fmt.Sprintf("segment %d appears in period %d but not in period 0", ns, per)}
			}
		}
	}
	return nil
}

// propagateOutsegs copies each reach's owning-segment routing destination
// onto the reach row, keeping the duplicated column consistent with the
// segment table.
func (s *SFRData) propagateOutsegs() error {
	dest := make(map[int]int)
	for _, sg := range s.periodGroup(0) {
		dest[sg.Nseg] = sg.Outseg
	}
	for i := range s.Reaches {
		d, ok := dest[s.Reaches[i].Iseg]
		if !ok {
			return &ValidationError{Reason: fmt.Sprintf("reach %d references segment %d not present in the segment table",
				s.Reaches[i].Rno, s.Reaches[i].Iseg)}
		}
		s.Reaches[i].Outseg = d
	}
	s.touch()
	return nil
}

// periodGroup returns the segment rows for one stress period, in table
// order.
func (s *SFRData) periodGroup(per int) []Segment {
	var o []Segment
	for _, sg := range s.Segments {
		if sg.Per == per {
			o = append(o, sg)
		}
	}
	return o
}

// Periods returns the sorted stress-period indices present in the
// segment table.
func (s *SFRData) Periods() []int {
	seen := make(map[int]bool)
	var o []int
	for _, sg := range s.Segments {
		if !seen[sg.Per] {
			seen[sg.Per] = true
			o = append(o, sg.Per)
		}
	}
	sort.Ints(o)
	return o
}

func segmentRoutingColumns(ss []Segment) (nseg, outseg []int) {
	nseg = make([]int, len(ss))
	outseg = make([]int, len(ss))
	for i, sg := range ss {
		nseg[i] = sg.Nseg
		outseg[i] = sg.Outseg
	}
	return
}
