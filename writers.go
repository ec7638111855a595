package sfr

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
)

// WriteTables writes the reach, segment and period tables as CSV files
// named <basename>_reach_data.csv, <basename>_segment_data.csv and
// <basename>_period_data.csv (the latter only when any period inputs are
// set).
func (s *SFRData) WriteTables(basename string) error {
	rw := mmio.NewCSVwriter(basename + "_reach_data.csv")
	if err := rw.WriteHead("rno,node,k,i,j,iseg,ireach,rchlen,width,slope,strtop,strthick,strhc1,asum,outreach,outseg,line_id"); err != nil {
		return fmt.Errorf("WriteTables: %w", err)
	}
	for _, r := range s.Reaches {
		rw.WriteLine(r.Rno, r.Node, r.K, r.I, r.J, r.Iseg, r.Ireach, r.Rchlen, r.Width,
			r.Slope, r.Strtop, r.Strthick, r.Strhc1, r.Asum, r.Outreach, r.Outseg, r.LineID)
	}
	rw.Close()

	sw := mmio.NewCSVwriter(basename + "_segment_data.csv")
	if err := sw.WriteHead("per,nseg,icalc,outseg,iupseg,iprior,nstrpts,flow,runoff,etsw,pptsw,roughch,roughbk," +
		"hcond1,thickm1,elevup,width1,depth1,hcond2,thickm2,elevdn,width2,depth2"); err != nil {
		return fmt.Errorf("WriteTables: %w", err)
	}
	for _, g := range s.Segments {
		sw.WriteLine(g.Per, g.Nseg, g.Icalc, g.Outseg, g.Iupseg, g.Iprior, g.Nstrpts,
			g.Flow, g.Runoff, g.Etsw, g.Pptsw, g.Roughch, g.Roughbk,
			g.Hcond1, g.Thickm1, g.Elevup, g.Width1, g.Depth1,
			g.Hcond2, g.Thickm2, g.Elevdn, g.Width2, g.Depth2)
	}
	sw.Close()

	if pd := s.PeriodData(); len(pd) > 0 {
		pw := mmio.NewCSVwriter(basename + "_period_data.csv")
		if err := pw.WriteHead("per,rno,inflow,runoff,evaporation,rainfall"); err != nil {
			return fmt.Errorf("WriteTables: %w", err)
		}
		for _, p := range pd {
			pw.WriteLine(p.Per, p.Rno, p.Inflow, p.Runoff, p.Evaporation, p.Rainfall)
		}
		pw.Close()
	}
	return nil
}

// SaveGob writes the dataset to fp. Derived routing caches are not
// persisted; they rebuild on demand.
func (s *SFRData) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("SFRData.SaveGob: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("SFRData.SaveGob: %w", err)
	}
	return nil
}

// LoadGobSFRData reads a dataset written by SaveGob.
func LoadGobSFRData(fp string) (*SFRData, error) {
	var s SFRData
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// WritePackage writes MODFLOW-2005 SFR2 package input: reach records in
// isfropt=1 form (streambed properties on the reaches), then per-period
// segment records.
func (s *SFRData) WritePackage(fp string) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WritePackage: %w", err)
	}
	defer tw.Close()
	sortReaches(s.Reaches)
	sortSegments(s.Segments)
	sd0 := s.periodGroup(0)

	tw.WriteLine(fmt.Sprintf("# SFR2 package: %s", s.Cfg.PackageName))
	tw.WriteLine(fmt.Sprintf("# length units: %s, time units: %s", s.Cfg.LengthUnits, s.Cfg.TimeUnits))
	// NSTRM NSS NSFRPAR NPARSEG CONST DLEAK ISTCB1 ISTCB2 ISFROPT
	tw.WriteLine(fmt.Sprintf("%d %d %d %d %g %g %d %d %d",
		-len(s.Reaches), len(sd0), 0, 0, s.Const(), 0.0001, 0, 0, 1))
	for _, r := range s.Reaches {
		// KRCH IRCH JRCH ISEG IREACH RCHLEN STRTOP SLOPE STRTHICK STRHC1
		tw.WriteLine(fmt.Sprintf("%d %d %d %d %d %g %g %g %g %g",
			r.K+1, r.I+1, r.J+1, r.Iseg, r.Ireach, r.Rchlen, r.Strtop, r.Slope, r.Strthick, r.Strhc1))
	}
	for _, per := range s.Periods() {
		sd := s.periodGroup(per)
		tw.WriteLine(fmt.Sprintf("%d %d %d", len(sd), 0, 0)) // ITMP IRDFLG IPTFLG
		for _, g := range sd {
			// NSEG ICALC OUTSEG IUPSEG FLOW RUNOFF ETSW PPTSW ROUGHCH
			tw.WriteLine(fmt.Sprintf("%d %d %d %d %g %g %g %g %g",
				g.Nseg, g.Icalc, g.Outseg, g.Iupseg, g.Flow, g.Runoff, g.Etsw, g.Pptsw, g.Roughch))
			tw.WriteLine(fmt.Sprintf("%g", g.Width1))
			tw.WriteLine(fmt.Sprintf("%g", g.Width2))
		}
	}
	return nil
}

// FromTables builds a dataset from reach and (optionally) segment CSV
// tables written in the WriteTables column layout; segFP may be "".
func FromTables(reachFP, segFP string, cfg Config) (*SFRData, error) {
	reaches, err := readReachCSV(reachFP)
	if err != nil {
		return nil, err
	}
	var segments []Segment
	if segFP != "" {
		if segments, err = readSegmentCSV(segFP); err != nil {
			return nil, err
		}
	}
	return New(reaches, segments, nil, cfg)
}

func readReachCSV(fp string) ([]Reach, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("readReachCSV: file %s does not exist", fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("readReachCSV: %w", err)
	}
	defer f.Close()

	// column order per WriteTables; the header line is consumed by the reader
	var out []Reach
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		g := func(i int) float64 { return fieldFloat(rec, i) }
		out = append(out, Reach{
			Rno: int(g(0)), Node: int(g(1)),
			K: int(g(2)), I: int(g(3)), J: int(g(4)),
			Iseg: int(g(5)), Ireach: int(g(6)),
			Rchlen: g(7), Width: g(8), Slope: g(9),
			Strtop: g(10), Strthick: g(11), Strhc1: g(12),
			Asum: g(13), Outreach: int(g(14)), Outseg: int(g(15)),
			LineID: int(g(16)),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("readReachCSV: no rows in %s", fp)
	}
	return out, nil
}

func readSegmentCSV(fp string) ([]Segment, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("readSegmentCSV: file %s does not exist", fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("readSegmentCSV: %w", err)
	}
	defer f.Close()

	var out []Segment
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		g := func(i int) float64 { return fieldFloat(rec, i) }
		out = append(out, Segment{
			Per: int(g(0)), Nseg: int(g(1)), Icalc: int(g(2)),
			Outseg: int(g(3)), Iupseg: int(g(4)), Iprior: int(g(5)),
			Nstrpts: int(g(6)),
			Flow:    g(7), Runoff: g(8), Etsw: g(9), Pptsw: g(10),
			Roughch: g(11), Roughbk: g(12),
			Hcond1: g(13), Thickm1: g(14), Elevup: g(15),
			Width1: g(16), Depth1: g(17),
			Hcond2: g(18), Thickm2: g(19), Elevdn: g(20),
			Width2: g(21), Depth2: g(22),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("readSegmentCSV: no rows in %s", fp)
	}
	return out, nil
}

func fieldFloat(rec []string, i int) float64 {
	if i >= len(rec) || rec[i] == "" {
		return 0.
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return 0.
	}
	return v
}

// Checkandprint summarizes the dataset to the console: table sizes,
// numbering and routing status, outlets, and the proportion of reaches
// carried by the largest segments.
func (s *SFRData) Checkandprint() {
	sd0 := s.periodGroup(0)
	fmt.Printf(" %d reaches, %d segments, %d stress periods\n", len(s.Reaches), len(sd0), len(s.Periods()))

	nseg, outseg := segmentRoutingColumns(sd0)
	fmt.Printf("  consecutive reach numbering: %v\n", ValidRnos(reachRnos(s.Reaches)))
	fmt.Printf("  valid segment numbering: %v\n", ValidNsegs(nseg, outseg, s.Cfg.EnforceIncreasingNsegs))

	var rno, outreach, iseg, ireach []int
	for _, r := range s.Reaches {
		rno = append(rno, r.Rno)
		outreach = append(outreach, r.Outreach)
		iseg = append(iseg, r.Iseg)
		ireach = append(ireach, r.Ireach)
	}
	fmt.Printf("  reach routing consistent with segments: %v\n", RoutingConsistent(nseg, outseg, iseg, ireach, rno, outreach))

	nout := 0
	for _, o := range outreach {
		if o == 0 {
			nout++
		}
	}
	fmt.Printf("  %d outlet reach(es)\n", nout)

	mSeg := make(map[int]int, len(sd0))
	for _, r := range s.Reaches {
		mSeg[r.Iseg]++
	}
	k, v := mmaths.SortMapInt(mSeg, false)
	for i := len(k) - 1; i >= 0 && i >= len(k)-5; i-- {
		fmt.Printf("   segment %d: %d reaches (%.1f%%)\n", k[i], v[i], 100.*float64(v[i])/float64(len(s.Reaches)))
	}
}
