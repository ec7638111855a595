package sfr

import (
	"github.com/gosuri/uiprogress"
	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

const demNoData = -9999.

// ElevationSource yields one elevation per model cell id. Value reports
// false where the source holds no data for the cell. Implementations
// wrap whatever raster service is available; DEMSource adapts a goHydro
// grid raster.
type ElevationSource interface {
	Value(cell int) (float64, bool)
}

// DEMSource is an ElevationSource backed by a real-valued raster
// resampled to the model grid, one value per cell id.
type DEMSource struct{ A map[int]float64 }

// LoadDEM reads a raster aligned to the grid definition (32-bit reals
// keyed by active cell id).
func LoadDEM(fp string, gd *grid.Definition) (*DEMSource, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, &ValidationError{Reason: "DEM file not found: " + fp}
	}
	var g grid.Real
	g.NewGD32(fp, gd)
	return &DEMSource{A: g.A}, nil
}

func (d *DEMSource) Value(cell int) (float64, bool) {
	v, ok := d.A[cell]
	if !ok || v <= demNoData {
		return 0, false
	}
	return v, true
}

// SampleReachElevations samples a streambed elevation for every reach
// (one value per model cell) and, when smooth is set, lowers downstream
// values so elevations decrease monotonically along every routing path.
// Zero overlap between the network and the source is fatal; so is
// partial coverage, because slope derivation needs an elevation for
// every reach. Returns elevations keyed by reach number.
func (s *SFRData) SampleReachElevations(src ElevationSource, smooth bool) (map[int]float64, error) {
	if _, err := s.ReachRouting(); err != nil { // rnos and outreaches must be current
		return nil, err
	}
	tt := mmio.NewTimer()
	// package-level uiprogress.Start/Stop share one channel and panic if
	// used more than once per process; a per-call Progress avoids that
	pb := uiprogress.New()
	pb.Start()
	bar := pb.AddBar(len(s.Reaches))
	elevs := make(map[int]float64, len(s.Reaches))
	missing := 0
	for _, r := range s.Reaches {
		if v, ok := src.Value(r.Node); ok {
			elevs[r.Rno] = v
		} else {
			missing++
		}
		bar.Incr()
	}
	pb.Stop()
	tt.Lap("reach elevation sampling complete")
	if missing > 0 {
		return nil, &CoverageError{Missing: missing, Total: len(s.Reaches)}
	}
	if smooth {
		rno := make([]int, len(s.Reaches))
		outreach := make([]int, len(s.Reaches))
		for i, r := range s.Reaches {
			rno[i] = r.Rno
			outreach[i] = r.Outreach
		}
		smoothElevations(rno, outreach, elevs)
	}
	return elevs, nil
}

// smoothElevations walks each routing path from its headwater, carrying
// the running minimum so no reach sits higher than the one upstream of
// it. elevs must hold a value for every reach number.
func smoothElevations(rno, outreach []int, elevs map[int]float64) {
	g := make(map[int]int, len(rno))
	isdest := make(map[int]bool, len(rno))
	for i, r := range rno {
		g[r] = outreach[i]
		isdest[outreach[i]] = true
	}
	for _, r := range rno {
		if isdest[r] {
			continue // not a headwater
		}
		z := elevs[r]
		steps := 0
		for i := g[r]; i > 0; i = g[i] {
			if elevs[i] > z {
				elevs[i] = z
			} else {
				z = elevs[i]
			}
			if steps++; steps > len(rno) {
				panic("smoothElevations: routing cycle")
			}
		}
	}
}

// SetStreambedElevationsFromDEM samples reach elevations from src (see
// SampleReachElevations), converts them from zUnits to the model length
// units, and writes them to the reaches' strtop. Slopes are not
// re-derived; call GetSlopes after.
func (s *SFRData) SetStreambedElevationsFromDEM(src ElevationSource, zUnits string, smooth bool) error {
	elevs, err := s.SampleReachElevations(src, smooth)
	if err != nil {
		return err
	}
	if zUnits == "" {
		zUnits = s.Cfg.LengthUnits
	}
	mult := ConvertLengthUnits(zUnits, s.Cfg.LengthUnits)
	for i := range s.Reaches {
		s.Reaches[i].Strtop = elevs[s.Reaches[i].Rno] * mult
	}
	s.touch()
	return nil
}
