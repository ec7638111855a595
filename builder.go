package sfr

import (
	"fmt"
	"strconv"

	"github.com/maseology/goHydro/grid"
	"github.com/maseology/mmio"
)

// Build assembles an SFR dataset end to end from a control file and
// writes the model input alongside the configured prefix. The control
// file holds one "key: value" pair per line:
//
//	prfx:    output file prefix (required)
//	reachfp: reach table CSV (required)
//	segfp:   segment table CSV
//	gdeffp:  grid definition
//	demfp:   streambed elevation raster, aligned to the grid
//	demunits, lenuni, itmuni, utmzone, name
func Build(controlFP string) (*SFRData, error) {
	tt := mmio.NewTimer()
	var prfx, reachFP, segFP, gdefFP, demFP, demUnits string
	cfg := Defaults()
	func(fp string) { // getFilePaths
		ins := mmio.NewInstruct(fp)
		prfx = ins.Param["prfx"][0]
		reachFP = ins.Param["reachfp"][0]
		if v, ok := ins.Param["segfp"]; ok {
			segFP = v[0]
		}
		if v, ok := ins.Param["gdeffp"]; ok {
			gdefFP = v[0]
		}
		if v, ok := ins.Param["demfp"]; ok {
			demFP = v[0]
		}
		if v, ok := ins.Param["demunits"]; ok {
			demUnits = v[0]
		}
		if v, ok := ins.Param["lenuni"]; ok {
			cfg.LengthUnits = v[0]
		}
		if v, ok := ins.Param["itmuni"]; ok {
			cfg.TimeUnits = v[0]
		}
		if v, ok := ins.Param["utmzone"]; ok {
			z, err := strconv.Atoi(v[0])
			if err != nil {
				panic(err)
			}
			cfg.UTMZone = z
		}
		if v, ok := ins.Param["name"]; ok {
			cfg.PackageName = v[0]
		}
	}(controlFP)

	fmt.Println("building..")
	s, err := FromTables(reachFP, segFP, cfg)
	if err != nil {
		return nil, err
	}

	if gdefFP != "" {
		fmt.Println("  loading grid definition..")
		gd, err := grid.ReadGDEF(gdefFP, true)
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		s.GD = gd
	}
	if demFP != "" {
		if s.GD == nil {
			return nil, &ValidationError{Reason: "control file names a DEM but no grid definition"}
		}
		fmt.Println("  sampling streambed elevations..")
		dem, err := LoadDEM(demFP, s.GD)
		if err != nil {
			return nil, err
		}
		if err := s.SetStreambedElevationsFromDEM(dem, demUnits, true); err != nil {
			return nil, err
		}
		if err := s.GetSlopes(defaultSlope, minimumSlope, maximumSlope); err != nil {
			return nil, err
		}
	}

	s.Checkandprint()
	if err := s.WriteTables(prfx); err != nil {
		return nil, err
	}
	if err := s.WritePackage(prfx + ".sfr"); err != nil {
		return nil, err
	}
	if err := s.SaveGob(prfx + ".sfr.gob"); err != nil {
		return nil, err
	}
	tt.Lap("SFR build complete")
	return s, nil
}
