package sfr

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/im7mortal/UTM"
	"github.com/maseology/mmio"
)

// geojson feature-collection shell
type geojson struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func writeGeojson(fp string, fc geojson) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("writeGeojson: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("writeGeojson: %w", err)
	}
	return nil
}

// cellXY returns a reach's cell-centroid coordinates from the grid.
func (s *SFRData) cellXY(node int) (x, y float64, ok bool) {
	if s.GD == nil {
		return 0, 0, false
	}
	p, ok := s.GD.Coord[node]
	if !ok {
		return 0, 0, false
	}
	return p.X, p.Y, true
}

func (s *SFRData) latlon(x, y float64) (lat, lon float64, ok bool) {
	if s.Cfg.UTMZone <= 0 {
		return 0, 0, false
	}
	lat, lon, err := UTM.ToLatLon(x, y, s.Cfg.UTMZone, "", true)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// ExportOutlets writes the outlet reaches (outreach==0) as a GeoJSON
// point layer and a companion CSV of attributes. Requires a grid.
func (s *SFRData) ExportOutlets(fp string) error {
	if s.GD == nil {
		return &ValidationError{Reason: "feature export needs a grid definition"}
	}
	fc := geojson{Type: "FeatureCollection"}
	csvw := mmio.NewCSVwriter(mmio.RemoveExtension(fp) + ".csv")
	defer csvw.Close()
	if err := csvw.WriteHead("rno,iseg,ireach,node,x,y"); err != nil {
		return fmt.Errorf("ExportOutlets: %w", err)
	}
	for _, r := range s.Reaches {
		if r.Outreach != 0 {
			continue
		}
		x, y, ok := s.cellXY(r.Node)
		if !ok {
			continue
		}
		props := map[string]interface{}{"rno": r.Rno, "iseg": r.Iseg, "ireach": r.Ireach, "node": r.Node}
		if lat, lon, ok := s.latlon(x, y); ok {
			props["lat"], props["lon"] = lat, lon
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: []float64{x, y}},
			Properties: props,
		})
		csvw.WriteLine(r.Rno, r.Iseg, r.Ireach, r.Node, x, y)
	}
	return writeGeojson(fp, fc)
}

// ExportRouting writes one line feature per reach, from its cell
// centroid to its outreach's cell centroid; outlets are written as point
// features. Requires a grid.
func (s *SFRData) ExportRouting(fp string) error {
	if s.GD == nil {
		return &ValidationError{Reason: "feature export needs a grid definition"}
	}
	if err := s.SetOutreaches(); err != nil {
		return err
	}
	byRno := make(map[int]Reach, len(s.Reaches))
	for _, r := range s.Reaches {
		byRno[r.Rno] = r
	}
	fc := geojson{Type: "FeatureCollection"}
	for _, r := range s.Reaches {
		x0, y0, ok := s.cellXY(r.Node)
		if !ok {
			continue
		}
		props := map[string]interface{}{"rno": r.Rno, "outreach": r.Outreach, "iseg": r.Iseg, "ireach": r.Ireach}
		if r.Outreach == 0 {
			fc.Features = append(fc.Features, feature{
				Type:       "Feature",
				Geometry:   geometry{Type: "Point", Coordinates: []float64{x0, y0}},
				Properties: props,
			})
			continue
		}
		d, ok := byRno[r.Outreach]
		if !ok {
			continue
		}
		x1, y1, ok := s.cellXY(d.Node)
		if !ok {
			continue
		}
		props["length"] = math.Hypot(x1-x0, y1-y0)
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "LineString", Coordinates: [][]float64{{x0, y0}, {x1, y1}}},
			Properties: props,
		})
	}
	return writeGeojson(fp, fc)
}

// ExportTransientVariable pivots a per-period segment input (flow,
// runoff, etsw, pptsw or depth) to first-reach point features, one
// property per stress period. Requires a grid.
func (s *SFRData) ExportTransientVariable(fp, varname string) error {
	if s.GD == nil {
		return &ValidationError{Reason: "feature export needs a grid definition"}
	}
	var get func(Segment) float64
	switch varname {
	case "flow":
		get = func(g Segment) float64 { return g.Flow }
	case "runoff":
		get = func(g Segment) float64 { return g.Runoff }
	case "etsw":
		get = func(g Segment) float64 { return g.Etsw }
	case "pptsw":
		get = func(g Segment) float64 { return g.Pptsw }
	case "depth":
		get = func(g Segment) float64 { return g.Depth1 }
	default:
		return &ValidationError{Reason: fmt.Sprintf("unrecognized transient variable %q", varname)}
	}

	reach1 := make(map[int]Reach)
	for _, r := range s.Reaches {
		if r.Ireach == 1 {
			reach1[r.Iseg] = r
		}
	}
	vals := make(map[int]map[int]float64) // nseg -> per -> value
	for _, g := range s.Segments {
		if v := get(g); v != 0 {
			if vals[g.Nseg] == nil {
				vals[g.Nseg] = make(map[int]float64)
			}
			vals[g.Nseg][g.Per] = v
		}
	}

	fc := geojson{Type: "FeatureCollection"}
	for nseg, byPer := range vals {
		r, ok := reach1[nseg]
		if !ok {
			continue
		}
		x, y, ok := s.cellXY(r.Node)
		if !ok {
			continue
		}
		props := map[string]interface{}{"rno": r.Rno, "iseg": nseg}
		for per, v := range byPer {
			props[fmt.Sprintf("%s_per%d", varname, per)] = v
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: []float64{x, y}},
			Properties: props,
		})
	}
	return writeGeojson(fp, fc)
}

// ExportObservations writes the registered observation sites as a
// GeoJSON point layer. Requires a grid.
func (s *SFRData) ExportObservations(fp string) error {
	if s.GD == nil {
		return &ValidationError{Reason: "feature export needs a grid definition"}
	}
	byRno := make(map[int]Reach, len(s.Reaches))
	for _, r := range s.Reaches {
		byRno[r.Rno] = r
	}
	fc := geojson{Type: "FeatureCollection"}
	for _, o := range s.Obs {
		r, ok := byRno[o.Rno]
		if !ok {
			continue
		}
		x, y, ok := s.cellXY(r.Node)
		if !ok {
			continue
		}
		props := map[string]interface{}{"obsname": o.Obsname, "obstype": o.Obstype,
			"rno": o.Rno, "iseg": o.Iseg, "ireach": o.Ireach}
		if lat, lon, ok := s.latlon(x, y); ok {
			props["lat"], props["lon"] = lat, lon
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: []float64{x, y}},
			Properties: props,
		})
	}
	return writeGeojson(fp, fc)
}
