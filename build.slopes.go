package sfr

import "fmt"

// GetSlopes computes the slope of each reach from streambed top
// elevations and the derived routing: (strtop - downstream strtop) /
// rchlen, clamped to [minimumSlope, maximumSlope]. Outlet reaches (and
// reaches with nonpositive length, which would otherwise divide by zero)
// take defaultSlope exactly, unclamped. Requires SetOutreaches to have
// run.
func (s *SFRData) GetSlopes(defaultSlope, minimumSlope, maximumSlope float64) error {
	if minimumSlope > maximumSlope {
		return &ValidationError{Reason: fmt.Sprintf("minimum slope %g exceeds maximum slope %g", minimumSlope, maximumSlope)}
	}
	if len(s.Reaches) > 1 {
		any := false
		for _, r := range s.Reaches {
			if r.Outreach != 0 {
				any = true
				break
			}
		}
		if !any {
			return &ValidationError{Reason: "reach routing not set; call SetOutreaches first"}
		}
	}
	elev := make(map[int]float64, len(s.Reaches))
	for _, r := range s.Reaches {
		elev[r.Rno] = r.Strtop
	}
	for i := range s.Reaches {
		r := &s.Reaches[i]
		sl := defaultSlope
		if r.Outreach != 0 && r.Rchlen > 0 {
			if dn, ok := elev[r.Outreach]; ok {
				sl = (r.Strtop - dn) / r.Rchlen
				if sl < minimumSlope {
					sl = minimumSlope
				}
				if sl > maximumSlope {
					sl = maximumSlope
				}
			}
		}
		r.Slope = sl
	}
	s.touch()
	return nil
}
