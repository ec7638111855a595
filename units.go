package sfr

// MODFLOW unit codes and conversion constants.

var itmuniValues = map[string]int{"u": 0, "s": 1, "m": 2, "h": 3, "d": 4, "y": 5}

var lenuniValues = map[string]int{"undefined": 0, "feet": 1, "meters": 2, "centimeters": 3}

var lenConst = map[int]float64{0: 1., 1: 1.486, 2: 1., 3: 100.}

var timeConst = map[int]float64{0: 1., 1: 1., 2: 60., 3: 3600., 4: 86400., 5: 31557600.}

var metersPerUnit = map[string]float64{"feet": 0.3048, "meters": 1., "centimeters": 0.01}

// ConvertLengthUnits returns the multiplier taking lengths from one unit
// system to another; 1 when either is undefined.
func ConvertLengthUnits(from, to string) float64 {
	f, ok := metersPerUnit[from]
	if !ok {
		return 1.
	}
	t, ok := metersPerUnit[to]
	if !ok {
		return 1.
	}
	return f / t
}

// Const returns the SFR package unit-conversion constant for the
// configured model length and time units (Manning's constant premultiplier).
func (s *SFRData) Const() float64 {
	return lenConst[lenuniValues[s.Cfg.LengthUnits]] * timeConst[itmuniValues[s.Cfg.TimeUnits]]
}
