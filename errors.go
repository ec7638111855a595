package sfr

import "fmt"

// ValidationError flags a structural defect in the reach or segment
// tables that the caller must fix before proceeding; it is never
// auto-corrected. (Repairable inconsistencies such as stray outsegs are
// corrected in place instead, with the correction count reported.)
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return "sfr: " + e.Reason }

// CoverageError reports incomplete overlap between the stream network and
// an elevation source. Partial coverage is as fatal as none: slope
// derivation downstream needs an elevation for every reach.
type CoverageError struct{ Missing, Total int }

func (e *CoverageError) Error() string {
	if e.Missing >= e.Total {
		return fmt.Sprintf("sfr: no cells intersected the elevation source (%d sampled); check projections", e.Total)
	}
	return fmt.Sprintf("sfr: %d of %d cells have no elevation; source does not cover the stream network", e.Missing, e.Total)
}
