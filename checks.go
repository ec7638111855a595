package sfr

// ValidRnos reports whether values, taken as a set, equal exactly
// {1..len(values)}: no duplicates, no gaps, any order.
func ValidRnos(values []int) bool {
	n := len(values)
	seen := make([]bool, n+1)
	for _, v := range values {
		if v < 1 || v > n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// ValidNsegs reports whether nseg is a dense 1..N numbering and, when
// increasing is set, whether every routed outseg is strictly greater than
// its source nseg (outlets and lakes excluded).
func ValidNsegs(nseg, outseg []int, increasing bool) bool {
	if !ValidRnos(nseg) {
		return false
	}
	if increasing {
		for i, ns := range nseg {
			if o := outseg[i]; o > 0 && o <= ns {
				return false
			}
		}
	}
	return true
}

// RoutingConsistent reports whether the segment-level and reach-level
// routing representations agree: the last reach of every segment must
// route to reach 1 of that segment's outseg, or to 0 where the segment
// discharges to an outlet or lake.
func RoutingConsistent(nseg, outseg, iseg, ireach, rno, outreach []int) bool {
	dest := make(map[int]int, len(nseg))
	for i, ns := range nseg {
		dest[ns] = outseg[i]
	}
	first := make(map[int]int)   // segment -> rno of its first reach
	last := make(map[int]int)    // segment -> row index of its last reach
	highest := make(map[int]int) // segment -> max ireach seen
	for i, is := range iseg {
		if ireach[i] == 1 {
			first[is] = rno[i]
		}
		if ireach[i] > highest[is] {
			highest[is] = ireach[i]
			last[is] = i
		}
	}
	for is, i := range last {
		d, ok := dest[is]
		if !ok {
			return false
		}
		want := 0
		if d > 0 {
			w, ok := first[d]
			if !ok {
				return false
			}
			want = w
		}
		if outreach[i] != want {
			return false
		}
	}
	return true
}
