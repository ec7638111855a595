package routing

import "fmt"

// RenumberSegments returns a relabeling of segment ids to a dense 1..N
// numbering in which every segment's new id is less than that of the
// segment it routes to, so numbering only increases downstream. The
// returned map is total over anything a routing column can hold: 0 maps
// to 0, negative (lake) ids map to themselves, and positive destinations
// that are not segment ids are treated as outlets and map to 0. Ids with
// no ordering constraint between them keep their relative input order.
// A cycle among the segments is a RoutingError.
func RenumberSegments(ids, dests []int) (map[int]int, error) {
	if len(ids) != len(dests) {
		return nil, &RoutingError{Msg: fmt.Sprintf("renumber: %d ids but %d destinations", len(ids), len(dests))}
	}

	graph := make(map[int]int, len(ids))
	indeg := make(map[int]int, len(ids))
	for i, id := range ids {
		if id <= 0 {
			return nil, &RoutingError{Msg: fmt.Sprintf("renumber: nonpositive segment id %d", id)}
		}
		if _, ok := graph[id]; ok {
			return nil, &RoutingError{Msg: fmt.Sprintf("renumber: duplicate segment id %d", id)}
		}
		graph[id] = dests[i]
		indeg[id] = 0
	}

	renum := make(map[int]int, len(ids)+1)
	renum[0] = 0
	for _, d := range dests {
		switch {
		case d == 0:
		case d < 0:
			renum[d] = d // lake sink, not a segment to route through
		case !has(graph, d):
			renum[d] = 0 // stray destination; same policy as RepairOutsegs
		default:
			indeg[d]++
		}
	}

	// Kahn's ordering with a FIFO queue seeded in input order: headwaters
	// first, each segment released only once everything upstream of it is
	// numbered.
	queue := make([]int, 0, len(ids))
	for _, id := range ids {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	next := 1
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		renum[id] = next
		next++
		if d := graph[id]; d > 0 && has(graph, d) {
			indeg[d]--
			if indeg[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	if next != len(ids)+1 {
		return nil, &RoutingError{Msg: fmt.Sprintf("renumber: cycle among %d segments", len(ids)-next+1)}
	}
	return renum, nil
}

func has(m map[int]int, k int) bool {
	_, ok := m[k]
	return ok
}
