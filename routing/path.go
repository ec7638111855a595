// Package routing holds the pure graph operations for stream network
// routing: walking a network to its outlet and relabeling segment numbers
// so they increase downstream. A routing graph is a total map from every
// id to its single downstream id, terminating at the outlet id 0; lakes
// and other non-network sinks carry negative ids.
package routing

import "fmt"

// CycleError reports a routing loop encountered before reaching the outlet.
type CycleError struct {
	Start int   // id the walk started from
	At    int   // first id revisited
	Path  []int // ids visited up to the revisit, in order
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("routing cycle from %d: id %d revisited after %d steps", e.Start, e.At, len(e.Path))
}

// RoutingError reports a malformed routing graph.
type RoutingError struct{ Msg string }

func (e *RoutingError) Error() string { return "routing: " + e.Msg }

// FindPath follows graph from start down to the outlet, returning every id
// visited including the terminal 0. graph must be total: every destination
// other than 0 must itself be a key. The walk keeps no state between
// calls; the same graph and start always yield the same path.
func FindPath(graph map[int]int, start int) ([]int, error) {
	path := []int{start}
	seen := map[int]bool{start: true}
	for i := start; i != 0; {
		d, ok := graph[i]
		if !ok {
			return nil, &RoutingError{Msg: fmt.Sprintf("id %d has no outgoing entry", i)}
		}
		if seen[d] {
			return nil, &CycleError{Start: start, At: d, Path: path}
		}
		seen[d] = true
		path = append(path, d)
		i = d
	}
	return path, nil
}
