package graph

import "fmt"

// Subnetwork builds the minimal network containing exactly the edges the
// given paths traverse over parent. Directedness follows the parent. Every
// consecutive node pair of every path must be an existing parent edge;
// otherwise construction aborts with ErrEdgeNotFound and no network is
// returned. Edge and node attributes are deep-copied from the parent, and
// edges repeated across overlapping paths are added once.
func Subnetwork(parent *Network, paths [][]string) (*Network, error) {
	sub := newNetwork(parent.directed)

	for pi, path := range paths {
		for i := 0; i+1 < len(path); i++ {
			from, to := path[i], path[i+1]
			e, ok := parent.Edge(from, to)
			if !ok {
				return nil, &Error{
					Op:      "subnetwork",
					From:    from,
					To:      to,
					Context: fmt.Sprintf("path %d step %d", pi, i),
					Cause:   ErrEdgeNotFound,
				}
			}

			carryNode(sub, parent, from)
			carryNode(sub, parent, to)
			// Overlapping paths overwrite with identical copies of the same
			// parent attributes, so repeats stay idempotent.
			sub.AddEdge(e.From, e.To, e.Attrs.Clone())
		}
	}

	return sub, nil
}

func carryNode(sub, parent *Network, id string) {
	if sub.HasNode(id) {
		return
	}
	n := sub.AddNode(id)
	if pn, ok := parent.Node(id); ok {
		n.Attrs = pn.Attrs.Clone()
	}
}
