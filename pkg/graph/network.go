// Package graph provides the in-memory network model the styling and
// subnetwork pipelines operate on: string-identified nodes, directed or
// undirected edges, and typed attribute mappings on both.
//
// Networks are not safe for concurrent mutation. The styling pipeline never
// touches a caller's network directly; it works on clones.
package graph

// Network is a set of nodes and edges with attribute mappings.
type Network struct {
	directed bool
	nodes    map[string]*Node
	order    []string
	adj      map[string]map[string]*Edge
	pred     map[string]map[string]*Edge
	edges    []*Edge
}

// NewDirected creates an empty directed network.
func NewDirected() *Network {
	return newNetwork(true)
}

// NewUndirected creates an empty undirected network.
func NewUndirected() *Network {
	return newNetwork(false)
}

func newNetwork(directed bool) *Network {
	return &Network{
		directed: directed,
		nodes:    make(map[string]*Node),
		adj:      make(map[string]map[string]*Edge),
		pred:     make(map[string]map[string]*Edge),
	}
}

// Directed reports whether edges are directional.
func (g *Network) Directed() bool {
	return g.directed
}

// AddNode inserts a node if absent and returns it. Adding an existing ID
// returns the existing node untouched.
func (g *Network) AddNode(id string) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Attrs: make(Attrs)}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge inserts an edge, creating missing endpoints. Attributes are copied
// in and a legacy "interaction" key is normalized to "sign". Adding an edge
// that already exists merges the new attributes into it.
func (g *Network) AddEdge(from, to string, attrs Attrs) *Edge {
	g.AddNode(from)
	g.AddNode(to)

	if e, ok := g.lookup(from, to); ok {
		for k, v := range attrs {
			e.Attrs[k] = v
		}
		normalizeAttrs(e.Attrs)
		return e
	}

	e := &Edge{From: from, To: to, Attrs: make(Attrs, len(attrs))}
	for k, v := range attrs {
		e.Attrs[k] = v
	}
	normalizeAttrs(e.Attrs)

	g.link(from, to, e)
	g.edges = append(g.edges, e)
	return e
}

func (g *Network) link(from, to string, e *Edge) {
	if g.adj[from] == nil {
		g.adj[from] = make(map[string]*Edge)
	}
	if g.pred[to] == nil {
		g.pred[to] = make(map[string]*Edge)
	}
	g.adj[from][to] = e
	g.pred[to][from] = e

	if !g.directed && from != to {
		if g.adj[to] == nil {
			g.adj[to] = make(map[string]*Edge)
		}
		if g.pred[from] == nil {
			g.pred[from] = make(map[string]*Edge)
		}
		g.adj[to][from] = e
		g.pred[from][to] = e
	}
}

func (g *Network) lookup(from, to string) (*Edge, bool) {
	if m, ok := g.adj[from]; ok {
		if e, ok := m[to]; ok {
			return e, true
		}
	}
	return nil, false
}

// Node returns the node with the given ID.
func (g *Network) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether a node exists.
func (g *Network) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edge returns the edge between two nodes. On undirected networks either
// endpoint order matches.
func (g *Network) Edge(from, to string) (*Edge, bool) {
	return g.lookup(from, to)
}

// Nodes returns all nodes in insertion order.
func (g *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Network) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns all edges in insertion order. Undirected edges appear once,
// oriented as first inserted.
func (g *Network) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Successors returns the IDs reachable over one edge from the given node.
// For undirected networks these are the neighbors.
func (g *Network) Successors(id string) []string {
	return keysInOrder(g.adj[id], g.order)
}

// Predecessors returns the IDs with an edge into the given node.
func (g *Network) Predecessors(id string) []string {
	return keysInOrder(g.pred[id], g.order)
}

// keysInOrder filters the node order down to the keys present in m, keeping
// iteration deterministic without sorting on every call.
func keysInOrder(m map[string]*Edge, order []string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for _, id := range order {
		if _, ok := m[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// InDegree returns the number of edges into a node.
func (g *Network) InDegree(id string) int {
	return len(g.pred[id])
}

// OutDegree returns the number of edges out of a node.
func (g *Network) OutDegree(id string) int {
	return len(g.adj[id])
}

// NodeCount returns the number of nodes.
func (g *Network) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Network) EdgeCount() int {
	return len(g.edges)
}

// Clone creates a deep copy of the network, attributes included.
func (g *Network) Clone() *Network {
	clone := newNetwork(g.directed)
	for _, id := range g.order {
		cn := clone.AddNode(id)
		cn.Attrs = g.nodes[id].Attrs.Clone()
	}
	for _, e := range g.edges {
		ce := &Edge{From: e.From, To: e.To, Attrs: e.Attrs.Clone()}
		clone.link(e.From, e.To, ce)
		clone.edges = append(clone.edges, ce)
	}
	return clone
}
