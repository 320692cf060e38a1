package state

import (
	"fmt"
	"maps"
	"slices"
)

type NodeId string

// Adjacency is a single directly connected neighbour and the cost of reaching it
type Adjacency struct {
	Node NodeId
	Cost uint32
}

// Topology is the shared description of nodes and their links. Links are stored
// symmetrically on both endpoints. A Topology is built once and only read by the engines.
type Topology struct {
	adj map[NodeId]map[NodeId]uint32
}

func NewTopology() *Topology {
	return &Topology{
		adj: make(map[NodeId]map[NodeId]uint32),
	}
}

// FromEdges builds a weighted topology from (node, node, cost) triples.
// A repeated edge, in either direction, keeps the cost it was first given.
func FromEdges(edges []Triple[NodeId, NodeId, int]) (*Topology, error) {
	t := NewTopology()
	for _, e := range edges {
		if err := t.AddEdge(e.V1, e.V2, e.V3); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromPairs builds an unweighted peering topology, every link costs one hop.
func FromPairs(pairs []Pair[NodeId, NodeId]) (*Topology, error) {
	t := NewTopology()
	for _, p := range pairs {
		if err := t.AddLink(p.V1, p.V2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Topology) AddNode(id NodeId) {
	if _, ok := t.adj[id]; !ok {
		t.adj[id] = make(map[NodeId]uint32)
	}
}

// AddEdge adds a bidirectional link. Both endpoints are registered if needed.
// Adding a link that already exists is a no-op.
func (t *Topology) AddEdge(a, b NodeId, cost int) error {
	if cost < 0 {
		return &NegativeCostError{From: a, To: b, Cost: cost}
	}
	if a == b {
		return fmt.Errorf("%w on node %s", ErrSelfLoop, a)
	}
	if uint64(cost) >= uint64(INF) {
		return fmt.Errorf("link cost %d on %s <-> %s exceeds the maximum metric %d", cost, a, b, INFM)
	}
	t.AddNode(a)
	t.AddNode(b)
	if _, ok := t.adj[a][b]; ok {
		return nil
	}
	t.adj[a][b] = uint32(cost)
	t.adj[b][a] = uint32(cost)
	return nil
}

// AddLink records an unweighted adjacency (one hop).
func (t *Topology) AddLink(a, b NodeId) error {
	return t.AddEdge(a, b, int(HopCost))
}

// NeighboursOf returns the directly adjacent nodes of id, ordered by node id.
func (t *Topology) NeighboursOf(id NodeId) ([]Adjacency, error) {
	links, ok := t.adj[id]
	if !ok {
		return nil, &UnknownNodeError{Node: id}
	}
	out := make([]Adjacency, 0, len(links))
	for _, n := range slices.Sorted(maps.Keys(links)) {
		out = append(out, Adjacency{Node: n, Cost: links[n]})
	}
	return out, nil
}

// Cost returns the cost of the direct link between a and b
func (t *Topology) Cost(a, b NodeId) (uint32, bool) {
	c, ok := t.adj[a][b]
	return c, ok
}

func (t *Topology) HasNode(id NodeId) bool {
	_, ok := t.adj[id]
	return ok
}

func (t *Topology) Len() int {
	return len(t.adj)
}

// Nodes returns every node in ascending id order
func (t *Topology) Nodes() []NodeId {
	return slices.Sorted(maps.Keys(t.adj))
}

// Edges returns each link once, with V1 < V2, in sorted order
func (t *Topology) Edges() []Triple[NodeId, NodeId, uint32] {
	edges := make([]Triple[NodeId, NodeId, uint32], 0)
	for _, a := range t.Nodes() {
		for _, b := range slices.Sorted(maps.Keys(t.adj[a])) {
			if a < b {
				edges = append(edges, Triple[NodeId, NodeId, uint32]{a, b, t.adj[a][b]})
			}
		}
	}
	return edges
}

// Snapshot returns a deep copy that shares no state with t
func (t *Topology) Snapshot() *Topology {
	c := NewTopology()
	for id, links := range t.adj {
		c.adj[id] = maps.Clone(links)
	}
	return c
}
