package core

import (
	"time"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/jellydator/ttlcache/v3"
)

// ShortestPathTree is the result of a shortest path search from a single source.
// Only the predecessor of each node is kept, paths are rebuilt on demand.
type ShortestPathTree struct {
	Source state.NodeId
	Cost   map[state.NodeId]uint32       // settled cost of every reachable node
	Prev   map[state.NodeId]state.NodeId // predecessor on the tree, absent for the source
	Order  []state.NodeId                // nodes in the order they were settled
}

// PathTo rebuilds the tree path from the source to dst, both included
func (t *ShortestPathTree) PathTo(dst state.NodeId) (state.Path, bool) {
	if _, ok := t.Cost[dst]; !ok {
		return nil, false
	}
	path := state.Path{dst}
	for cur := dst; cur != t.Source; {
		cur = t.Prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

func (t *ShortestPathTree) Reachable(dst state.NodeId) bool {
	_, ok := t.Cost[dst]
	return ok
}

// ComputeShortestPaths runs Dijkstra's algorithm over the link state database from src and
// derives the forwarding table of src. Relaxation only happens on a strictly lower cost, so
// among equal cost paths the first one discovered is kept. Unreachable nodes are not in the table.
func ComputeShortestPaths(lsdb *state.Topology, src state.NodeId) (*ShortestPathTree, state.Table, error) {
	if !lsdb.HasNode(src) {
		return nil, nil, &state.UnknownNodeError{Node: src}
	}

	best := make(map[state.NodeId]uint32, lsdb.Len())
	for _, n := range lsdb.Nodes() {
		best[n] = state.INF
	}
	best[src] = 0

	tree := &ShortestPathTree{
		Source: src,
		Cost:   make(map[state.NodeId]uint32),
		Prev:   make(map[state.NodeId]state.NodeId),
	}
	table := make(state.Table)
	settled := make(map[state.NodeId]bool)

	f := &frontier{}
	f.push(src, 0)

	for f.Len() > 0 {
		cur := f.pop()
		if settled[cur.node] || cur.cost > best[cur.node] {
			continue // stale entry
		}
		settled[cur.node] = true
		tree.Cost[cur.node] = cur.cost
		tree.Order = append(tree.Order, cur.node)

		// the predecessor is settled before its successors, so its next hop is already known
		if cur.node == src {
			table[src] = state.Route{Dest: src, Nh: src, Metric: 0}
		} else {
			prev := tree.Prev[cur.node]
			nh := cur.node
			if prev != src {
				nh = table[prev].Nh
			}
			table[cur.node] = state.Route{Dest: cur.node, Nh: nh, Metric: cur.cost}
		}

		neighs, err := lsdb.NeighboursOf(cur.node)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range neighs {
			if settled[n.Node] {
				continue
			}
			cost := AddMetric(cur.cost, n.Cost)
			if cost < best[n.Node] {
				best[n.Node] = cost
				tree.Prev[n.Node] = cur.node
				f.push(n.Node, cost)
			}
		}
	}
	return tree, table, nil
}

// SpfResult is a computed tree and table, shared between callers and must not be modified
type SpfResult struct {
	Tree  *ShortestPathTree
	Table state.Table
}

// LinkStateDomain gives every router the same read-only snapshot of the link state database,
// as if it had been flooded to them, and computes each router's table independently.
type LinkStateDomain struct {
	lsdb  *state.Topology
	obs   Observer
	cache *ttlcache.Cache[state.NodeId, *SpfResult]
}

func NewLinkStateDomain(topo *state.Topology, obs Observer) *LinkStateDomain {
	return &LinkStateDomain{
		lsdb: topo.Snapshot(),
		obs:  observerOrNop(obs),
		cache: ttlcache.New[state.NodeId, *SpfResult](
			ttlcache.WithTTL[state.NodeId, *SpfResult](state.SpfCacheTTL),
			ttlcache.WithDisableTouchOnHit[state.NodeId, *SpfResult](),
		),
	}
}

func (d *LinkStateDomain) Routers() []state.NodeId {
	return d.lsdb.Nodes()
}

// Compute returns the shortest path tree and table of src, reusing a previous result when cached
func (d *LinkStateDomain) Compute(src state.NodeId) (*SpfResult, error) {
	if item := d.cache.Get(src); item != nil {
		return item.Value(), nil
	}
	start := time.Now()
	tree, table, err := ComputeShortestPaths(d.lsdb, src)
	if err != nil {
		return nil, err
	}
	perf.SpfLatency.Add(float64(time.Since(start).Microseconds()))
	res := &SpfResult{Tree: tree, Table: table}
	d.cache.Set(src, res, ttlcache.DefaultTTL)
	d.obs.Log(Converged, "shortest path tree computed", "router", src, "reachable", len(table))
	return res, nil
}

// Table returns a copy of the forwarding table of src
func (d *LinkStateDomain) Table(src state.NodeId) (state.Table, error) {
	res, err := d.Compute(src)
	if err != nil {
		return nil, err
	}
	return res.Table.Clone(), nil
}

// ComputeAll computes the table of every router in the domain
func (d *LinkStateDomain) ComputeAll() (map[state.NodeId]state.Table, error) {
	out := make(map[state.NodeId]state.Table, d.lsdb.Len())
	for _, r := range d.Routers() {
		tbl, err := d.Table(r)
		if err != nil {
			return nil, err
		}
		out[r] = tbl
	}
	return out, nil
}
