package core

import (
	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
)

// DVRouter is a node of the distance-vector model. It only knows its own table and the ids of
// its neighbours, whose tables are looked up through the owning DistanceVector.
type DVRouter struct {
	Id         state.NodeId
	Table      state.Table
	Neighbours []state.NodeId
}

// DistanceVector is a hop count distance-vector (RIP-like) network. There is no split horizon,
// poisoned reverse or hold-down, so count-to-infinity is possible on topologies that change.
type DistanceVector struct {
	routers map[state.NodeId]*DVRouter
	order   []state.NodeId
	obs     Observer
}

// NewDistanceVector creates a router per topology node. Each table starts with the router itself
// at cost 0 and every direct neighbour at one hop. Link costs are ignored.
func NewDistanceVector(topo *state.Topology, obs Observer) *DistanceVector {
	d := &DistanceVector{
		routers: make(map[state.NodeId]*DVRouter, topo.Len()),
		order:   topo.Nodes(),
		obs:     observerOrNop(obs),
	}
	for _, id := range d.order {
		r := &DVRouter{
			Id:    id,
			Table: state.Table{id: {Dest: id, Nh: id, Metric: 0}},
		}
		neighs, _ := topo.NeighboursOf(id)
		for _, n := range neighs {
			r.Neighbours = append(r.Neighbours, n.Node)
			r.Table[n.Node] = state.Route{Dest: n.Node, Nh: n.Node, Metric: state.HopCost}
		}
		d.routers[id] = r
	}
	return d
}

func (d *DistanceVector) Len() int {
	return len(d.order)
}

func (d *DistanceVector) Routers() []state.NodeId {
	return d.order
}

func (d *DistanceVector) Router(id state.NodeId) (*DVRouter, error) {
	r, ok := d.routers[id]
	if !ok {
		return nil, &state.UnknownNodeError{Node: id}
	}
	return r, nil
}

// Table returns a copy of the current table of id
func (d *DistanceVector) Table(id state.NodeId) (state.Table, error) {
	r, err := d.Router(id)
	if err != nil {
		return nil, err
	}
	return r.Table.Clone(), nil
}

// UpdateFromNeighbours reads the current table of every neighbour of id and adopts any
// destination that is new, or reachable at a strictly lower cost through that neighbour.
func (d *DistanceVector) UpdateFromNeighbours(id state.NodeId) (bool, error) {
	r, err := d.Router(id)
	if err != nil {
		return false, err
	}
	updated := false
	for _, nid := range r.Neighbours {
		neigh, ok := d.routers[nid]
		if !ok {
			d.obs.Log(UnknownNeighbour, "neighbour is not part of the network", "router", id, "neigh", nid)
			continue
		}
		for _, dest := range neigh.Table.Destinations() {
			cost := AddMetric(neigh.Table[dest].Metric, state.HopCost)
			cur, exists := r.Table[dest]
			if exists && cost >= cur.Metric {
				continue
			}
			r.Table[dest] = state.Route{Dest: dest, Nh: nid, Metric: cost}
			updated = true
			perf.RouteUpdates.Add(1)
			if exists {
				d.obs.Log(RouteImproved, "route improved", "router", id, "dest", dest, "nh", nid, "metric", cost)
			} else {
				d.obs.Log(RouteAdded, "route added", "router", id, "dest", dest, "nh", nid, "metric", cost)
			}
		}
	}
	return updated, nil
}

// Round updates every router once, in ascending id order
func (d *DistanceVector) Round() int {
	updates := 0
	for _, id := range d.order {
		if ok, _ := d.UpdateFromNeighbours(id); ok {
			updates++
		}
	}
	return updates
}

// Converge runs rounds until a fixed point or maxRounds, see RunToConvergence
func (d *DistanceVector) Converge(maxRounds int) Convergence {
	return RunToConvergence("distance-vector", d, maxRounds, d.obs)
}
