package core

import (
	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
)

// Speaker is an autonomous system in the path-vector model
type Speaker struct {
	Id    state.NodeId
	Peers []state.NodeId
	// Best is the path currently advertised to peers, starting with Id. It is nil until a path is known.
	Best  state.Path
	Table state.PathTable
}

// PathVector propagates explicit AS paths towards a single service (BGP-like). Paths containing
// the receiver are discarded, and the shortest path wins with ties keeping the existing path.
type PathVector struct {
	Service  state.ServiceId
	speakers map[state.NodeId]*Speaker
	order    []state.NodeId
	obs      Observer
}

func NewPathVector(topo *state.Topology, svc state.ServiceId, obs Observer) *PathVector {
	p := &PathVector{
		Service:  svc,
		speakers: make(map[state.NodeId]*Speaker, topo.Len()),
		order:    topo.Nodes(),
		obs:      observerOrNop(obs),
	}
	for _, id := range p.order {
		sp := &Speaker{
			Id:    id,
			Table: make(state.PathTable),
		}
		neighs, _ := topo.NeighboursOf(id)
		for _, n := range neighs {
			sp.Peers = append(sp.Peers, n.Node)
		}
		p.speakers[id] = sp
	}
	return p
}

func (p *PathVector) Len() int {
	return len(p.order)
}

func (p *PathVector) Speakers() []state.NodeId {
	return p.order
}

func (p *PathVector) Speaker(id state.NodeId) (*Speaker, error) {
	sp, ok := p.speakers[id]
	if !ok {
		return nil, &state.UnknownNodeError{Node: id}
	}
	return sp, nil
}

// AnnounceSelf makes origin the source of the service
func (p *PathVector) AnnounceSelf(origin state.NodeId) error {
	sp, err := p.Speaker(origin)
	if err != nil {
		return err
	}
	sp.Best = state.Path{origin}
	sp.Table[p.Service] = state.PathRoute{Dest: p.Service, Nh: origin, Path: state.Path{origin}}
	p.obs.Log(RouteAdded, "service originated", "as", origin, "svc", p.Service)
	return nil
}

// ReceiveAnnouncement delivers path, advertised by from, to receiver. It returns true if the
// receiver adopted the path as its new best path.
func (p *PathVector) ReceiveAnnouncement(receiver, from state.NodeId, path state.Path) (bool, error) {
	sp, err := p.Speaker(receiver)
	if err != nil {
		return false, err
	}
	if _, err := p.Speaker(from); err != nil {
		return false, err
	}

	if path.Contains(receiver) {
		perf.LoopsRejected.Add(1)
		p.obs.Log(LoopRejected, "announcement discarded", "as", receiver, "from", from, "path", path)
		return false, nil
	}

	candidate := make(state.Path, 0, len(path)+1)
	candidate = append(candidate, receiver)
	candidate = append(candidate, path...)

	if sp.Best != nil && len(candidate) >= len(sp.Best) {
		return false, nil
	}
	event, desc := RouteImproved, "shorter path adopted"
	if sp.Best == nil {
		event, desc = RouteAdded, "path adopted"
	}
	sp.Best = candidate
	sp.Table[p.Service] = state.PathRoute{Dest: p.Service, Nh: from, Path: candidate.Clone()}
	perf.RouteUpdates.Add(1)
	p.obs.Log(event, desc, "as", receiver, "from", from, "path", candidate)
	return true, nil
}

// Round lets every speaker that has a path advertise it to all of its peers, in ascending id order.
// It returns the number of adopted announcements.
func (p *PathVector) Round() int {
	updates := 0
	for _, id := range p.order {
		sp := p.speakers[id]
		if sp.Best == nil {
			continue
		}
		for _, peer := range sp.Peers {
			ok, err := p.ReceiveAnnouncement(peer, id, sp.Best)
			if err != nil {
				p.obs.Log(UnknownNeighbour, "peer is not part of the network", "as", id, "peer", peer)
				continue
			}
			if ok {
				updates++
			}
		}
	}
	return updates
}

// Converge runs rounds until a fixed point or maxRounds, see RunToConvergence
func (p *PathVector) Converge(maxRounds int) Convergence {
	return RunToConvergence("path-vector", p, maxRounds, p.obs)
}

// BestPath returns a copy of the best path of id, or nil if it has none
func (p *PathVector) BestPath(id state.NodeId) (state.Path, error) {
	sp, err := p.Speaker(id)
	if err != nil {
		return nil, err
	}
	return sp.Best.Clone(), nil
}

func (p *PathVector) Table(id state.NodeId) (state.PathTable, error) {
	sp, err := p.Speaker(id)
	if err != nil {
		return nil, err
	}
	return sp.Table.Clone(), nil
}
