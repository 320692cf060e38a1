package core

import (
	"fmt"
	"io"
	"maps"
	"net/netip"
	"slices"
	"strings"

	"github.com/encodeous/routesim/state"
)

const (
	EngineLinkState      = "ls"
	EngineDistanceVector = "dv"
	EnginePathVector     = "pv"
)

var AllEngines = []string{EngineLinkState, EngineDistanceVector, EnginePathVector}

func ParseEngines(names []string) ([]string, error) {
	if len(names) == 0 {
		return slices.Clone(AllEngines), nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if !slices.Contains(AllEngines, n) {
			return nil, fmt.Errorf("unknown engine %q, expected one of %v", n, AllEngines)
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

type SimOptions struct {
	Engines  []string // defaults to AllEngines
	Observer Observer
}

type SimResult struct {
	Service        state.ServiceId
	LinkState      map[state.NodeId]state.Table
	DistanceVector map[state.NodeId]state.Table
	PathVector     map[state.NodeId]state.PathTable
	DVConvergence  *Convergence
	PVConvergence  *Convergence
	Prefixes       map[state.NodeId][]netip.Prefix
}

// Simulate normalizes and validates cfg, builds its topologies and runs the selected engines to convergence.
// Reaching a round ceiling is not an error, it is reported through the Convergence results.
func Simulate(cfg state.SimCfg, opts SimOptions) (*SimResult, error) {
	cfg.Normalize()
	err := state.ConfigValidator(&cfg)
	if err != nil {
		return nil, err
	}
	engines, err := ParseEngines(opts.Engines)
	if err != nil {
		return nil, err
	}
	obs := observerOrNop(opts.Observer)
	res := &SimResult{
		Service:  cfg.GetService(),
		Prefixes: cfg.Prefixes,
	}

	if slices.Contains(engines, EngineLinkState) || slices.Contains(engines, EngineDistanceVector) {
		topo, err := cfg.LinkTopology()
		if err != nil {
			return nil, err
		}
		if slices.Contains(engines, EngineLinkState) {
			res.LinkState, err = NewLinkStateDomain(topo, obs).ComputeAll()
			if err != nil {
				return nil, fmt.Errorf("link-state: %w", err)
			}
		}
		if slices.Contains(engines, EngineDistanceVector) {
			dv := NewDistanceVector(topo, obs)
			conv := dv.Converge(cfg.MaxRounds)
			res.DVConvergence = &conv
			res.DistanceVector = make(map[state.NodeId]state.Table, dv.Len())
			for _, id := range dv.Routers() {
				res.DistanceVector[id], _ = dv.Table(id)
			}
		}
	}

	if slices.Contains(engines, EnginePathVector) {
		topo, err := cfg.PeeringTopology()
		if err != nil {
			return nil, err
		}
		pv := NewPathVector(topo, res.Service, obs)
		for _, origin := range cfg.Origins {
			err = pv.AnnounceSelf(origin)
			if err != nil {
				return nil, fmt.Errorf("path-vector: %w", err)
			}
		}
		conv := pv.Converge(cfg.MaxRounds)
		res.PVConvergence = &conv
		res.PathVector = make(map[state.NodeId]state.PathTable, pv.Len())
		for _, id := range pv.Speakers() {
			res.PathVector[id], _ = pv.Table(id)
		}
	}
	return res, nil
}

// Fib builds the forwarding table of id from its link-state table, or its distance-vector
// table when link-state was not run.
func (r *SimResult) Fib(id state.NodeId) (*Fib, error) {
	tables := r.LinkState
	if tables == nil {
		tables = r.DistanceVector
	}
	rt, ok := tables[id]
	if !ok {
		return nil, &state.UnknownNodeError{Node: id}
	}
	return BuildFib(id, rt, r.Prefixes), nil
}

func writeConvergence(w io.Writer, c *Convergence) {
	if c.Converged {
		fmt.Fprintf(w, "--- CONVERGENCE REACHED after %d rounds ---\n\n", c.Rounds)
	} else {
		fmt.Fprintf(w, "--- WARNING: %s ---\n\n", c.Err())
	}
}

func sortedKeys[V any](m map[state.NodeId]V) []state.NodeId {
	return slices.Sorted(maps.Keys(m))
}

// Write prints every computed table
func (r *SimResult) Write(w io.Writer) {
	if r.LinkState != nil {
		for _, id := range sortedKeys(r.LinkState) {
			WriteTable(w, fmt.Sprintf("Link-State Routing Table for %s", id), r.LinkState[id])
			fmt.Fprintln(w)
		}
	}
	if r.DVConvergence != nil {
		writeConvergence(w, r.DVConvergence)
		for _, id := range sortedKeys(r.DistanceVector) {
			WriteTable(w, fmt.Sprintf("Distance-Vector Routing Table for %s", id), r.DistanceVector[id])
			fmt.Fprintln(w)
		}
	}
	if r.PVConvergence != nil {
		writeConvergence(w, r.PVConvergence)
		for _, id := range sortedKeys(r.PathVector) {
			WritePathTable(w, fmt.Sprintf("Path-Vector Table for %s", id), r.Service, r.PathVector[id])
			fmt.Fprintln(w)
		}
	}
}
