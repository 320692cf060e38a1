package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ServiceId names a destination announced by a path-vector origin
type ServiceId string

// Route is a forwarding entry with a scalar metric
type Route struct {
	Dest   NodeId
	Nh     NodeId // next hop node
	Metric uint32
}

func (r Route) String() string {
	return fmt.Sprintf("%s via (nh: %s, metric: %d)", r.Dest, r.Nh, r.Metric)
}

// Table maps a destination to its selected route. It is owned by a single node.
type Table map[NodeId]Route

// Destinations returns the destinations of t in ascending order
func (t Table) Destinations() []NodeId {
	return slices.Sorted(maps.Keys(t))
}

func (t Table) Clone() Table {
	return maps.Clone(t)
}

func (t Table) String() string {
	rt := make([]string, 0, len(t))
	for _, dest := range t.Destinations() {
		rt = append(rt, t[dest].String())
	}
	return strings.Join(rt, "\n")
}

// Path is an ordered sequence of nodes, starting with the node that holds it
type Path []NodeId

func (p Path) Contains(id NodeId) bool {
	return slices.Contains(p, id)
}

func (p Path) Clone() Path {
	return slices.Clone(p)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = string(n)
	}
	return strings.Join(parts, " -> ")
}

// PathRoute is a forwarding entry whose metric is the explicit path
type PathRoute struct {
	Dest ServiceId
	Nh   NodeId
	Path Path
}

func (r PathRoute) String() string {
	return fmt.Sprintf("%s via (nh: %s, path: %s)", r.Dest, r.Nh, r.Path)
}

type PathTable map[ServiceId]PathRoute

func (t PathTable) Destinations() []ServiceId {
	return slices.Sorted(maps.Keys(t))
}

func (t PathTable) Clone() PathTable {
	c := make(PathTable, len(t))
	for k, v := range t {
		v.Path = v.Path.Clone()
		c[k] = v
	}
	return c
}
